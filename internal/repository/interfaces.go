package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kgrant/travel-itinerary-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ItineraryQuery describes the filter, sort, and page window applied by List.
// OwnerID is mandatory: listing is always ownership-scoped.
type ItineraryQuery struct {
	OwnerID     uuid.UUID
	Destination string // case-insensitive substring match, empty = no filter
	SortBy      string
	Descending  bool
	Limit       int
	Offset      int
}

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *domain.Itinerary) error
	// GetByID is ownership-scoped: a record owned by someone else behaves
	// exactly like a missing record.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Itinerary, error)
	GetByShareableID(ctx context.Context, shareableID string) (*domain.Itinerary, error)
	// List returns the requested page plus the total count of the full
	// filtered set.
	List(ctx context.Context, query ItineraryQuery) ([]*domain.Itinerary, int64, error)
	Update(ctx context.Context, itinerary *domain.Itinerary) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Repositories struct {
	User      UserRepository
	Itinerary ItineraryRepository
}
