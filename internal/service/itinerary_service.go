package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kgrant/travel-itinerary-api/internal/config"
	"github.com/kgrant/travel-itinerary-api/internal/domain"
	"github.com/kgrant/travel-itinerary-api/internal/repository"
	"gorm.io/gorm"
)

type ItineraryService struct {
	repo repository.ItineraryRepository
	cfg  *config.Config
}

func NewItineraryService(repo repository.ItineraryRepository, cfg *config.Config) *ItineraryService {
	return &ItineraryService{repo: repo, cfg: cfg}
}

type CreateItineraryInput struct {
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Activities  []domain.Activity
}

// UpdateItineraryInput carries partial updates; nil fields are left as-is.
type UpdateItineraryInput struct {
	Title       *string
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	Activities  *[]domain.Activity
}

type ListItinerariesInput struct {
	Destination string
	SortBy      string
	Descending  bool
	Page        int
	Limit       int
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

type ListItinerariesResult struct {
	Itineraries []*domain.Itinerary
	Pagination  Pagination
}

func (s *ItineraryService) Create(ctx context.Context, ownerID uuid.UUID, input CreateItineraryInput) (*domain.Itinerary, error) {
	itinerary := &domain.Itinerary{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		ShareableID: uuid.New().String(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if !itinerary.ValidDateRange() {
		return nil, domain.ErrInvalidDateRange
	}

	if err := setActivities(itinerary, input.Activities); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, itinerary); err != nil {
		return nil, err
	}
	return itinerary, nil
}

func (s *ItineraryService) List(ctx context.Context, ownerID uuid.UUID, input ListItinerariesInput) (*ListItinerariesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 10
	}

	itineraries, total, err := s.repo.List(ctx, repository.ItineraryQuery{
		OwnerID:     ownerID,
		Destination: input.Destination,
		SortBy:      input.SortBy,
		Descending:  input.Descending,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListItinerariesResult{
		Itineraries: itineraries,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

func (s *ItineraryService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Itinerary, error) {
	itinerary, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Not owned and nonexistent are deliberately the same failure.
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return itinerary, nil
}

func (s *ItineraryService) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateItineraryInput) (*domain.Itinerary, error) {
	itinerary, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		itinerary.Title = *input.Title
	}
	if input.Destination != nil {
		itinerary.Destination = *input.Destination
	}
	if input.StartDate != nil {
		itinerary.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		itinerary.EndDate = *input.EndDate
	}
	if !itinerary.ValidDateRange() {
		return nil, domain.ErrInvalidDateRange
	}
	if input.Activities != nil {
		if err := setActivities(itinerary, *input.Activities); err != nil {
			return nil, err
		}
	}
	itinerary.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, itinerary); err != nil {
		return nil, err
	}
	return itinerary, nil
}

func (s *ItineraryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ItineraryService) GetShared(ctx context.Context, shareableID string) (*domain.PublicItinerary, error) {
	itinerary, err := s.repo.GetByShareableID(ctx, shareableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return itinerary.Public()
}

// ShareableLink derives the public URL granting read-only access.
func (s *ItineraryService) ShareableLink(itinerary *domain.Itinerary) string {
	return fmt.Sprintf("%s/api/v1/itineraries/share/%s", s.cfg.BaseURL, itinerary.ShareableID)
}

func setActivities(itinerary *domain.Itinerary, activities []domain.Activity) error {
	if activities == nil {
		activities = []domain.Activity{}
	}
	raw, err := json.Marshal(activities)
	if err != nil {
		return err
	}
	itinerary.Activities = raw
	return nil
}
