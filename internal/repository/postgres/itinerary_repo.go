package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/kgrant/travel-itinerary-api/internal/domain"
	"github.com/kgrant/travel-itinerary-api/internal/repository"
	"gorm.io/gorm"
)

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) *itineraryRepository {
	return &itineraryRepository{db: db}
}

// sortColumns whitelists sortable fields. Anything else falls back to
// created_at so a crafted sort param can never reach the SQL string.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"startDate":   "start_date",
	"endDate":     "end_date",
	"title":       "title",
	"destination": "destination",
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *domain.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Itinerary, error) {
	var itinerary domain.Itinerary
	err := r.db.WithContext(ctx).First(&itinerary, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) GetByShareableID(ctx context.Context, shareableID string) (*domain.Itinerary, error) {
	var itinerary domain.Itinerary
	err := r.db.WithContext(ctx).First(&itinerary, "shareable_id = ?", shareableID).Error
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) List(ctx context.Context, query repository.ItineraryQuery) ([]*domain.Itinerary, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Itinerary{}).Where("owner_id = ?", query.OwnerID)
	if query.Destination != "" {
		tx = tx.Where("destination ILIKE ?", "%"+query.Destination+"%")
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = "created_at"
	}
	order := column + " ASC"
	if query.Descending {
		order = column + " DESC"
	}

	var itineraries []*domain.Itinerary
	err := tx.Session(&gorm.Session{}).Order(order).Limit(query.Limit).Offset(query.Offset).Find(&itineraries).Error
	if err != nil {
		return nil, 0, err
	}
	return itineraries, total, nil
}

func (r *itineraryRepository) Update(ctx context.Context, itinerary *domain.Itinerary) error {
	return r.db.WithContext(ctx).Save(itinerary).Error
}

func (r *itineraryRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Itinerary{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
