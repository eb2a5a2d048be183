package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity is one entry in an itinerary's day plan. The list is ordered and
// stored as a single JSON column rather than a child table.
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type Itinerary struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID      `json:"ownerId" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Destination string         `json:"destination" gorm:"not null;index"`
	StartDate   time.Time      `json:"startDate" gorm:"not null"`
	EndDate     time.Time      `json:"endDate" gorm:"not null"`
	Activities  datatypes.JSON `json:"activities"`
	ShareableID string         `json:"shareableId" gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ValidDateRange reports whether the trip ends strictly after it starts.
// Equal dates are rejected.
func (i *Itinerary) ValidDateRange() bool {
	return i.EndDate.After(i.StartDate)
}

// ActivityList decodes the JSON activities column. A null or empty column
// decodes to an empty slice, never nil, so responses serialize as [].
func (i *Itinerary) ActivityList() ([]Activity, error) {
	activities := []Activity{}
	if len(i.Activities) == 0 {
		return activities, nil
	}
	if err := json.Unmarshal(i.Activities, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// PublicItinerary is the redacted projection served on the share route.
// It carries no owner id and no internal id.
type PublicItinerary struct {
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Activities  []Activity `json:"activities"`
	ShareableID string     `json:"shareableId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Public returns the redacted view of the itinerary.
func (i *Itinerary) Public() (*PublicItinerary, error) {
	activities, err := i.ActivityList()
	if err != nil {
		return nil, err
	}
	return &PublicItinerary{
		Title:       i.Title,
		Destination: i.Destination,
		StartDate:   i.StartDate,
		EndDate:     i.EndDate,
		Activities:  activities,
		ShareableID: i.ShareableID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}, nil
}
