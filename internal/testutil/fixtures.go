package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kgrant/travel-itinerary-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	name     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("test_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
		name:     "Test User",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Name:         b.name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthData matches the data object of the API auth responses
type AuthData struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

// BuildAndAuthenticate creates a user via the API and returns the user and token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"password": b.password,
		"name":     b.name,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope struct {
		Data AuthData `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(envelope.Data.User.ID)
	user := &domain.User{
		ID:    userID,
		Email: envelope.Data.User.Email,
		Name:  envelope.Data.User.Name,
	}

	return user, envelope.Data.Token
}

// ItineraryBuilder creates test itineraries with a builder pattern
type ItineraryBuilder struct {
	owner       *domain.User
	title       string
	destination string
	startDate   time.Time
	endDate     time.Time
	activities  []domain.Activity
}

// NewItineraryBuilder creates a new ItineraryBuilder with default values
func NewItineraryBuilder(owner *domain.User) *ItineraryBuilder {
	return &ItineraryBuilder{
		owner:       owner,
		title:       "Paris Trip",
		destination: "Paris, France",
		startDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		endDate:     time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
	}
}

// WithTitle sets the title
func (b *ItineraryBuilder) WithTitle(title string) *ItineraryBuilder {
	b.title = title
	return b
}

// WithDestination sets the destination
func (b *ItineraryBuilder) WithDestination(destination string) *ItineraryBuilder {
	b.destination = destination
	return b
}

// WithDates sets the start and end dates
func (b *ItineraryBuilder) WithDates(start, end time.Time) *ItineraryBuilder {
	b.startDate = start
	b.endDate = end
	return b
}

// WithActivities sets the activity list
func (b *ItineraryBuilder) WithActivities(activities ...domain.Activity) *ItineraryBuilder {
	b.activities = activities
	return b
}

// Build creates the itinerary in the database
func (b *ItineraryBuilder) Build(t *testing.T, db *gorm.DB) *domain.Itinerary {
	t.Helper()

	activities := b.activities
	if activities == nil {
		activities = []domain.Activity{}
	}
	raw, err := json.Marshal(activities)
	if err != nil {
		t.Fatalf("failed to marshal activities: %v", err)
	}

	itinerary := &domain.Itinerary{
		ID:          uuid.New(),
		OwnerID:     b.owner.ID,
		Title:       b.title,
		Destination: b.destination,
		StartDate:   b.startDate,
		EndDate:     b.endDate,
		Activities:  raw,
		ShareableID: uuid.New().String(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := db.Create(itinerary).Error; err != nil {
		t.Fatalf("failed to create itinerary: %v", err)
	}

	return itinerary
}
