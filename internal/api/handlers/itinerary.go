package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kgrant/travel-itinerary-api/internal/api/middleware"
	"github.com/kgrant/travel-itinerary-api/internal/api/response"
	"github.com/kgrant/travel-itinerary-api/internal/domain"
	"github.com/kgrant/travel-itinerary-api/internal/service"
)

type ItineraryHandler struct {
	itineraryService *service.ItineraryService
}

func NewItineraryHandler(itineraryService *service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

type ActivityRequest struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type CreateItineraryRequest struct {
	Title       string            `json:"title"`
	Destination string            `json:"destination"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Activities  []ActivityRequest `json:"activities"`
}

type UpdateItineraryRequest struct {
	Title       *string            `json:"title"`
	Destination *string            `json:"destination"`
	StartDate   *string            `json:"startDate"`
	EndDate     *string            `json:"endDate"`
	Activities  *[]ActivityRequest `json:"activities"`
}

type ItineraryData struct {
	Itinerary     *domain.Itinerary `json:"itinerary"`
	ShareableLink string            `json:"shareableLink"`
}

// parseDate accepts the wire formats clients actually send: a plain date or
// a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func validateActivities(activities []ActivityRequest) []response.FieldError {
	var errs []response.FieldError
	for _, activity := range activities {
		if activity.Time == "" {
			errs = append(errs, response.FieldError{Field: "activities", Message: "Activity time is required"})
		}
		if strings.TrimSpace(activity.Description) == "" {
			errs = append(errs, response.FieldError{Field: "activities", Message: "Activity description is required"})
		}
		if strings.TrimSpace(activity.Location) == "" {
			errs = append(errs, response.FieldError{Field: "activities", Message: "Activity location is required"})
		}
	}
	return errs
}

func toActivities(requests []ActivityRequest) []domain.Activity {
	activities := make([]domain.Activity, 0, len(requests))
	for _, req := range requests {
		activities = append(activities, domain.Activity{
			Time:        req.Time,
			Description: strings.TrimSpace(req.Description),
			Location:    strings.TrimSpace(req.Location),
		})
	}
	return activities
}

func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var req CreateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []response.FieldError
	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > 100 {
		errs = append(errs, response.FieldError{Field: "title", Message: "Title is required and cannot exceed 100 characters"})
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" || len(destination) > 100 {
		errs = append(errs, response.FieldError{Field: "destination", Message: "Destination is required and cannot exceed 100 characters"})
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		errs = append(errs, response.FieldError{Field: "startDate", Message: "Start date must be a valid date"})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		errs = append(errs, response.FieldError{Field: "endDate", Message: "End date must be a valid date"})
	}
	errs = append(errs, validateActivities(req.Activities)...)
	if len(errs) > 0 {
		response.ValidationFailed(w, errs)
		return
	}

	itinerary, err := h.itineraryService.Create(r.Context(), userID, service.CreateItineraryInput{
		Title:       title,
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Activities:  toActivities(req.Activities),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			response.Error(w, http.StatusBadRequest, "End date must be after start date")
			return
		}
		log.Printf("ERROR [ItineraryHandler.Create] %v", err)
		response.Internal(w)
		return
	}

	response.Created(w, "Itinerary created successfully", ItineraryData{
		Itinerary:     itinerary,
		ShareableLink: h.itineraryService.ShareableLink(itinerary),
	})
}

func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	result, err := h.itineraryService.List(r.Context(), userID, service.ListItinerariesInput{
		Destination: query.Get("destination"),
		SortBy:      query.Get("sort"),
		Descending:  query.Get("order") == "desc",
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		log.Printf("ERROR [ItineraryHandler.List] %v", err)
		response.Internal(w)
		return
	}

	response.OK(w, map[string]interface{}{
		"itineraries": result.Itineraries,
		"pagination":  result.Pagination,
	})
}

func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	itinerary, err := h.itineraryService.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Itinerary not found")
			return
		}
		log.Printf("ERROR [ItineraryHandler.Get] %v", err)
		response.Internal(w)
		return
	}

	response.OK(w, ItineraryData{
		Itinerary:     itinerary,
		ShareableLink: h.itineraryService.ShareableLink(itinerary),
	})
}

func (h *ItineraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var req UpdateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var errs []response.FieldError
	input := service.UpdateItineraryInput{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 100 {
			errs = append(errs, response.FieldError{Field: "title", Message: "Title is required and cannot exceed 100 characters"})
		}
		input.Title = &title
	}
	if req.Destination != nil {
		destination := strings.TrimSpace(*req.Destination)
		if destination == "" || len(destination) > 100 {
			errs = append(errs, response.FieldError{Field: "destination", Message: "Destination is required and cannot exceed 100 characters"})
		}
		input.Destination = &destination
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			errs = append(errs, response.FieldError{Field: "startDate", Message: "Start date must be a valid date"})
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			errs = append(errs, response.FieldError{Field: "endDate", Message: "End date must be a valid date"})
		}
		input.EndDate = &endDate
	}
	if req.Activities != nil {
		errs = append(errs, validateActivities(*req.Activities)...)
		activities := toActivities(*req.Activities)
		input.Activities = &activities
	}
	if len(errs) > 0 {
		response.ValidationFailed(w, errs)
		return
	}

	itinerary, err := h.itineraryService.Update(r.Context(), userID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(w, http.StatusNotFound, "Itinerary not found")
		case errors.Is(err, domain.ErrInvalidDateRange):
			response.Error(w, http.StatusBadRequest, "End date must be after start date")
		default:
			log.Printf("ERROR [ItineraryHandler.Update] %v", err)
			response.Internal(w)
		}
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Itinerary updated successfully",
		Data: ItineraryData{
			Itinerary:     itinerary,
			ShareableLink: h.itineraryService.ShareableLink(itinerary),
		},
	})
}

func (h *ItineraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := h.itineraryService.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Itinerary not found")
			return
		}
		log.Printf("ERROR [ItineraryHandler.Delete] %v", err)
		response.Internal(w)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Itinerary deleted successfully",
	})
}

// GetShared serves the public, redacted view. No auth gate in front of it.
func (h *ItineraryHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	shareableID := chi.URLParam(r, "shareableId")

	itinerary, err := h.itineraryService.GetShared(r.Context(), shareableID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Shared itinerary not found")
			return
		}
		log.Printf("ERROR [ItineraryHandler.GetShared] %v", err)
		response.Internal(w)
		return
	}

	response.OK(w, map[string]interface{}{"itinerary": itinerary})
}
