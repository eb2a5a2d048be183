package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/kgrant/travel-itinerary-api/internal/api/middleware"
	"github.com/kgrant/travel-itinerary-api/internal/api/response"
	"github.com/kgrant/travel-itinerary-api/internal/domain"
	"github.com/kgrant/travel-itinerary-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthData struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (r *RegisterRequest) validate() []response.FieldError {
	var errs []response.FieldError
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, response.FieldError{Field: "email", Message: "Please enter a valid email"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, response.FieldError{Field: "password", Message: "Password must be at least 6 characters long"})
	}
	name := strings.TrimSpace(r.Name)
	if name == "" || len(name) > 50 {
		errs = append(errs, response.FieldError{Field: "name", Message: "Name is required and cannot exceed 50 characters"})
	}
	return errs
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := req.validate(); len(errs) > 0 {
		response.ValidationFailed(w, errs)
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     strings.TrimSpace(req.Name),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Error(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		log.Printf("ERROR [AuthHandler.Register] %v", err)
		response.Internal(w)
		return
	}

	response.JSON(w, http.StatusCreated, response.Envelope{
		Success: true,
		Message: "User registered successfully",
		Data:    AuthData{User: result.User, Token: result.Token},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	var errs []response.FieldError
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, response.FieldError{Field: "email", Message: "Please enter a valid email"})
	}
	if req.Password == "" {
		errs = append(errs, response.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		response.ValidationFailed(w, errs)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("ERROR [AuthHandler.Login] %v", err)
		response.Internal(w)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Success: true,
		Message: "Login successful",
		Data:    AuthData{User: result.User, Token: result.Token},
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [AuthHandler.Profile] %v", err)
		response.Internal(w)
		return
	}

	response.OK(w, map[string]interface{}{"user": user})
}
