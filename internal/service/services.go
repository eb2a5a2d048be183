package service

import (
	"github.com/kgrant/travel-itinerary-api/internal/config"
	"github.com/kgrant/travel-itinerary-api/internal/repository"
)

type Services struct {
	Token     *TokenService
	Auth      *AuthService
	Itinerary *ItineraryService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	tokens := NewTokenService(cfg)
	return &Services{
		Token:     tokens,
		Auth:      NewAuthService(repos.User, tokens),
		Itinerary: NewItineraryService(repos.Itinerary, cfg),
	}
}
