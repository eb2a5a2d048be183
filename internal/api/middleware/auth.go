package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kgrant/travel-itinerary-api/internal/api/response"
	"github.com/kgrant/travel-itinerary-api/internal/service"
)

type contextKey string

const UserIDKey contextKey = "userID"

// Auth is the gate in front of every ownership-scoped route. It extracts the
// bearer token, verifies it, and puts the resolved user id on the request
// context. The public share route is wired outside this middleware.
func Auth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token verification failed: %v", err)
				response.Error(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
