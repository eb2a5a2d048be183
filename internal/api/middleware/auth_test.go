package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kgrant/travel-itinerary-api/internal/api/middleware"
	"github.com/kgrant/travel-itinerary-api/internal/config"
	"github.com/kgrant/travel-itinerary-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tokens := service.NewTokenService(&config.Config{
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
	})

	userID := uuid.New()
	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var reached bool
	handler := middleware.Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotUserID, _ = middleware.GetUserID(r.Context())
	}))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectReached  bool
	}{
		{
			name:           "valid bearer token",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
			expectReached:  true,
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic " + token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "blank credential",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			header:         "Bearer not-a-token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			r := httptest.NewRequest(http.MethodGet, "/api/v1/itineraries", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectReached, reached)
			if tt.expectReached {
				assert.Equal(t, userID, gotUserID)
			} else {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}
