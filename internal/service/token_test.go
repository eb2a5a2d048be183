package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kgrant/travel-itinerary-api/internal/config"
	"github.com/kgrant/travel-itinerary-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenConfig(expirationHours int) *config.Config {
	return &config.Config{
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: expirationHours,
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := service.NewTokenService(tokenConfig(1))
	userID := uuid.New()

	token, err := tokens.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenService_Verify_Invalid(t *testing.T) {
	tokens := service.NewTokenService(tokenConfig(1))
	userID := uuid.New()

	valid, err := tokens.Issue(userID)
	require.NoError(t, err)

	otherSecret := service.NewTokenService(&config.Config{
		JWTSecret:          "a-completely-different-secret",
		JWTExpirationHours: 1,
	})
	forged, err := otherSecret.Issue(userID)
	require.NoError(t, err)

	expiredIssuer := service.NewTokenService(tokenConfig(-1))
	expired, err := expiredIssuer.Issue(userID)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-jwt-at-all"},
		{name: "structurally broken", token: "aaaa.bbbb"},
		{name: "tampered payload", token: valid[:len(valid)-4] + "XXXX"},
		{name: "wrong secret", token: forged},
		{name: "expired", token: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tokens.Verify(tt.token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
			assert.Equal(t, uuid.Nil, got)
		})
	}
}
