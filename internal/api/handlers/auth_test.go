package handlers_test

import (
	"net/http"
	"testing"

	"github.com/kgrant/travel-itinerary-api/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, testutil.Envelope)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"email":    "new@example.com",
				"password": "password123",
				"name":     "New User",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, envelope testutil.Envelope) {
				assert.True(t, envelope.Success)
				assert.Equal(t, "User registered successfully", envelope.Message)

				var data testutil.AuthData
				testutil.DecodeData(t, envelope, &data)
				assert.Equal(t, "new@example.com", data.User.Email)
				assert.Equal(t, "New User", data.User.Name)
				assert.NotEmpty(t, data.Token)
				// The password hash must never appear in the response.
				assert.NotContains(t, string(envelope.Data), "password")
			},
		},
		{
			name: "invalid email",
			request: map[string]string{
				"email":    "not-an-email",
				"password": "password123",
				"name":     "User",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, envelope testutil.Envelope) {
				assert.Equal(t, "Validation failed", envelope.Message)
				assert.Len(t, envelope.Errors, 1)
				assert.Equal(t, "email", envelope.Errors[0].Field)
			},
		},
		{
			name: "password too short",
			request: map[string]string{
				"email":    "short@example.com",
				"password": "12345",
				"name":     "User",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, envelope testutil.Envelope) {
				assert.Equal(t, "Validation failed", envelope.Message)
				assert.Len(t, envelope.Errors, 1)
				assert.Equal(t, "password", envelope.Errors[0].Field)
			},
		},
		{
			name: "missing name",
			request: map[string]string{
				"email":    "noname@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"email":    "existing@example.com",
				"password": "password123",
				"name":     "Second",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, envelope testutil.Envelope) {
				assert.Equal(t, "User with this email already exists", envelope.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := doJSON(t, http.MethodPost, ts.APIURL("/auth/register"), "", tt.request)

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, testutil.DecodeEnvelope(t, resp))
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	t.Run("valid credentials", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]string{
			"email":    "login@example.com",
			"password": "correctpassword",
		})

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		envelope := testutil.DecodeEnvelope(t, resp)
		assert.Equal(t, "Login successful", envelope.Message)

		var data testutil.AuthData
		testutil.DecodeData(t, envelope, &data)
		assert.NotEmpty(t, data.Token)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPassword := doJSON(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]string{
			"email":    "login@example.com",
			"password": "wrongpassword",
		})
		unknownEmail := doJSON(t, http.MethodPost, ts.APIURL("/auth/login"), "", map[string]string{
			"email":    "ghost@example.com",
			"password": "correctpassword",
		})

		testutil.AssertStatusCode(t, wrongPassword, http.StatusUnauthorized)
		testutil.AssertStatusCode(t, unknownEmail, http.StatusUnauthorized)

		first := testutil.DecodeEnvelope(t, wrongPassword)
		second := testutil.DecodeEnvelope(t, unknownEmail)
		assert.Equal(t, "Invalid email or password", first.Message)
		assert.Equal(t, first.Message, second.Message)
	})
}

func TestAuthHandler_Profile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithEmail("profile@example.com").
		WithName("Profile User").
		BuildAndAuthenticate(t, ts)

	t.Run("without token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/auth/profile"), "", nil)
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Access denied. No token provided.")
	})

	t.Run("with token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/auth/profile"), token, nil)

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		envelope := testutil.DecodeEnvelope(t, resp)

		var data struct {
			User struct {
				ID    string `json:"id"`
				Email string `json:"email"`
				Name  string `json:"name"`
			} `json:"user"`
		}
		testutil.DecodeData(t, envelope, &data)
		assert.Equal(t, user.ID.String(), data.User.ID)
		assert.Equal(t, "profile@example.com", data.User.Email)
		assert.Equal(t, "Profile User", data.User.Name)
	})
}
