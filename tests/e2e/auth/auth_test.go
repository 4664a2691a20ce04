//go:build e2e

package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"carshare/internal/domain/user"
	reqdto "carshare/internal/handler/dto/request"
	resdto "carshare/internal/handler/dto/response"
	"carshare/tests/common/dbtest"
	"carshare/tests/common/httptest"
	"carshare/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", user.RoleMember.String())
	inactiveID := dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", user.RoleMember.String())
	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE id = $1", inactiveID)
	require.NoError(s.T(), err)
}

func (s *authSuite) TestRegister() {
	s.Run("a new account can register and then log in", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqdto.RegisterRequest{
			Email:    "fresh@example.com",
			Password: "password123",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res resdto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Equal(t, "fresh@example.com", res.Email)
		require.Equal(t, user.RoleMember.String(), res.Role)
		require.True(t, res.IsActive)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqdto.LoginRequest{
			Email:    "fresh@example.com",
			Password: "password123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("a taken email is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqdto.RegisterRequest{
			Email:    "member@example.com",
			Password: "password123",
		}, "")
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"valid credentials", "member@example.com", "password123", http.StatusOK},
		{"unknown user", "nobody@example.com", "password123", http.StatusUnauthorized},
		{"wrong password", "member@example.com", "wrongpassword", http.StatusUnauthorized},
		{"inactive account", "inactive@example.com", "password123", http.StatusForbidden},
		{"empty email", "", "password123", http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, map[string]string{
				"email":    tt.email,
				"password": tt.password,
			}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var res resdto.LoginResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				require.NotEmpty(t, res.AccessToken)
				require.NotEmpty(t, res.RefreshToken)

				var lastLogin any
				require.NoError(t, s.DB.QueryRow(t.Context(),
					"SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin))
				require.NotNil(t, lastLogin, "last_login was not recorded")
			}
		})
	}
}

func (s *authSuite) TestRefresh() {
	s.Run("a refresh token is exchanged for a new pair", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, map[string]string{
			"email":    "member@example.com",
			"password": "password123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var loginRes resdto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginRes))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			reqdto.RefreshRequest{RefreshToken: loginRes.RefreshToken}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res resdto.TokenPairResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.NotEmpty(t, res.AccessToken)
	})

	s.Run("an access token is not accepted for refresh", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, map[string]string{
			"email":    "member@example.com",
			"password": "password123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var loginRes resdto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginRes))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			reqdto.RefreshRequest{RefreshToken: loginRes.AccessToken}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("garbage is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			reqdto.RefreshRequest{RefreshToken: "not-a-token"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestMe() {
	s.Run("the caller's profile is returned without secrets", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, map[string]string{
			"email":    "member@example.com",
			"password": "password123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var loginRes resdto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginRes))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, loginRes.AccessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), "member@example.com")
		require.NotContains(t, w.Body.String(), "password")
	})

	s.Run("authentication is required", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "invalid-token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
