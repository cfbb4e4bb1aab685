package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fnitalia/community-hub/models"
	"github.com/fnitalia/community-hub/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Register(_ context.Context, _ services.RegisterInput) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(_ context.Context, _ services.LoginInput) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) UpdateUserRole(_ context.Context, _ int, role models.UserRole) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	updated := *s.user
	updated.Role = role
	return &updated, nil
}

func TestAuthHandler_Register_MintsToken(t *testing.T) {
	secret := []byte("test-secret")
	stub := &stubAuthService{
		user: &models.User{ID: 12, Nickname: "mario", Email: "mario@example.com", Role: models.RoleUser},
	}
	h := NewAuthHandler(stub, secret)

	rec := postJSON(t, h.Register, "/api/auth/register", map[string]string{
		"nickname": "mario",
		"email":    "mario@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var response struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 12, response.User.ID)
	require.NotEmpty(t, response.Token)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(response.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, float64(12), claims["user_id"])
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, "mario", claims["name"])
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{err: services.ErrAuthInvalidCredentials}
	h := NewAuthHandler(stub, []byte("test-secret"))

	rec := postJSON(t, h.Login, "/api/auth/login", map[string]string{
		"email":    "mario@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_UpdateUserRole(t *testing.T) {
	stub := &stubAuthService{
		user: &models.User{ID: 12, Nickname: "mario", Email: "mario@example.com", Role: models.RoleUser},
	}
	h := NewAuthHandler(stub, []byte("test-secret"))

	r := chi.NewRouter()
	r.Put("/api/admin/users/{userID}/role", h.UpdateUserRole)

	payload, err := json.Marshal(map[string]string{"role": "admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/12/role", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.RoleAdmin, response.User.Role)
}

func TestAuthHandler_UpdateUserRole_InvalidRole(t *testing.T) {
	stub := &stubAuthService{err: services.ErrInvalidRole}
	h := NewAuthHandler(stub, []byte("test-secret"))

	r := chi.NewRouter()
	r.Put("/api/admin/users/{userID}/role", h.UpdateUserRole)

	payload, err := json.Marshal(map[string]string{"role": "superadmin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/12/role", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubAuthService{err: services.ErrUserEmailConflict}
	h := NewAuthHandler(stub, []byte("test-secret"))

	rec := postJSON(t, h.Register, "/api/auth/register", map[string]string{
		"nickname": "mario",
		"email":    "mario@example.com",
		"password": "supersecret",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}
