package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/softdesk/api/internal/models"
	"github.com/softdesk/api/internal/services"
	appErr "github.com/softdesk/api/pkg/errors"
)

type stubAuthService struct {
	registered *services.RegisterInput
	user       *models.User
	err        error
}

func (s *stubAuthService) Register(ctx context.Context, in *services.RegisterInput) (*models.User, error) {
	s.registered = in
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*services.TokenPair, *models.User, error) {
	return nil, nil, appErr.Unauthorized("invalid credentials")
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return "", appErr.Unauthorized("invalid or expired token")
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler()

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestSignup(t *testing.T) {
	post := func(h *AuthHandler, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.Signup(rec, httptest.NewRequest(http.MethodPost, "/api/v1/signup", strings.NewReader(body)))
		return rec
	}

	t.Run("creates the user and omits the credential", func(t *testing.T) {
		stub := &stubAuthService{user: &models.User{
			ID: uuid.New(), Username: "alice", Email: "alice@example.com", Age: 30,
			PasswordHash: "$2a$10$notforclients",
		}}
		rec := post(NewAuthHandler(stub), `{"username":"alice","email":"alice@example.com","password":"password123","age":30}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "password123", stub.registered.Password)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, true, body["success"])
		require.NotContains(t, rec.Body.String(), "notforclients")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		rec := post(NewAuthHandler(&stubAuthService{}), `{"username":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a short password before the service runs", func(t *testing.T) {
		stub := &stubAuthService{}
		rec := post(NewAuthHandler(stub), `{"username":"alice","email":"alice@example.com","password":"short","age":30}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Nil(t, stub.registered)
	})

	t.Run("maps service errors onto the envelope", func(t *testing.T) {
		stub := &stubAuthService{err: appErr.Invalid("age must be 16 or older")}
		rec := post(NewAuthHandler(stub), `{"username":"kid","email":"kid@example.com","password":"password123","age":15}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "age must be 16 or older")
	})
}
