package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/softdesk/api/internal/api/types"
	"github.com/softdesk/api/internal/api/validators"
	"github.com/softdesk/api/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup creates a user account. This is the one endpoint that requires no
// prior token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Register(r.Context(), &services.RegisterInput{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		Age:              req.Age,
		ContactConsent:   req.ContactConsent,
		DataShareConsent: req.DataShareConsent,
	})
	if err != nil {
		types.WriteError(w, err)
		return
	}

	// The credential is write-only; the response never echoes it.
	types.WriteData(w, http.StatusCreated, types.NewUserDetail(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	pair, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		types.WriteError(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, map[string]any{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user":    types.NewUserSummary(user),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req types.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	access, err := h.auth.Refresh(r.Context(), req.Refresh)
	if err != nil {
		types.WriteError(w, err)
		return
	}

	types.WriteData(w, http.StatusOK, map[string]any{"access": access})
}
