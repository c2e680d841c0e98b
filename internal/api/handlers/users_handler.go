package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/softdesk/api/internal/api/middleware"
	"github.com/softdesk/api/internal/api/types"
	"github.com/softdesk/api/internal/api/validators"
	"github.com/softdesk/api/internal/services"
	appErr "github.com/softdesk/api/pkg/errors"
)

type UsersHandler struct {
	users services.UserService
}

func NewUsersHandler(users services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.users.List(r.Context())
	if err != nil {
		types.WriteError(w, err)
		return
	}
	out := make([]types.UserSummary, 0, len(items))
	for i := range items {
		out = append(out, types.NewUserSummary(&items[i]))
	}
	types.WriteData(w, http.StatusOK, out)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		types.WriteError(w, appErr.NotFound("user not found"))
		return
	}
	user, err := h.users.Get(r.Context(), middleware.CallerID(r.Context()), targetID)
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusOK, types.NewUserDetail(user))
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		types.WriteError(w, appErr.NotFound("user not found"))
		return
	}

	var req types.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Update(r.Context(), middleware.CallerID(r.Context()), targetID, &services.UpdateUserInput{
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
	types.WriteData(w, http.StatusOK, types.NewUserDetail(user))
}
