package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/softdesk/api/internal/api/middleware"
	"github.com/softdesk/api/internal/api/types"
	"github.com/softdesk/api/internal/api/validators"
	"github.com/softdesk/api/internal/scope"
	"github.com/softdesk/api/internal/services"
	appErr "github.com/softdesk/api/pkg/errors"
)

type ContributorsHandler struct {
	projects services.ProjectService
}

func NewContributorsHandler(projects services.ProjectService) *ContributorsHandler {
	return &ContributorsHandler{projects: projects}
}

func (h *ContributorsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.projects.ListContributors(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()))
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

func (h *ContributorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		types.WriteError(w, appErr.NotFound("contributor not found"))
		return
	}
	user, err := h.projects.GetContributor(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), userID)
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusOK, types.NewContributorDetail(user))
}

func (h *ContributorsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req types.AddContributorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := uuid.Parse(req.User)
	if err != nil {
		types.WriteError(w, appErr.Invalid("this user does not exist"))
		return
	}

	if err := h.projects.AddContributor(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), userID); err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteStatus(w, http.StatusCreated, "contributor added successfully")
}

func (h *ContributorsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		types.WriteError(w, appErr.NotFound("contributor not found"))
		return
	}

	if err := h.projects.RemoveContributor(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), userID); err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteStatus(w, http.StatusOK, "contributor removed successfully")
}
