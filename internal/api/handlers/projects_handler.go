package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/softdesk/api/internal/api/middleware"
	"github.com/softdesk/api/internal/api/types"
	"github.com/softdesk/api/internal/api/validators"
	"github.com/softdesk/api/internal/models"
	"github.com/softdesk/api/internal/scope"
	"github.com/softdesk/api/internal/services"
)

type ProjectsHandler struct {
	projects services.ProjectService
}

func NewProjectsHandler(projects services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.projects.List(r.Context(), middleware.CallerID(r.Context()))
	if err != nil {
		types.WriteError(w, err)
		return
	}
	out := make([]types.ProjectSummary, 0, len(items))
	for i := range items {
		out = append(out, types.NewProjectSummary(&items[i]))
	}
	types.WriteData(w, http.StatusOK, out)
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.projects.Create(r.Context(), middleware.CallerID(r.Context()), &services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        models.ProjectType(req.Type),
	})
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusCreated, types.NewProjectDetail(p))
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.Get(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()))
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusOK, types.NewProjectDetail(p))
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	in := &services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Type != nil {
		t := models.ProjectType(*req.Type)
		in.Type = &t
	}

	p, err := h.projects.Update(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), in)
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusOK, types.NewProjectDetail(p))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.projects.Delete(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()))
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteStatus(w, http.StatusOK, "project deleted successfully")
}
