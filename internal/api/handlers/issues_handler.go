package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/softdesk/api/internal/api/middleware"
	"github.com/softdesk/api/internal/api/types"
	"github.com/softdesk/api/internal/api/validators"
	"github.com/softdesk/api/internal/models"
	"github.com/softdesk/api/internal/scope"
	"github.com/softdesk/api/internal/services"
	appErr "github.com/softdesk/api/pkg/errors"
)

type IssuesHandler struct {
	issues services.IssueService
}

func NewIssuesHandler(issues services.IssueService) *IssuesHandler {
	return &IssuesHandler{issues: issues}
}

func (h *IssuesHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.issues.List(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()))
	if err != nil {
		types.WriteError(w, err)
		return
	}
	out := make([]types.IssueSummary, 0, len(items))
	for i := range items {
		out = append(out, types.NewIssueSummary(&items[i]))
	}
	types.WriteData(w, http.StatusOK, out)
}

func (h *IssuesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	in := &services.CreateIssueInput{
		Name:        req.Name,
		Description: req.Description,
		Tag:         models.IssueTag(req.Tag),
		Priority:    models.IssuePriority(req.Priority),
	}
	if req.State != nil {
		s := models.IssueState(*req.State)
		in.State = &s
	}
	if req.Assignee != nil {
		id, err := uuid.Parse(*req.Assignee)
		if err != nil {
			types.WriteError(w, appErr.Invalid("assignee does not exist"))
			return
		}
		in.Assignee = &id
	}

	issue, err := h.issues.Create(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), in)
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusCreated, types.NewIssueDetail(issue))
}

func (h *IssuesHandler) Get(w http.ResponseWriter, r *http.Request) {
	issue, err := h.issues.Get(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), scope.Issue(r.Context()))
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusOK, types.NewIssueDetail(issue))
}

func (h *IssuesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	in := &services.UpdateIssueInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Tag != nil {
		t := models.IssueTag(*req.Tag)
		in.Tag = &t
	}
	if req.State != nil {
		s := models.IssueState(*req.State)
		in.State = &s
	}
	if req.Priority != nil {
		p := models.IssuePriority(*req.Priority)
		in.Priority = &p
	}
	if req.Assignee != nil {
		id, err := uuid.Parse(*req.Assignee)
		if err != nil {
			types.WriteError(w, appErr.Invalid("assignee does not exist"))
			return
		}
		in.Assignee = &id
	}

	issue, err := h.issues.Update(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), scope.Issue(r.Context()), in)
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusOK, types.NewIssueDetail(issue))
}

func (h *IssuesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.issues.Delete(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), scope.Issue(r.Context()))
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteStatus(w, http.StatusOK, "issue deleted successfully")
}
