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

type CommentsHandler struct {
	comments services.CommentService
}

func NewCommentsHandler(comments services.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

func commentID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		return uuid.Nil, appErr.NotFound("comment not found")
	}
	return id, nil
}

func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.comments.List(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), scope.Issue(r.Context()))
	if err != nil {
		types.WriteError(w, err)
		return
	}
	out := make([]types.CommentSummary, 0, len(items))
	for i := range items {
		out = append(out, types.NewCommentSummary(&items[i]))
	}
	types.WriteData(w, http.StatusOK, out)
}

func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.comments.Create(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), scope.Issue(r.Context()), &services.CreateCommentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusCreated, types.NewCommentDetail(comment))
}

func (h *CommentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := commentID(r)
	if err != nil {
		types.WriteError(w, err)
		return
	}
	comment, err := h.comments.Get(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), scope.Issue(r.Context()), id)
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusOK, types.NewCommentDetail(comment))
}

func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := commentID(r)
	if err != nil {
		types.WriteError(w, err)
		return
	}

	var req types.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		types.WriteErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.comments.Update(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), scope.Issue(r.Context()), id, &services.UpdateCommentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteData(w, http.StatusOK, types.NewCommentDetail(comment))
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := commentID(r)
	if err != nil {
		types.WriteError(w, err)
		return
	}
	if err := h.comments.Delete(r.Context(), middleware.CallerID(r.Context()), scope.Project(r.Context()), scope.Issue(r.Context()), id); err != nil {
		types.WriteError(w, err)
		return
	}
	types.WriteStatus(w, http.StatusOK, "comment deleted successfully")
}
