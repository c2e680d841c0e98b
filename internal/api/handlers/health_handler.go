package handlers

import (
	"net/http"

	"github.com/softdesk/api/internal/api/types"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	types.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	types.WriteData(w, http.StatusOK, map[string]string{"status": "ready"})
}
