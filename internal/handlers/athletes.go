package handlers

import (
	"net/http"

	"github.com/coachdesk/api/internal/services"
	pkghttp "github.com/coachdesk/api/pkg/http"
	"github.com/go-chi/chi/v5"
)

type AthleteHandler struct {
	service *services.AthleteService
}

func NewAthleteHandler(service *services.AthleteService) *AthleteHandler {
	return &AthleteHandler{service: service}
}

// SoftDelete marks an athlete profile deleted. Denied and missing profiles
// both answer 404: the caller learns nothing about what exists.
func (h *AthleteHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.SoftDeleteAthleteInfo(r.Context(), actor, chi.URLParam(r, "userId"))
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}
	if !deleted {
		pkghttp.WriteNotFound(w, "resource not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
