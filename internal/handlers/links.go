package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/coachdesk/api/internal/models"
	"github.com/coachdesk/api/internal/services"
	pkghttp "github.com/coachdesk/api/pkg/http"
	"github.com/go-chi/chi/v5"
)

type LinkHandler struct {
	service *services.LinkService
}

func NewLinkHandler(service *services.LinkService) *LinkHandler {
	return &LinkHandler{service: service}
}

type CreateLinkRequest struct {
	CoachID      string     `json:"coach_id"`
	AthleteID    string     `json:"athlete_id" validate:"required"`
	AthleteEmail string     `json:"athlete_email" validate:"omitempty,email"`
	CoachName    string     `json:"coach_name"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

type SetLinkActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type LinkResponse struct {
	ID        string     `json:"id"`
	CoachID   string     `json:"coach_id"`
	AthleteID string     `json:"athlete_id"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedBy string     `json:"created_by"`
	CreatedAt string     `json:"created_at"`
}

type ListLinksResponse struct {
	Links []*LinkResponse `json:"links"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func linkToResponse(link *models.CoachAthleteLink) *LinkResponse {
	return &LinkResponse{
		ID:        link.ID,
		CoachID:   link.CoachID,
		AthleteID: link.AthleteID,
		StartDate: link.StartDate,
		EndDate:   link.EndDate,
		IsActive:  link.IsActive,
		CreatedBy: link.CreatedBy,
		CreatedAt: link.CreatedAt.Format(time.RFC3339),
	}
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	link, err := h.service.CreateLink(r.Context(), actor, services.CreateLinkInput{
		CoachID:      req.CoachID,
		AthleteID:    req.AthleteID,
		AthleteEmail: req.AthleteEmail,
		CoachName:    req.CoachName,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, linkToResponse(link))
}

func (h *LinkHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req SetLinkActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	link, err := h.service.SetLinkActive(r.Context(), actor, chi.URLParam(r, "id"), *req.IsActive)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, linkToResponse(link))
}

func (h *LinkHandler) ListForCoach(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	page, limit := pkghttp.ParsePagination(r)
	result, err := h.service.ListLinksForCoach(r.Context(), actor, chi.URLParam(r, "coachId"), page, limit)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	resp := ListLinksResponse{
		Links: make([]*LinkResponse, 0, len(result.Items)),
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}
	for _, link := range result.Items {
		resp.Links = append(resp.Links, linkToResponse(link))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteLink(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
