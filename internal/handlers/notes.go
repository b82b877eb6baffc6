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

type NoteHandler struct {
	service *services.NoteService
}

func NewNoteHandler(service *services.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

type CreateNoteRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Title  string `json:"title" validate:"required,min=1"`
	Body   string `json:"body"`
}

type NoteResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	CreatedBy string `json:"created_by"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListNotesResponse struct {
	Notes []*NoteResponse `json:"notes"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func noteToResponse(note *models.Note) *NoteResponse {
	return &NoteResponse{
		ID:        note.ID,
		UserID:    note.UserID,
		CreatedBy: note.CreatedBy,
		Title:     note.Title,
		Body:      note.Body,
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
		UpdatedAt: note.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	page, limit := pkghttp.ParsePagination(r)
	result, err := h.service.ListNotes(r.Context(), actor, parseListRequest(r), page, limit)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	resp := ListNotesResponse{
		Notes: make([]*NoteResponse, 0, len(result.Items)),
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}
	for _, note := range result.Items {
		resp.Notes = append(resp.Notes, noteToResponse(note))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	note := &models.Note{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	}

	created, err := h.service.CreateNote(r.Context(), actor, note)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, noteToResponse(created))
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteNote(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
