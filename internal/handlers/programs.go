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

type ProgramHandler struct {
	service *services.ProgramService
}

func NewProgramHandler(service *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

type CreateProgramRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}

type UpdateProgramRecordRequest struct {
	Weight   *float64   `json:"weight" validate:"omitempty,gte=0"`
	Reps     *int       `json:"reps" validate:"omitempty,gte=0"`
	Sets     *int       `json:"sets" validate:"omitempty,gte=0"`
	LoggedAt *time.Time `json:"logged_at"`
}

type ProgramResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
	UserID      string `json:"user_id,omitempty"`
	Visibility  string `json:"visibility"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ProgramRecordResponse struct {
	ID        string  `json:"id"`
	ProgramID string  `json:"program_id"`
	UserID    string  `json:"user_id"`
	CreatedBy string  `json:"created_by"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Sets      int     `json:"sets"`
	LoggedAt  string  `json:"logged_at"`
}

type ListProgramsResponse struct {
	Programs []*ProgramResponse `json:"programs"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

func programToResponse(program *models.Program) *ProgramResponse {
	return &ProgramResponse{
		ID:          program.ID,
		Name:        program.Name,
		Description: program.Description,
		CreatedBy:   program.CreatedBy,
		UserID:      program.UserID,
		Visibility:  string(program.Visibility),
		CreatedAt:   program.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   program.UpdatedAt.Format(time.RFC3339),
	}
}

func programRecordToResponse(record *models.ProgramRecord) *ProgramRecordResponse {
	return &ProgramRecordResponse{
		ID:        record.ID,
		ProgramID: record.ProgramID,
		UserID:    record.UserID,
		CreatedBy: record.CreatedBy,
		Weight:    record.Weight,
		Reps:      record.Reps,
		Sets:      record.Sets,
		LoggedAt:  record.LoggedAt.Format(time.RFC3339),
	}
}

func (h *ProgramHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	page, limit := pkghttp.ParsePagination(r)
	result, err := h.service.ListPrograms(r.Context(), actor, parseListRequest(r), page, limit)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	resp := ListProgramsResponse{
		Programs: make([]*ProgramResponse, 0, len(result.Items)),
		Total:    result.Total,
		Page:     result.Page,
		Limit:    result.Limit,
	}
	for _, program := range result.Items {
		resp.Programs = append(resp.Programs, programToResponse(program))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ProgramHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	program, err := h.service.GetProgram(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, programToResponse(program))
}

func (h *ProgramHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req CreateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	program := &models.Program{
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		Visibility:  models.Visibility(req.Visibility),
	}

	created, err := h.service.CreateProgram(r.Context(), actor, program)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, programToResponse(created))
}

func (h *ProgramHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProgram(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateRecord handles logged-result mutations. Inaccessible records answer
// 404, exactly like missing ones.
func (h *ProgramHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req UpdateProgramRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	update := services.ProgramRecordUpdate{
		Weight:   req.Weight,
		Reps:     req.Reps,
		Sets:     req.Sets,
		LoggedAt: req.LoggedAt,
	}

	record, err := h.service.UpdateProgramRecord(r.Context(), actor, chi.URLParam(r, "id"), update)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}
	if record == nil {
		pkghttp.WriteNotFound(w, "resource not found")
		return
	}

	writeJSON(w, http.StatusOK, programRecordToResponse(record))
}
