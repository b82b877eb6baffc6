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

type MealDayHandler struct {
	service *services.MealDayService
}

func NewMealDayHandler(service *services.MealDayService) *MealDayHandler {
	return &MealDayHandler{service: service}
}

type CreateMealDayRequest struct {
	Name       string     `json:"name" validate:"required,min=1"`
	OwnerID    string     `json:"owner_id"`
	Visibility string     `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	Date       *time.Time `json:"date"`
}

type MealDayResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	OwnerID    string     `json:"owner_id"`
	CreatedBy  string     `json:"created_by"`
	Visibility string     `json:"visibility"`
	Date       *time.Time `json:"date,omitempty"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
}

type ListMealDaysResponse struct {
	MealDays []*MealDayResponse `json:"meal_days"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

func mealDayToResponse(day *models.MealDay) *MealDayResponse {
	return &MealDayResponse{
		ID:         day.ID,
		Name:       day.Name,
		OwnerID:    day.OwnerID,
		CreatedBy:  day.CreatedBy,
		Visibility: string(day.Visibility),
		Date:       day.Date,
		CreatedAt:  day.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  day.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *MealDayHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	page, limit := pkghttp.ParsePagination(r)
	result, err := h.service.ListMealDays(r.Context(), actor, parseListRequest(r), page, limit)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	resp := ListMealDaysResponse{
		MealDays: make([]*MealDayResponse, 0, len(result.Items)),
		Total:    result.Total,
		Page:     result.Page,
		Limit:    result.Limit,
	}
	for _, day := range result.Items {
		resp.MealDays = append(resp.MealDays, mealDayToResponse(day))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *MealDayHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req CreateMealDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	day := &models.MealDay{
		Name:       req.Name,
		OwnerID:    req.OwnerID,
		Visibility: models.Visibility(req.Visibility),
		Date:       req.Date,
	}

	created, err := h.service.CreateMealDay(r.Context(), actor, day)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mealDayToResponse(created))
}

func (h *MealDayHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMealDay(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
