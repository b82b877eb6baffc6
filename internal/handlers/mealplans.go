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

type MealPlanHandler struct {
	service *services.MealPlanService
}

func NewMealPlanHandler(service *services.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{service: service}
}

type CreateMealPlanRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}

type MealPlanResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
	UserID      string `json:"user_id,omitempty"`
	Visibility  string `json:"visibility"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ListMealPlansResponse struct {
	MealPlans []*MealPlanResponse `json:"meal_plans"`
	Total     int                 `json:"total"`
	Page      int                 `json:"page"`
	Limit     int                 `json:"limit"`
}

func mealPlanToResponse(plan *models.MealPlan) *MealPlanResponse {
	return &MealPlanResponse{
		ID:          plan.ID,
		Name:        plan.Name,
		Description: plan.Description,
		CreatedBy:   plan.CreatedBy,
		UserID:      plan.UserID,
		Visibility:  string(plan.Visibility),
		CreatedAt:   plan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   plan.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	page, limit := pkghttp.ParsePagination(r)
	result, err := h.service.ListMealPlans(r.Context(), actor, parseListRequest(r), page, limit)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	resp := ListMealPlansResponse{
		MealPlans: make([]*MealPlanResponse, 0, len(result.Items)),
		Total:     result.Total,
		Page:      result.Page,
		Limit:     result.Limit,
	}
	for _, plan := range result.Items {
		resp.MealPlans = append(resp.MealPlans, mealPlanToResponse(plan))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *MealPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	plan, err := h.service.GetMealPlan(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mealPlanToResponse(plan))
}

func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req CreateMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	plan := &models.MealPlan{
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		Visibility:  models.Visibility(req.Visibility),
	}

	created, err := h.service.CreateMealPlan(r.Context(), actor, plan)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mealPlanToResponse(created))
}

func (h *MealPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMealPlan(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
