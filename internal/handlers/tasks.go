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

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type CreateTaskRequest struct {
	UserID  string     `json:"user_id" validate:"required"`
	Title   string     `json:"title" validate:"required,min=1"`
	DueDate *time.Time `json:"due_date"`
}

type TaskResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	CreatedBy string     `json:"created_by"`
	Title     string     `json:"title"`
	Done      bool       `json:"done"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

type ListTasksResponse struct {
	Tasks []*TaskResponse `json:"tasks"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func taskToResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:        task.ID,
		UserID:    task.UserID,
		CreatedBy: task.CreatedBy,
		Title:     task.Title,
		Done:      task.Done,
		DueDate:   task.DueDate,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	page, limit := pkghttp.ParsePagination(r)
	result, err := h.service.ListTasks(r.Context(), actor, parseListRequest(r), page, limit)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	resp := ListTasksResponse{
		Tasks: make([]*TaskResponse, 0, len(result.Items)),
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}
	for _, task := range result.Items {
		resp.Tasks = append(resp.Tasks, taskToResponse(task))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	task := &models.Task{
		UserID:  req.UserID,
		Title:   req.Title,
		DueDate: req.DueDate,
	}

	created, err := h.service.CreateTask(r.Context(), actor, task)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskToResponse(created))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
