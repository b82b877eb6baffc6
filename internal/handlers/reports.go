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

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type CreateDailyReportRequest struct {
	UserID  string     `json:"user_id"`
	Date    *time.Time `json:"date"`
	Weight  *float64   `json:"weight" validate:"omitempty,gte=0"`
	Sleep   *float64   `json:"sleep" validate:"omitempty,gte=0,lte=24"`
	Mood    *int       `json:"mood" validate:"omitempty,gte=1,lte=5"`
	Comment string     `json:"comment"`
}

type DailyReportResponse struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	CreatedBy string   `json:"created_by"`
	Date      string   `json:"date"`
	Weight    *float64 `json:"weight,omitempty"`
	Sleep     *float64 `json:"sleep,omitempty"`
	Mood      *int     `json:"mood,omitempty"`
	Comment   string   `json:"comment,omitempty"`
}

type KPISummaryResponse struct {
	AthleteID   string   `json:"athlete_id"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	ReportCount int      `json:"report_count"`
	AvgWeight   *float64 `json:"avg_weight,omitempty"`
	AvgSleep    *float64 `json:"avg_sleep,omitempty"`
	AvgMood     *float64 `json:"avg_mood,omitempty"`
}

func dailyReportToResponse(report *models.DailyReport) *DailyReportResponse {
	return &DailyReportResponse{
		ID:        report.ID,
		UserID:    report.UserID,
		CreatedBy: report.CreatedBy,
		Date:      report.Date.Format(time.RFC3339),
		Weight:    report.Weight,
		Sleep:     report.Sleep,
		Mood:      report.Mood,
		Comment:   report.Comment,
	}
}

// parseDateRange reads from/to query params, defaulting to the last 30 days.
func parseDateRange(r *http.Request) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = t
		}
	}

	return from, to
}

func (h *ReportHandler) GetKPISummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	from, to := parseDateRange(r)
	summary, err := h.service.GetKPISummary(r.Context(), actor, chi.URLParam(r, "athleteId"), from, to)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, KPISummaryResponse{
		AthleteID:   summary.AthleteID,
		From:        summary.From.Format(time.RFC3339),
		To:          summary.To.Format(time.RFC3339),
		ReportCount: summary.ReportCount,
		AvgWeight:   summary.AvgWeight,
		AvgSleep:    summary.AvgSleep,
		AvgMood:     summary.AvgMood,
	})
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	report, err := h.service.GetDailyReport(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dailyReportToResponse(report))
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req CreateDailyReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	report := &models.DailyReport{
		UserID:  req.UserID,
		Weight:  req.Weight,
		Sleep:   req.Sleep,
		Mood:    req.Mood,
		Comment: req.Comment,
	}
	if req.Date != nil {
		report.Date = *req.Date
	}

	created, err := h.service.CreateDailyReport(r.Context(), actor, report)
	if err != nil {
		pkghttp.WriteDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dailyReportToResponse(created))
}
