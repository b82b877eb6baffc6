package routes

import (
	"github.com/coachdesk/api/internal/auth"
	"github.com/coachdesk/api/internal/handlers"
	"github.com/coachdesk/api/internal/middleware"
	"github.com/coachdesk/api/internal/models"
	"github.com/go-chi/chi/v5"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	MealPlans *handlers.MealPlanHandler
	Programs  *handlers.ProgramHandler
	MealDays  *handlers.MealDayHandler
	Notes     *handlers.NoteHandler
	Tasks     *handlers.TaskHandler
	Reports   *handlers.ReportHandler
	Links     *handlers.LinkHandler
	Athletes  *handlers.AthleteHandler
}

// RegisterRoutes registers all application routes. Role middleware only does
// coarse gating; per-record and per-filter decisions live in the services.
func RegisterRoutes(router chi.Router, h Handlers, tokenManager *auth.TokenManager) {
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes - no authentication required
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", h.Auth.Login)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/refresh", h.Auth.Refresh)

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager))

		// Catalog resources: any authenticated role, scoped in the services
		r.Get("/meal-plans", h.MealPlans.List)
		r.Get("/meal-plans/{id}", h.MealPlans.Get)
		r.Get("/programs", h.Programs.List)
		r.Get("/programs/{id}", h.Programs.Get)
		r.Get("/meal-days", h.MealDays.List)
		r.Get("/notes", h.Notes.List)
		r.Get("/tasks", h.Tasks.List)

		// Daily reports and KPI aggregates
		r.Get("/reports/{id}", h.Reports.Get)
		r.Post("/reports", h.Reports.Create)
		r.Get("/athletes/{athleteId}/kpi-summary", h.Reports.GetKPISummary)

		// Logged results: athletes update their own, coaches through links
		r.Patch("/program-records/{id}", h.Programs.UpdateRecord)

		// Authoring requires coach or admin
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin, models.RoleCoach))

			r.Post("/meal-plans", h.MealPlans.Create)
			r.Delete("/meal-plans/{id}", h.MealPlans.Delete)
			r.Post("/programs", h.Programs.Create)
			r.Delete("/programs/{id}", h.Programs.Delete)
			r.Post("/meal-days", h.MealDays.Create)
			r.Delete("/meal-days/{id}", h.MealDays.Delete)
			r.Post("/notes", h.Notes.Create)
			r.Delete("/notes/{id}", h.Notes.Delete)
			r.Post("/tasks", h.Tasks.Create)
			r.Delete("/tasks/{id}", h.Tasks.Delete)

			// Delegation links
			r.Post("/links", h.Links.Create)
			r.Patch("/links/{id}", h.Links.SetActive)
			r.Get("/coaches/{coachId}/links", h.Links.ListForCoach)

			// Athlete profile soft delete
			r.Delete("/athletes/{userId}/info", h.Athletes.SoftDelete)
		})

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin))
			r.Delete("/links/{id}", h.Links.Delete)
		})
	})
}
