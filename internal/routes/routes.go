package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridareporta/backend/internal/auth"
	"github.com/meridareporta/backend/internal/handlers"
	"github.com/meridareporta/backend/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	reportHandler *handlers.ReportHandler,
	moderationHandler *handlers.ModerationHandler,
	tokenManager *auth.TokenManager,
	banChecker middleware.BanChecker,
) {
	submitLimit := middleware.DefaultSubmissionRateLimit()

	// All routes require authentication; token issuance lives in the
	// identity service.
	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(tokenManager))

		// Any authenticated user
		r.With(
			middleware.RateLimitByIP(submitLimit),
			middleware.RequireNotBanned(banChecker),
		).Post("/reports", reportHandler.CreateReport)
		r.Get("/reports", reportHandler.ListReports)
		r.Get("/reports/{id}", reportHandler.GetReport)
		r.Delete("/reports/{id}", reportHandler.DeleteReport)
		r.Get("/moderation/status", moderationHandler.GetMyBanStatus)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole("admin"))
			r.Put("/reports/{id}/status", reportHandler.UpdateReportStatus)
			r.Get("/moderation/users/{id}/status", moderationHandler.GetUserBanStatus)
			r.Get("/moderation/users/{id}/strikes", moderationHandler.GetUserStrikes)
			r.Post("/moderation/users/{id}/unban", moderationHandler.UnbanUser)
		})
	})
}
