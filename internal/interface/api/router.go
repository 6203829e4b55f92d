package api

import (
	"net/http"

	"trainops-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	logger     logger.Logger
}

// NewRouter creates a new API router
func NewRouter(handler *Handler, logger logger.Logger) *Router {
	return &Router{
		handler:    handler,
		middleware: NewMiddleware(logger),
		logger:     logger,
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(nil))

	router.Route("/api/v1", func(router chi.Router) {
		// Mission routes
		router.Post("/missions", r.handler.CreateMission)
		router.Get("/missions", r.handler.ListMissions)
		router.Post("/missions/check-availability", r.handler.CheckAvailability)
		router.Post("/missions/time-blocks", r.handler.PreviewTimeBlocks)
		router.Get("/missions/{id}", r.handler.GetMission)
		router.Post("/missions/{id}/cancel", r.handler.CancelMission)
		router.Post("/missions/{id}/complete", r.handler.CompleteMission)
		router.Post("/missions/{id}/invoice", r.handler.IssueInvoice)

		// Enrollment routes
		router.Post("/enrollments", r.handler.CreateEnrollment)
		router.Get("/enrollments/{id}/missions", r.handler.ListEnrollmentMissions)
		router.Get("/enrollments/{id}/progress", r.handler.GetProgress)
		router.Get("/enrollments/{id}/suggestions", r.handler.GetSuggestions)
		router.Get("/students/{id}/enrollments", r.handler.ListStudentEnrollments)

		// Availability routes; students use the same records keyed by their
		// own profile ID
		router.Put("/instructors/{id}/availability", r.handler.UpsertAvailability)
		router.Get("/instructors/{id}/availability", r.handler.ListAvailability)

		// Aircraft routes
		router.Get("/aircraft", r.handler.ListAircraft)
		router.Get("/aircraft/{id}", r.handler.GetAircraft)
		router.Get("/aircraft/{id}/maintenance", r.handler.ListMaintenance)

		// Syllabus routes
		router.Get("/syllabi/{id}", r.handler.GetSyllabus)
		router.Get("/syllabi/{id}/lessons", r.handler.ListSyllabusLessons)

		// Plan of action and debrief routes
		router.Post("/missions/{id}/plan-of-action", r.handler.GeneratePlan)
		router.Get("/missions/{id}/plan-of-action", r.handler.GetPlan)
		router.Post("/missions/{id}/debrief", r.handler.GenerateDebrief)
		router.Get("/missions/{id}/debrief", r.handler.GetDebrief)

		// Document routes
		router.Post("/documents", r.handler.CreateDocument)
		router.Get("/documents/{id}", r.handler.GetDocument)
		router.Get("/students/{id}/documents", r.handler.ListOwnerDocuments)

		// Invoice routes
		router.Get("/invoices/{id}", r.handler.GetInvoice)
		router.Get("/students/{id}/invoices", r.handler.ListStudentInvoices)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
