package routes

import (
	"net/http"

	"github.com/careloop/visitprep/internal/api/handlers"
	"github.com/careloop/visitprep/internal/api/middleware"
	"github.com/careloop/visitprep/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	appointmentHandler *handlers.AppointmentHandler
	visitHandler       *handlers.VisitHandler
	sseHandler         *handlers.SSEHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	appointmentHandler *handlers.AppointmentHandler,
	visitHandler *handlers.VisitHandler,
	sseHandler *handlers.SSEHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		appointmentHandler: appointmentHandler,
		visitHandler:       visitHandler,
		sseHandler:         sseHandler,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Appointment collection endpoints
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.CreateAppointment)
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("GET /api/appointments/{id}", r.appointmentHandler.GetAppointment)
	r.mux.HandleFunc("PATCH /api/appointments/{id}", r.appointmentHandler.UpdateAppointment)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.appointmentHandler.DeleteAppointment)

	// Workflow gate policy
	r.mux.HandleFunc("GET /api/appointments/{id}/phases", r.visitHandler.GetPhaseStates)

	// Collect endpoints: provider calls, nothing persisted
	r.mux.HandleFunc("POST /api/visits/health-data/sync", r.visitHandler.SyncHealthData)
	r.mux.HandleFunc("POST /api/visits/documents/import", r.visitHandler.ImportDocuments)
	r.mux.HandleFunc("POST /api/visits/insights/synthesize", r.visitHandler.SynthesizeInsights)
	r.mux.HandleFunc("POST /api/visits/agenda/generate", r.visitHandler.GenerateAgenda)
	r.mux.HandleFunc("POST /api/visits/recap/record", r.visitHandler.RecordRecap)

	// Complete endpoints: persist collected results and advance status
	r.mux.HandleFunc("POST /api/appointments/{id}/ingest/complete", r.visitHandler.CompleteIngest)
	r.mux.HandleFunc("POST /api/appointments/{id}/synthesize/complete", r.visitHandler.CompleteSynthesize)
	r.mux.HandleFunc("POST /api/appointments/{id}/prepare/complete", r.visitHandler.CompletePrepare)
	r.mux.HandleFunc("POST /api/appointments/{id}/recap/complete", r.visitHandler.CompleteRecap)

	// Event streams
	r.mux.HandleFunc("GET /api/stream/appointments", r.sseHandler.StreamAppointmentUpdates)
	r.mux.HandleFunc("GET /api/stream/appointments/{id}", r.sseHandler.StreamVisitUpdates)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
