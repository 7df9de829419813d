package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Pricing            *PricingHandler
	ServiceImprovement *ServiceImprovementHandler
	Maintenance        *MaintenanceHandler
	Simulation         *SimulationHandler
}

func NewRouter(h Handlers, limiter *RateLimiter, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware, LoggingMiddleware(log))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(RateLimitMiddleware(limiter, log))
	api.HandleFunc("/pricing", h.Pricing.CalculatePrice).Methods(http.MethodPost)
	api.HandleFunc("/service-improvement", h.ServiceImprovement.Estimate).Methods(http.MethodPost)
	api.HandleFunc("/maintenance", h.Maintenance.Advise).Methods(http.MethodPost)
	api.HandleFunc("/simulation", h.Simulation.Run).Methods(http.MethodPost)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, log, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, log, http.StatusNotFound, "not found")
	})

	return r
}
