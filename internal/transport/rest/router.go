package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"pulsepoll/internal/config"
	"pulsepoll/internal/service"
	"pulsepoll/internal/transport/rest/handler"
	"pulsepoll/internal/transport/rest/middleware"
	"pulsepoll/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Config           *config.Config
	AuthService      *service.AuthService
	ResponseService  *service.ResponseService
	InsightService   *service.InsightService
	ForecastService  *service.ForecastService
	AttentionService *service.AttentionService
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	analyticsHandler := handler.NewAnalyticsHandler(c.InsightService, c.ForecastService, c.AttentionService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/surveys/{surveyId}/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Owner routes (require owner auth)
	ownerRoutes := v1.NewRoute().Subrouter()
	ownerRoutes.Use(authMW.RequireOwner)

	ownerRoutes.HandleFunc("/surveys/{surveyId}/analytics", analyticsHandler.Dashboard).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/patterns", analyticsHandler.Patterns).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/forecast", analyticsHandler.Forecast).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/attention", analyticsHandler.Attention).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/surveys/{surveyId}/insights", analyticsHandler.Insights).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/attention", analyticsHandler.AttentionList).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.CORSAllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.CORSAllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
