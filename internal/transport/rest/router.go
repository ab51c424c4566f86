package rest

import (
	"net/http"
	"os"

	"playercare/internal/cache"
	"playercare/internal/repository"
	"playercare/internal/service"
	"playercare/internal/transport/rest/handler"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Container holds all dependencies for the router
type Container struct {
	SupportService      *service.SupportService
	ClassifierService   *service.ClassifierService
	CompensationService *service.CompensationService
	ResolutionService   *service.ResolutionService
	TicketRepo          repository.TicketRepo
	PlayerRepo          repository.PlayerRepo
	SessionCache        cache.SessionCache
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	supportHandler := handler.NewSupportHandler(
		c.SupportService,
		c.ClassifierService,
		c.CompensationService,
		c.ResolutionService,
		c.PlayerRepo,
		c.SessionCache,
	)
	ticketHandler := handler.NewTicketHandler(c.TicketRepo, c.PlayerRepo)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/support/analyze", supportHandler.Analyze).Methods("POST", "OPTIONS")
	v1.HandleFunc("/support/classify", supportHandler.Classify).Methods("POST", "OPTIONS")
	v1.HandleFunc("/support/compensation", supportHandler.Compensation).Methods("POST", "OPTIONS")
	v1.HandleFunc("/support/resolve", supportHandler.Resolve).Methods("POST", "OPTIONS")
	v1.HandleFunc("/support/reply", supportHandler.Reply).Methods("POST", "OPTIONS")
	v1.HandleFunc("/support/reply/parse", supportHandler.ParseReply).Methods("POST", "OPTIONS")

	v1.HandleFunc("/tickets/{ticketId}", ticketHandler.GetTicket).Methods("GET", "OPTIONS")
	v1.HandleFunc("/players/{playerId}", ticketHandler.GetPlayer).Methods("GET", "OPTIONS")
	v1.HandleFunc("/players/{playerId}/tickets", ticketHandler.ListPlayerTickets).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
