package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/tripmap/internal/server/handlers"
	"github.com/agentstation/tripmap/internal/server/middleware"
	"github.com/agentstation/tripmap/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	h := handlers.New(handlers.Deps{
		Trip:           s.tm,
		Relay:          s.relay,
		Broker:         s.broker,
		WSHub:          s.wsHub,
		SSEBroadcaster: s.sseBroadcaster,
		Upgrader:       s.upgrader,
		Logger:         s.logger,
		MaxBodyBytes:   s.config.MaxBodyBytes,
		StartTime:      s.startTime,
	})

	r := chi.NewRouter()
	s.applyMiddleware(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found", r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r.Method)
	})

	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/health", h.HandleHealth)
	if s.config.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route(s.config.PathPrefix, func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/ready", h.HandleReady)

		r.Route("/days", func(r chi.Router) {
			r.Get("/", h.HandleListDays)
			r.Get("/{day}", h.HandleGetDay)
			r.Post("/{day}/items", h.HandleAddItem)
			r.Put("/{day}/items/{item}", h.HandleUpdateItem)
			r.Delete("/{day}/items/{item}", h.HandleDeleteItem)
			r.Post("/{day}/items/{item}/move", h.HandleMoveItem)
		})

		r.Get("/flights", h.HandleListFlights)
		r.Patch("/flights/{id}", h.HandleUpdateFlight)

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.HandleListExpenses)
			r.Post("/", h.HandleAddExpense)
			r.Get("/summary", h.HandleExpenseSummary)
			r.Patch("/{id}", h.HandleUpdateExpense)
			r.Delete("/{id}", h.HandleDeleteExpense)
		})

		r.Route("/checklist", func(r chi.Router) {
			r.Get("/", h.HandleGetChecklist)
			r.Post("/toggle", h.HandleToggleChecklistItem)
			r.Post("/reset", h.HandleResetChecklist)
			r.Post("/categories", h.HandleAddChecklistCategory)
			r.Patch("/categories/{id}", h.HandleRenameChecklistCategory)
			r.Delete("/categories/{id}", h.HandleDeleteChecklistCategory)
			r.Post("/categories/{id}/items", h.HandleAddChecklistItem)
			r.Delete("/categories/{id}/items/{name}", h.HandleRemoveChecklistItem)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", h.HandleListCoupons)
			r.Post("/", h.HandleAddCoupon)
			r.Put("/{id}", h.HandleUpdateCoupon)
			r.Delete("/{id}", h.HandleDeleteCoupon)
		})

		r.Route("/shopping", func(r chi.Router) {
			r.Get("/items", h.HandleListShopping)
			r.Post("/items", h.HandleAddShopping)
			r.Put("/items/{id}", h.HandleUpdateShopping)
			r.Delete("/items/{id}", h.HandleDeleteShopping)
			r.Post("/items/{id}/toggle", h.HandleToggleShopping)
			r.Get("/types", h.HandleListShoppingTypes)
			r.Post("/types", h.HandleAddShoppingType)
			r.Delete("/types/{name}", h.HandleDeleteShoppingType)
		})

		r.Get("/accommodations", h.HandleAccommodations)
		r.Get("/trains", h.HandleTrains)

		r.Route("/live", func(r chi.Router) {
			r.Get("/weather/{city}", h.HandleLiveWeather)
			r.Get("/rate", h.HandleLiveRate)
			r.Get("/tips/{day}", h.HandleLiveTips)
		})

		r.Route("/sync", func(r chi.Router) {
			r.Get("/status", h.HandleSyncStatus)
			r.Get("/token", h.HandleExportToken)
			r.Get("/token.png", h.HandleExportTokenQR)
			r.Post("/import", h.HandleImportToken)
			r.Post("/push", h.HandlePush)
			r.Post("/pull", h.HandlePull)
			r.Get("/url", h.HandleGetSyncURL)
			r.Put("/url", h.HandleSetSyncURL)
		})

		r.Get("/relay", h.HandleRelayGet)
		r.Post("/relay", h.HandleRelayPost)

		r.Get("/updates/ws", h.HandleWebSocket)
		r.Get("/updates/stream", h.HandleSSE)

		r.Get("/export/itinerary.md", h.HandleExportMarkdown)
	})

	return r
}

// applyMiddleware installs the middleware stack, outermost first.
func (s *Server) applyMiddleware(r chi.Router) {
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Logger(s.logger))
	if s.config.MetricsEnabled {
		r.Use(middleware.Metrics)
	}
	if s.config.CORSEnabled {
		cors := middleware.DefaultCORSConfig()
		if len(s.config.CORSOrigins) > 0 {
			cors.AllowedOrigins = s.config.CORSOrigins
		}
		r.Use(middleware.CORS(cors))
	}
	if s.limiter != nil {
		r.Use(s.limiter.Middleware)
	}
	r.Use(middleware.Auth(middleware.DefaultAuthConfig(s.config.APIKey, s.config.PathPrefix), s.logger))
}
