package http

import (
	"net"
	"net/http"
	"os"
	"os/signal"
	"patientflow/config"
	"patientflow/transport/http/middleware"
	"patientflow/transport/http/response"
	"patientflow/transport/http/router"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	State      ServerState
	mux        *chi.Mux
}

func New(cfg *config.Config, r router.Router, m middleware.AppMiddleware) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: m,
	}
}

func (h *HTTP) Serve() {
	h.setup()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	server := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.mux
}

func (h *HTTP) setup() {
	h.setupRoutes()
	h.setupGracefulShutdown()
	h.State = ServerStateReady
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	if h.Config.App.CORS.Enable {
		h.mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   h.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
			AllowCredentials: h.Config.App.CORS.AllowCredentials,
			MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	h.mux.Use(h.Middleware.Tracing)
	h.mux.Use(h.Middleware.RateLimit())

	h.mux.Get("/health", h.HealthCheck)

	// The station key guards everything except the probe.
	h.mux.Group(func(guarded chi.Router) {
		guarded.Use(h.Middleware.APIKey)

		h.Router.SetupRoutes(guarded)
	})
}

// HealthCheck answers the readiness probe. During the grace period the server
// reports unavailable so the load balancer drains it before cleanup starts.
func (h *HTTP) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	switch h.State {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(w)
	case ServerStateInCleanupPeriod:
		response.WithUnhealthy(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	if h.Config.Server.Env == "development" {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	time.Sleep(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
