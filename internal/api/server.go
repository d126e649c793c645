// Package api provides the HTTP API server and handlers for the shoptag service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shoptagapp/shoptag-server/internal/media/attachments"
	"github.com/shoptagapp/shoptag-server/internal/service"
	"github.com/shoptagapp/shoptag-server/internal/store"
	"github.com/shoptagapp/shoptag-server/internal/validation"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Registry *service.RegistryService
	Media    *service.MediaService
	Text     *service.TextService
	Resolver *service.Resolver
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       *store.Store
	services    *Services
	attachments *attachments.Manager
	router      *chi.Mux
	api         huma.API
	validator   *validation.Validator
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, attachmentManager *attachments.Manager, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	humaConfig := huma.DefaultConfig("ShopTag API", "1.0.0")
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:       st,
		services:    services,
		attachments: attachmentManager,
		router:      router,
		api:         api,
		validator:   validation.New(),
		logger:      logger,
	}

	s.registerHealthRoutes()
	s.registerTagRoutes()
	s.registerMediaRoutes()
	s.registerTextRoutes()
	s.registerAttachmentRoutes()

	// Attachment files are streamed outside huma; OpenAPI doesn't model them.
	router.Get("/media/{id}/{variant}", s.handleServeMedia)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
