package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"herovault/internal/apperr"
	"herovault/internal/blob"
	"herovault/internal/config"
	"herovault/internal/middleware"
	"herovault/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires routes to handlers. Every failed request is translated
// by errs exactly once.
func NewHandler(
	heroService *service.SuperheroService,
	imageService *service.ImageService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
	errs *apperr.Chain,
) *Handler {
	r := chi.NewRouter()
	rw := &responder{logger: logger, errs: errs}

	r.Use(chimw.RequestID)
	r.Use(middleware.WithCORS(cfg.FrontendURL))
	r.Use(middleware.WithLogging)

	// Handlers
	heroHandler := NewSuperheroHandler(heroService, logger, rw)
	imageHandler := NewImageHandler(imageService, logger, cfg, rw)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithGzip)
		r.Use(rw.recoverer)

		// Superhero routes
		r.Route("/api/superheroes", func(r chi.Router) {
			r.Post("/", heroHandler.Create)
			r.Get("/", heroHandler.FindAll)
			r.Get("/{id}", heroHandler.FindOne)
			r.Patch("/{id}", heroHandler.Update)
			r.Delete("/{id}", heroHandler.Remove)
		})

		// Image routes
		r.Post("/api/images/upload", imageHandler.Upload)
	})

	// images bypass gzip
	if cfg.BlobBackend == "" || cfg.BlobBackend == config.BlobBackendLocal {
		r.Get(blob.PublicPrefix+"*", imageHandler.Serve)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		rw.error(w, req, routeNotFound(req))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		rw.error(w, req, &apperr.HTTPError{Status: http.StatusMethodNotAllowed, Messages: []string{"Method not allowed"}})
	})

	return &Handler{Router: r}
}

func routeNotFound(r *http.Request) error {
	return apperr.NotFound("Cannot " + r.Method + " " + r.URL.Path)
}
