package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/usecase"
	"github.com/caseflow-lab/doctrack/pkg/utils/errutil"
	"github.com/caseflow-lab/doctrack/pkg/utils/logging"
	"github.com/caseflow-lab/doctrack/pkg/utils/safe"
)

type Server struct {
	router       *chi.Mux
	uc           *usecase.UseCases
	defaultOwner string
}

type Options func(*Server)

// WithDefaultOwner sets the owner identity used when a request carries no
// X-Owner-ID header. Useful for single-tenant deployments.
func WithDefaultOwner(ownerID string) Options {
	return func(s *Server) {
		s.defaultOwner = ownerID
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(requestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(ownerMiddleware(s.defaultOwner))

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", s.listCases)
			r.Post("/", s.createCase)
			r.Post("/request-only", s.createRequestOnlyCase)

			r.Route("/{caseID}", func(r chi.Router) {
				r.Get("/", s.getCase)
				r.Delete("/", s.purgeCase)
				r.Put("/document", s.updateDocument)
				r.Put("/distribution", s.distribute)
				r.Put("/response", s.recordResponse)
				r.Get("/reminder", s.reminder)
				r.Post("/archive", s.archiveCase)
				r.Delete("/archive", s.unarchiveCase)
			})
		})

		r.Put("/assignments/{assignmentID}/status", s.setAssignmentStatus)

		r.Route("/responsibles", func(r chi.Router) {
			r.Get("/", s.listResponsibles)
			r.Post("/", s.addResponsible)
			r.Delete("/{name}", s.removeResponsible)
		})

		r.Get("/stats", s.stats)
		r.Get("/pendencies", s.pendencies)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(r.Context(), w, data)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}
