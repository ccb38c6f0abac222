package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/grc-lab/riskreg/pkg/usecase"
	"github.com/grc-lab/riskreg/pkg/utils/logging"
	"github.com/grc-lab/riskreg/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(actorMiddleware)

		r.Route("/risks", func(r chi.Router) {
			r.Post("/", s.createRisk)
			r.Get("/", s.listRisks)

			r.Route("/{riskID}", func(r chi.Router) {
				r.Get("/", s.getRisk)
				r.Put("/", s.updateRisk)
				r.Delete("/", s.deleteRisk)

				r.Route("/actions", func(r chi.Router) {
					r.Get("/", s.listActions)
					r.Post("/", s.addAction)
					r.Put("/{actionID}", s.updateAction)
					r.Delete("/{actionID}", s.removeAction)
				})
			})
		})

		r.Get("/stats", s.getStats)
		r.Get("/audit", s.getAuditLog)
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
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
