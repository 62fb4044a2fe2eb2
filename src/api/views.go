package api

import (
	"net/http"
	"time"

	"itasset/src/api/handlers"
	"itasset/src/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// requestLogger emits one structured line per completed request.
func requestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start).String(),
			}).Info("request served")
		})
	}
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(requestLogger(s.Handler.Logger))

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Post("/api/token", s.Handler.PostToken)

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.Handler.TokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Route("/api/containers", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllContainers)
			r.Post("/", s.Handler.CreateContainer)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.Handler.GetContainerByID)
				r.Put("/", s.Handler.UpdateContainer)
				r.Delete("/", s.Handler.DeleteContainer)
				r.Get("/types", s.Handler.GetAllAssetTypes)
				r.Post("/types", s.Handler.CreateAssetType)
				r.Get("/assets", s.Handler.GetAllAssets)
				r.Post("/assets", s.Handler.CreateAsset)
			})
		})

		r.Route("/api/types/{id}", func(r chi.Router) {
			r.Get("/", s.Handler.GetAssetTypeByID)
			r.Put("/", s.Handler.UpdateAssetType)
			r.Delete("/", s.Handler.DeleteAssetType)
			r.Get("/subtypes", s.Handler.GetAllSubTypes)
			r.Post("/subtypes", s.Handler.CreateSubType)
		})

		r.Route("/api/subtypes/{id}", func(r chi.Router) {
			r.Get("/", s.Handler.GetSubTypeByID)
			r.Put("/", s.Handler.UpdateSubType)
			r.Delete("/", s.Handler.DeleteSubType)
		})

		r.Route("/api/assets/{id}", func(r chi.Router) {
			r.Get("/", s.Handler.GetAssetByID)
			r.Put("/", s.Handler.UpdateAsset)
			r.Delete("/", s.Handler.DeleteAsset)
		})
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
