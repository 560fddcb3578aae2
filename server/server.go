package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/hospital-portal/backend"
	"github.com/jrsteele09/hospital-portal/internal/config"
	"github.com/jrsteele09/hospital-portal/internal/metrics"
	"github.com/jrsteele09/hospital-portal/internal/validation"
	"github.com/jrsteele09/hospital-portal/session"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	appName   string
	mux       *http.ServeMux
	routes    []string
	session   *session.State
	backend   *backend.Client
	validator *validation.Validator
	metrics   *metrics.Metrics
}

// New wires the portal's pages onto a fresh mux. The session must be initialised
// by the caller; protected pages wait for it before deciding anything.
func New(cfg config.EnvConfig, state *session.State, client *backend.Client, m *metrics.Metrics) *Server {
	s := &Server{
		env:       cfg.GetEnv(),
		appName:   cfg.GetAppName(),
		mux:       http.NewServeMux(),
		session:   state,
		backend:   client,
		validator: validation.New(),
		metrics:   m,
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered patterns in registration order
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", coloredMethod(method), path)
}

func coloredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
