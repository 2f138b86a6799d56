package http

import (
	"net/http"
	"strings"

	"hospital-records/internal/delivery/http/handler"
	"hospital-records/internal/delivery/http/middleware"
	"hospital-records/pkg/response"

	"github.com/gorilla/mux"
)

// RouteProvider is implemented by every handler that contributes routes.
type RouteProvider interface {
	Routes() []handler.Route
}

type Router struct {
	router            *mux.Router
	providers         []RouteProvider
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	providers ...RouteProvider,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		providers:         providers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

// Setup registers the route table once. Every path answers with and
// without a trailing slash.
func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	for _, provider := range r.providers {
		for _, route := range provider.Routes() {
			h := r.wrap(route)
			path := strings.TrimSuffix(route.Path, "/")
			api.Handle(path, h).Methods(route.Method)
			api.Handle(path+"/", h).Methods(route.Method)
		}
	}

	// preflight requests must match a route for the middleware chain to answer them
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(preflight)

	r.router.NotFoundHandler = http.HandlerFunc(notFound)

	r.router.Use(r.loggingMiddleware.Recover)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) wrap(route handler.Route) http.Handler {
	var h http.Handler = route.Handler
	if len(route.Groups) > 0 {
		h = middleware.RequireGroup(route.Groups...)(h)
	}
	if !route.Public {
		h = r.authMiddleware.Authenticate(h)
	}
	return h
}

func preflight(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func notFound(w http.ResponseWriter, req *http.Request) {
	response.NotFound(w, "")
}
