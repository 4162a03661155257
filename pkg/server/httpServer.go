package server

import (
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/ensuredit/masterdata/pkg/application"
)

// HTTPServer assembles the application's controllers and root
// middleware into one gzip-wrapped gorilla router.
type HTTPServer struct {
	controllers      []application.Controller
	middlewares      []mux.MiddlewareFunc
	notFound         http.Handler
	methodNotAllowed http.Handler
}

func NewHTTPServer(
	app application.Application,
	notFoundHandler, methodNotAllowedHandler http.Handler,
) *HTTPServer {
	return &HTTPServer{
		controllers:      app.Controllers(),
		middlewares:      app.Middleware(),
		notFound:         notFoundHandler,
		methodNotAllowed: methodNotAllowedHandler,
	}
}

func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.middlewares...)
	for _, controller := range s.controllers {
		controller.Register(r)
	}

	// mux skips router middleware for the fallback handlers; wrap them
	// by hand so request logging and scoping still apply.
	r.NotFoundHandler = s.wrap(s.notFound)
	r.MethodNotAllowedHandler = s.wrap(s.methodNotAllowed)
	return r
}

func (s *HTTPServer) wrap(h http.Handler) http.Handler {
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = s.middlewares[i](h)
	}
	return h
}

func (s *HTTPServer) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

func (s *HTTPServer) Start(socketAddress string) error {
	srv := &http.Server{
		Addr:              socketAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
