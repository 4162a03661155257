package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ensuredit/masterdata/pkg/application"
)

const defaultPath = "/debug/prometheus"

// PrometheusController exposes the default registry, which carries the
// process collectors plus every counter the services register through
// promauto.
type PrometheusController struct {
	path string
}

func NewPrometheusController(path string) application.Controller {
	if path == "" {
		path = defaultPath
	}
	return &PrometheusController{path: path}
}

func (c *PrometheusController) Key() string { return c.path }

func (c *PrometheusController) Register(r *mux.Router) {
	handler := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	r.Handle(c.path, handler).Methods(http.MethodGet)
}
