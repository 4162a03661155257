package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ensuredit/masterdata/pkg/application"
	"github.com/ensuredit/masterdata/pkg/configuration"
	"github.com/ensuredit/masterdata/pkg/constants"
	"github.com/ensuredit/masterdata/pkg/middleware"
	"github.com/ensuredit/masterdata/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.Cors(options.Configuration.AllowedOrigins...),
	}
	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		jsonErrorHandler(http.StatusNotFound, "not found"),
		jsonErrorHandler(http.StatusMethodNotAllowed, "method not allowed"),
	)
	return serverInstance, nil
}

func jsonErrorHandler(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    status,
				"message": message,
			},
		})
	})
}
