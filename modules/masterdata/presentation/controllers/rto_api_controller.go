package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/rto"
	"github.com/ensuredit/masterdata/modules/masterdata/presentation/mappers"
	"github.com/ensuredit/masterdata/modules/masterdata/services"
	"github.com/ensuredit/masterdata/pkg/application"
	"github.com/ensuredit/masterdata/pkg/configuration"
	"github.com/ensuredit/masterdata/pkg/middleware"
)

type RTOAPIController struct {
	app      application.Application
	rtos     *services.RTOService
	basePath string
}

func NewRTOAPIController(app application.Application) application.Controller {
	return &RTOAPIController{
		app:      app,
		rtos:     app.Service(services.RTOService{}).(*services.RTOService),
		basePath: "/masterdata/api/rto",
	}
}

func (c *RTOAPIController) Key() string {
	return c.basePath
}

func (c *RTOAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.RequireAdminToken(configuration.Use().AdminPassword),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/next-id", c.NextID).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.GetByID).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
}

func (c *RTOAPIController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	items, total, err := c.rtos.GetPaginated(r.Context(), &rto.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "RTO_INTERNAL", "internal error")
		return
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.RTOToListItem(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": out,
		"total": total,
	})
}

func (c *RTOAPIController) NextID(w http.ResponseWriter, r *http.Request) {
	id, err := c.rtos.NextID(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "RTO_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"next_id": id})
}

func (c *RTOAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	entity, err := c.rtos.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, rto.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "RTO_NOT_FOUND", "rto not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "RTO_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.RTOToListItem(entity))
}

func (c *RTOAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto rto.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RTO_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, "RTO_VALIDATION_FAILED", errs)
		return
	}

	created, err := c.rtos.Create(r.Context(), &dto)
	if err != nil {
		if errors.Is(err, rto.ErrAlreadyExists) {
			writeAPIError(w, r, http.StatusConflict, "RTO_ID_CONFLICT", "rto id already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "RTO_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, mappers.RTOToListItem(created))
}

func (c *RTOAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto rto.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RTO_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, "RTO_VALIDATION_FAILED", errs)
		return
	}

	updated, err := c.rtos.Update(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, rto.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "RTO_NOT_FOUND", "rto not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "RTO_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.RTOToListItem(updated))
}
