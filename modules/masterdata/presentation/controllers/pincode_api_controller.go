package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/pincode"
	"github.com/ensuredit/masterdata/modules/masterdata/presentation/mappers"
	"github.com/ensuredit/masterdata/modules/masterdata/services"
	"github.com/ensuredit/masterdata/pkg/application"
	"github.com/ensuredit/masterdata/pkg/configuration"
	"github.com/ensuredit/masterdata/pkg/middleware"
)

type PincodeAPIController struct {
	app      application.Application
	pincodes *services.PincodeService
	basePath string
}

func NewPincodeAPIController(app application.Application) application.Controller {
	return &PincodeAPIController{
		app:      app,
		pincodes: app.Service(services.PincodeService{}).(*services.PincodeService),
		basePath: "/masterdata/api/pincodes",
	}
}

func (c *PincodeAPIController) Key() string {
	return c.basePath
}

func (c *PincodeAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.RequireAdminToken(configuration.Use().AdminPassword),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{pincode:[0-9]{6}}", c.GetByCode).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{pincode:[0-9]{6}}", c.Update).Methods(http.MethodPut)
}

func (c *PincodeAPIController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	items, total, err := c.pincodes.GetPaginated(r.Context(), &pincode.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "PINCODE_INTERNAL", "internal error")
		return
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.PincodeToListItem(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": out,
		"total": total,
	})
}

func (c *PincodeAPIController) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["pincode"]
	entity, err := c.pincodes.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, pincode.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "PINCODE_NOT_FOUND", "pincode not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "PINCODE_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.PincodeToListItem(entity))
}

func (c *PincodeAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto pincode.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "PINCODE_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, "PINCODE_VALIDATION_FAILED", errs)
		return
	}

	created, err := c.pincodes.Create(r.Context(), &dto)
	if err != nil {
		if errors.Is(err, pincode.ErrAlreadyExists) {
			writeAPIError(w, r, http.StatusConflict, "PINCODE_CONFLICT", "pincode already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "PINCODE_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, mappers.PincodeToListItem(created))
}

func (c *PincodeAPIController) Update(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["pincode"]

	var dto pincode.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "PINCODE_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, "PINCODE_VALIDATION_FAILED", errs)
		return
	}

	updated, err := c.pincodes.Update(r.Context(), code, &dto)
	if err != nil {
		if errors.Is(err, pincode.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "PINCODE_NOT_FOUND", "pincode not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "PINCODE_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.PincodeToListItem(updated))
}
