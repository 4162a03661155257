package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/presentation/mappers"
	"github.com/ensuredit/masterdata/modules/masterdata/services"
	"github.com/ensuredit/masterdata/pkg/application"
	"github.com/ensuredit/masterdata/pkg/configuration"
	"github.com/ensuredit/masterdata/pkg/middleware"
)

type MMVAPIController struct {
	app      application.Application
	mmvs     *services.MMVService
	basePath string
}

func NewMMVAPIController(app application.Application) application.Controller {
	return &MMVAPIController{
		app:      app,
		mmvs:     app.Service(services.MMVService{}).(*services.MMVService),
		basePath: "/masterdata/api/mmv",
	}
}

func (c *MMVAPIController) Key() string {
	return c.basePath
}

func (c *MMVAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.RequireAdminToken(configuration.Use().AdminPassword),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/makes", c.Makes).Methods(http.MethodGet)
	router.HandleFunc("/models", c.Models).Methods(http.MethodGet)
	router.HandleFunc("/variants", c.Variants).Methods(http.MethodGet)
	router.HandleFunc("/code-preview", c.PreviewCode).Methods(http.MethodGet)
	router.HandleFunc("/{code:[0-9]{8}}", c.GetByCode).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{code:[0-9]{8}}", c.Update).Methods(http.MethodPut)
}

func productIDParam(r *http.Request) (int, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("product_id"))
	productID, err := strconv.Atoi(v)
	if err != nil || (productID != mmv.ProductTwoWheeler && productID != mmv.ProductFourWheeler) {
		return 0, false
	}
	return productID, true
}

func (c *MMVAPIController) List(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_INVALID_PRODUCT", "product_id must be 1 or 2")
		return
	}
	limit, offset := parseLimitOffset(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	items, total, err := c.mmvs.GetPaginated(r.Context(), &mmv.FindParams{
		ProductID: productID,
		Q:         q,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "MMV_INTERNAL", "internal error")
		return
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.MMVToListItem(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": out,
		"total": total,
	})
}

func (c *MMVAPIController) Makes(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_INVALID_PRODUCT", "product_id must be 1 or 2")
		return
	}
	makes, err := c.mmvs.Makes(r.Context(), productID)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "MMV_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": makes})
}

func (c *MMVAPIController) Models(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_INVALID_PRODUCT", "product_id must be 1 or 2")
		return
	}
	make := strings.TrimSpace(r.URL.Query().Get("make"))
	if make == "" {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_MISSING_MAKE", "make is required")
		return
	}
	models, err := c.mmvs.Models(r.Context(), productID, make)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "MMV_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": models})
}

func (c *MMVAPIController) Variants(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_INVALID_PRODUCT", "product_id must be 1 or 2")
		return
	}
	make := strings.TrimSpace(r.URL.Query().Get("make"))
	model := strings.TrimSpace(r.URL.Query().Get("model"))
	if make == "" || model == "" {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_MISSING_HIERARCHY", "make and model are required")
		return
	}
	variants, err := c.mmvs.Variants(r.Context(), productID, make, model)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "MMV_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": variants})
}

// PreviewCode computes the composite id a make/model/variant triple
// would receive without persisting anything.
func (c *MMVAPIController) PreviewCode(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_INVALID_PRODUCT", "product_id must be 1 or 2")
		return
	}
	make := strings.TrimSpace(r.URL.Query().Get("make"))
	model := strings.TrimSpace(r.URL.Query().Get("model"))
	variant := strings.TrimSpace(r.URL.Query().Get("variant"))
	if make == "" || model == "" || variant == "" {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_MISSING_HIERARCHY", "make, model and variant are required")
		return
	}

	code, err := c.mmvs.PreviewCode(r.Context(), productID, make, model, variant)
	if err != nil {
		if errors.Is(err, mmv.ErrCodeSpaceExhausted) {
			writeAPIError(w, r, http.StatusConflict, "MMV_CODE_EXHAUSTED", "composite code space exhausted")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "MMV_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ensuredit_id": string(code)})
}

func (c *MMVAPIController) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := mmv.Code(mux.Vars(r)["code"])
	entity, err := c.mmvs.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, mmv.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "MMV_NOT_FOUND", "mmv not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "MMV_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.MMVToListItem(entity))
}

func (c *MMVAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto mmv.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, "MMV_VALIDATION_FAILED", errs)
		return
	}

	created, err := c.mmvs.Create(r.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, mmv.ErrHierarchyTaken):
			writeAPIError(w, r, http.StatusConflict, "MMV_HIERARCHY_CONFLICT", "make/model/variant already exists for this product")
		case errors.Is(err, mmv.ErrCodeSpaceExhausted):
			writeAPIError(w, r, http.StatusConflict, "MMV_CODE_EXHAUSTED", "composite code space exhausted")
		default:
			writeAPIError(w, r, http.StatusInternalServerError, "MMV_INTERNAL", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, mappers.MMVToListItem(created))
}

func (c *MMVAPIController) Update(w http.ResponseWriter, r *http.Request) {
	code := mmv.Code(mux.Vars(r)["code"])

	var dto mmv.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "MMV_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, "MMV_VALIDATION_FAILED", errs)
		return
	}

	updated, err := c.mmvs.Update(r.Context(), code, &dto)
	if err != nil {
		if errors.Is(err, mmv.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "MMV_NOT_FOUND", "mmv not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "MMV_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.MMVToListItem(updated))
}
