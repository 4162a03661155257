package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/modules/masterdata/services"
	"github.com/ensuredit/masterdata/pkg/application"
	"github.com/ensuredit/masterdata/pkg/configuration"
	"github.com/ensuredit/masterdata/pkg/middleware"
)

type MappingAPIController struct {
	app      application.Application
	mappings *services.MappingService
	bulk     *services.BulkMappingService
	basePath string
}

func NewMappingAPIController(app application.Application) application.Controller {
	return &MappingAPIController{
		app:      app,
		mappings: app.Service(services.MappingService{}).(*services.MappingService),
		bulk:     app.Service(services.BulkMappingService{}).(*services.BulkMappingService),
		basePath: "/masterdata/api/mappings",
	}
}

func (c *MappingAPIController) Key() string {
	return c.basePath
}

func (c *MappingAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.RequireAdminToken(configuration.Use().AdminPassword),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("/{kind}/{key}/{insurer}", c.Get).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/{kind}/{key}/{insurer}", c.Update).Methods(http.MethodPut)
	// Bulk upload manages its own batch transaction.
	bulkRouter := r.PathPrefix(c.basePath).Subrouter()
	bulkRouter.Use(commonMiddleware...)
	bulkRouter.HandleFunc("/{kind}/bulk", c.BulkUpload).Methods(http.MethodPost)
}

func masterKindVar(r *http.Request) (insurer.MasterKind, bool) {
	kind := insurer.MasterKind(strings.ToLower(strings.TrimSpace(mux.Vars(r)["kind"])))
	return kind, kind.Valid()
}

func (c *MappingAPIController) Get(w http.ResponseWriter, r *http.Request) {
	kind, ok := masterKindVar(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "MAPPING_INVALID_KIND", "master kind must be rto, mmv or pincode")
		return
	}
	vars := mux.Vars(r)

	value, err := c.mappings.Get(r.Context(), kind, vars["key"], vars["insurer"])
	if err != nil {
		if errors.Is(err, mapping.ErrRecordNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "MAPPING_RECORD_NOT_FOUND", "record not found")
			return
		}
		writeAPIError(w, r, http.StatusBadRequest, "MAPPING_INVALID_REQUEST", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"kind":    string(kind),
		"key":     vars["key"],
		"insurer": vars["insurer"],
		"value":   value.String(),
	})
}

func (c *MappingAPIController) Update(w http.ResponseWriter, r *http.Request) {
	kind, ok := masterKindVar(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "MAPPING_INVALID_KIND", "master kind must be rto, mmv or pincode")
		return
	}
	vars := mux.Vars(r)

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "MAPPING_INVALID_JSON", "invalid json")
		return
	}

	err := c.mappings.Update(r.Context(), kind, vars["key"], vars["insurer"], body.Value)
	if err != nil {
		switch {
		case errors.Is(err, mapping.ErrRecordNotFound):
			writeAPIError(w, r, http.StatusNotFound, "MAPPING_RECORD_NOT_FOUND", "record not found")
		case errors.Is(err, mapping.ErrInvalidPayload):
			writeAPIError(w, r, http.StatusUnprocessableEntity, "MAPPING_INVALID_PAYLOAD", "payload must be valid JSON")
		default:
			writeAPIError(w, r, http.StatusBadRequest, "MAPPING_INVALID_REQUEST", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "saved"})
}

// BulkUpload reconciles an uploaded CSV against one insurer column.
// Multipart form: file (CSV), insurer, overwrite (true/false),
// product_id (MMV only).
func (c *MappingAPIController) BulkUpload(w http.ResponseWriter, r *http.Request) {
	kind, ok := masterKindVar(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "MAPPING_INVALID_KIND", "master kind must be rto, mmv or pincode")
		return
	}

	if err := r.ParseMultipartForm(configuration.Use().MaxUploadSize); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "BULK_INVALID_FORM", "multipart form expected")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "BULK_MISSING_FILE", "csv file is required")
		return
	}
	defer file.Close()

	params := services.BulkUploadParams{
		Kind:      kind,
		Insurer:   strings.TrimSpace(r.FormValue("insurer")),
		Overwrite: strings.EqualFold(strings.TrimSpace(r.FormValue("overwrite")), "true"),
	}
	if v := strings.TrimSpace(r.FormValue("product_id")); v != "" {
		productID, convErr := strconv.Atoi(v)
		if convErr != nil {
			writeAPIError(w, r, http.StatusBadRequest, "BULK_INVALID_PRODUCT", "product_id must be 1 or 2")
			return
		}
		params.ProductID = productID
	}

	result, err := c.bulk.Upload(r.Context(), params, file)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "BULK_REJECTED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
