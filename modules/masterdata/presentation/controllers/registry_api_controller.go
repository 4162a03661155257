package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xuri/excelize/v2"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/pincode"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/rto"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/modules/masterdata/presentation/viewmodels"
	"github.com/ensuredit/masterdata/modules/masterdata/services"
	"github.com/ensuredit/masterdata/pkg/application"
	"github.com/ensuredit/masterdata/pkg/configuration"
	"github.com/ensuredit/masterdata/pkg/middleware"
)

// exportPageSize is the repository page size used when streaming a
// whole master table into a workbook.
const exportPageSize = 1000

// RegistryAPIController serves the raw database views: paginated
// registry listings, a single-record inspector with every insurer
// column, workbook downloads, and the insurer/field-spec catalogs the
// operator console renders its tabs from.
type RegistryAPIController struct {
	app      application.Application
	rtos     *services.RTOService
	mmvs     *services.MMVService
	pincodes *services.PincodeService
	basePath string
}

func NewRegistryAPIController(app application.Application) application.Controller {
	return &RegistryAPIController{
		app:      app,
		rtos:     app.Service(services.RTOService{}).(*services.RTOService),
		mmvs:     app.Service(services.MMVService{}).(*services.MMVService),
		pincodes: app.Service(services.PincodeService{}).(*services.PincodeService),
		basePath: "/masterdata/api/registry",
	}
}

func (c *RegistryAPIController) Key() string {
	return c.basePath
}

func (c *RegistryAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.RequireAdminToken(configuration.Use().AdminPassword),
	}

	router := r.PathPrefix("/masterdata/api").Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("/insurers", c.Insurers).Methods(http.MethodGet)
	router.HandleFunc("/fieldspecs", c.FieldSpecs).Methods(http.MethodGet)
	router.HandleFunc("/registry/{kind}", c.List).Methods(http.MethodGet)
	router.HandleFunc("/registry/{kind}/export.xlsx", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/registry/{kind}/{key}", c.Inspect).Methods(http.MethodGet)
}

// Insurers lists the insurers supported for a master kind, with their
// storage column and whether the payload is a bare scalar code.
func (c *RegistryAPIController) Insurers(w http.ResponseWriter, r *http.Request) {
	kind := insurer.MasterKind(r.URL.Query().Get("kind"))
	if !kind.Valid() {
		writeAPIError(w, r, http.StatusBadRequest, "REGISTRY_INVALID_KIND", "kind must be rto, mmv or pincode")
		return
	}

	// zuno is scalar only on the two-wheeler line, so the flag is
	// product-sensitive for MMV.
	productID := mmv.ProductTwoWheeler
	if v, ok := productIDParam(r); ok {
		productID = v
	}

	out := make([]*viewmodels.InsurerItem, 0)
	for _, ins := range insurer.All() {
		out = append(out, &viewmodels.InsurerItem{
			Name:   ins.Name(),
			Column: ins.Column(),
			Scalar: ins.Scalar(kind, productID),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

// FieldSpecs returns the JSON field names the console renders for one
// (kind, insurer) pair. An empty list means free-form JSON.
func (c *RegistryAPIController) FieldSpecs(w http.ResponseWriter, r *http.Request) {
	kind := insurer.MasterKind(r.URL.Query().Get("kind"))
	if !kind.Valid() {
		writeAPIError(w, r, http.StatusBadRequest, "REGISTRY_INVALID_KIND", "kind must be rto, mmv or pincode")
		return
	}
	ins, ok := insurer.ByName(r.URL.Query().Get("insurer"))
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "REGISTRY_INVALID_INSURER", "unknown insurer")
		return
	}

	specs := ins.Fields(kind)
	out := make([]*viewmodels.FieldSpecItem, 0, len(specs))
	for _, spec := range specs {
		out = append(out, &viewmodels.FieldSpecItem{Group: spec.Group, Name: spec.Name, Label: spec.Label})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (c *RegistryAPIController) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := masterKindVar(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "REGISTRY_INVALID_KIND", "kind must be rto, mmv or pincode")
		return
	}
	limit, offset := parseLimitOffset(r)

	var (
		items []any
		total int64
		err   error
	)
	switch kind {
	case insurer.KindRTO:
		var rows []rto.RTO
		rows, total, err = c.rtos.GetPaginated(r.Context(), &rto.FindParams{Limit: limit, Offset: offset})
		for _, row := range rows {
			items = append(items, registryRTORow(row))
		}
	case insurer.KindMMV:
		productID, okProduct := productIDParam(r)
		if !okProduct {
			writeAPIError(w, r, http.StatusBadRequest, "REGISTRY_INVALID_PRODUCT", "product_id must be 1 or 2")
			return
		}
		var rows []mmv.MMV
		rows, total, err = c.mmvs.GetPaginated(r.Context(), &mmv.FindParams{ProductID: productID, Limit: limit, Offset: offset})
		for _, row := range rows {
			items = append(items, registryMMVRow(row))
		}
	case insurer.KindPincode:
		var rows []pincode.Pincode
		rows, total, err = c.pincodes.GetPaginated(r.Context(), &pincode.FindParams{Limit: limit, Offset: offset})
		for _, row := range rows {
			items = append(items, registryPincodeRow(row))
		}
	}
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "REGISTRY_INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

// Inspect returns one record with every insurer column, the raw row
// the editor works against.
func (c *RegistryAPIController) Inspect(w http.ResponseWriter, r *http.Request) {
	kind, ok := masterKindVar(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "REGISTRY_INVALID_KIND", "kind must be rto, mmv or pincode")
		return
	}
	key := mux.Vars(r)["key"]

	var (
		row      map[string]any
		mappings map[string]mapping.Value
		err      error
	)
	switch kind {
	case insurer.KindRTO:
		var entity rto.RTO
		entity, err = c.rtos.GetByID(r.Context(), key)
		if err == nil {
			row, mappings = registryRTORow(entity), entity.Mappings()
		}
	case insurer.KindMMV:
		var entity mmv.MMV
		entity, err = c.mmvs.GetByCode(r.Context(), mmv.Code(key))
		if err == nil {
			row, mappings = registryMMVRow(entity), entity.Mappings()
		}
	case insurer.KindPincode:
		var entity pincode.Pincode
		entity, err = c.pincodes.GetByCode(r.Context(), key)
		if err == nil {
			row, mappings = registryPincodeRow(entity), entity.Mappings()
		}
	}
	if err != nil {
		if errors.Is(err, rto.ErrNotFound) || errors.Is(err, mmv.ErrNotFound) || errors.Is(err, pincode.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "REGISTRY_NOT_FOUND", "record not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "REGISTRY_INTERNAL", "internal error")
		return
	}

	cols := map[string]string{}
	for column, value := range mappings {
		cols[column] = value.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record":   row,
		"mappings": cols,
	})
}

// Export streams a whole registry as an xlsx workbook.
func (c *RegistryAPIController) Export(w http.ResponseWriter, r *http.Request) {
	kind, ok := masterKindVar(r)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "REGISTRY_INVALID_KIND", "kind must be rto, mmv or pincode")
		return
	}

	var (
		header []string
		rows   [][]any
		err    error
	)
	switch kind {
	case insurer.KindRTO:
		header = []string{"id", "rto_code", "city", "state", "search_string", "display_string"}
		rows, err = c.collectRTORows(r.Context())
	case insurer.KindMMV:
		productID, okProduct := productIDParam(r)
		if !okProduct {
			writeAPIError(w, r, http.StatusBadRequest, "REGISTRY_INVALID_PRODUCT", "product_id must be 1 or 2")
			return
		}
		header = []string{"ensuredit_id", "product_id", "make", "model", "variant", "fuel_type", "cc", "body_type", "seating_capacity", "carrying_capacity"}
		rows, err = c.collectMMVRows(r.Context(), productID)
	case insurer.KindPincode:
		header = []string{"pincode", "district", "city", "state"}
		rows, err = c.collectPincodeRows(r.Context())
	}
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "REGISTRY_INTERNAL", "internal error")
		return
	}

	book := excelize.NewFile()
	defer book.Close()
	sheet := book.GetSheetName(0)
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := writeSheetRow(book, sheet, 1, headerRow); err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "REGISTRY_EXPORT_FAILED", "workbook build failed")
		return
	}
	for i, row := range rows {
		if err := writeSheetRow(book, sheet, i+2, row); err != nil {
			writeAPIError(w, r, http.StatusInternalServerError, "REGISTRY_EXPORT_FAILED", "workbook build failed")
			return
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_master.xlsx", kind))
	if _, err := book.WriteTo(w); err != nil {
		// Headers are gone; nothing sane left to send.
		return
	}
}

func writeSheetRow(book *excelize.File, sheet string, rowIndex int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return err
	}
	return book.SetSheetRow(sheet, cell, &values)
}

func (c *RegistryAPIController) collectRTORows(ctx context.Context) ([][]any, error) {
	var out [][]any
	for offset := 0; ; offset += exportPageSize {
		page, _, err := c.rtos.GetPaginated(ctx, &rto.FindParams{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, row := range page {
			out = append(out, []any{row.ID(), row.RTOCode(), row.City(), row.State(), row.SearchString(), row.DisplayString()})
		}
		if len(page) < exportPageSize {
			return out, nil
		}
	}
}

func (c *RegistryAPIController) collectMMVRows(ctx context.Context, productID int) ([][]any, error) {
	var out [][]any
	for offset := 0; ; offset += exportPageSize {
		page, _, err := c.mmvs.GetPaginated(ctx, &mmv.FindParams{ProductID: productID, Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, row := range page {
			out = append(out, []any{
				string(row.Code()), row.ProductID(), row.Make(), row.Model(), row.Variant(),
				row.FuelType(), row.CC(), row.BodyType(), row.SeatingCapacity(), row.CarryingCapacity(),
			})
		}
		if len(page) < exportPageSize {
			return out, nil
		}
	}
}

func (c *RegistryAPIController) collectPincodeRows(ctx context.Context) ([][]any, error) {
	var out [][]any
	for offset := 0; ; offset += exportPageSize {
		page, _, err := c.pincodes.GetPaginated(ctx, &pincode.FindParams{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, row := range page {
			out = append(out, []any{row.Code(), row.District(), row.City(), row.State()})
		}
		if len(page) < exportPageSize {
			return out, nil
		}
	}
}

func registryRTORow(r rto.RTO) map[string]any {
	return map[string]any{
		"id":             r.ID(),
		"rto_code":       r.RTOCode(),
		"city":           r.City(),
		"state":          r.State(),
		"search_string":  r.SearchString(),
		"display_string": r.DisplayString(),
	}
}

func registryMMVRow(m mmv.MMV) map[string]any {
	return map[string]any{
		"ensuredit_id":      string(m.Code()),
		"product_id":        m.ProductID(),
		"make":              m.Make(),
		"model":             m.Model(),
		"variant":           m.Variant(),
		"fuel_type":         m.FuelType(),
		"cc":                m.CC(),
		"body_type":         m.BodyType(),
		"seating_capacity":  m.SeatingCapacity(),
		"carrying_capacity": m.CarryingCapacity(),
	}
}

func registryPincodeRow(p pincode.Pincode) map[string]any {
	return map[string]any{
		"pincode":  p.Code(),
		"district": p.District(),
		"city":     p.City(),
		"state":    p.State(),
	}
}
