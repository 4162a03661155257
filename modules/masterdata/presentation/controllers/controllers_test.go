package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/pincode"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/rto"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/modules/masterdata/presentation/controllers"
	"github.com/ensuredit/masterdata/modules/masterdata/services"
	"github.com/ensuredit/masterdata/pkg/application"
	"github.com/ensuredit/masterdata/pkg/constants"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

type fakeRTORepo struct {
	rows map[string]rto.RTO
}

func newFakeRTORepo() *fakeRTORepo {
	return &fakeRTORepo{rows: make(map[string]rto.RTO)}
}

func (f *fakeRTORepo) GetPaginated(_ context.Context, params *rto.FindParams) ([]rto.RTO, int64, error) {
	out := make([]rto.RTO, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, int64(len(f.rows)), nil
}

func (f *fakeRTORepo) GetByID(_ context.Context, id string) (rto.RTO, error) {
	row, ok := f.rows[id]
	if !ok {
		return rto.RTO{}, rto.ErrNotFound
	}
	return row, nil
}

func (f *fakeRTORepo) Create(_ context.Context, r rto.RTO) (rto.RTO, error) {
	if _, ok := f.rows[r.ID()]; ok {
		return rto.RTO{}, rto.ErrAlreadyExists
	}
	f.rows[r.ID()] = r
	return r, nil
}

func (f *fakeRTORepo) Update(_ context.Context, r rto.RTO) error {
	if _, ok := f.rows[r.ID()]; !ok {
		return rto.ErrNotFound
	}
	f.rows[r.ID()] = r
	return nil
}

func (f *fakeRTORepo) NextID(_ context.Context) (string, error) {
	return "1", nil
}

type fakeMMVRepo struct {
	rows []mmv.MMV
}

func (f *fakeMMVRepo) GetPaginated(_ context.Context, params *mmv.FindParams) ([]mmv.MMV, int64, error) {
	out := make([]mmv.MMV, 0)
	for _, row := range f.rows {
		if row.ProductID() == params.ProductID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMMVRepo) GetByCode(_ context.Context, code mmv.Code) (mmv.MMV, error) {
	for _, row := range f.rows {
		if row.Code() == code {
			return row, nil
		}
	}
	return mmv.MMV{}, mmv.ErrNotFound
}

func (f *fakeMMVRepo) GetByHierarchy(_ context.Context, productID int, makeName, model, variant string) (mmv.MMV, error) {
	for _, row := range f.rows {
		if row.ProductID() == productID && row.Make() == makeName && row.Model() == model && row.Variant() == variant {
			return row, nil
		}
	}
	return mmv.MMV{}, mmv.ErrNotFound
}

func (f *fakeMMVRepo) Create(_ context.Context, m mmv.MMV) (mmv.MMV, error) {
	f.rows = append(f.rows, m)
	return m, nil
}

func (f *fakeMMVRepo) Update(_ context.Context, m mmv.MMV) error {
	for i, row := range f.rows {
		if row.Code() == m.Code() {
			f.rows[i] = m
			return nil
		}
	}
	return mmv.ErrNotFound
}

func (f *fakeMMVRepo) Makes(_ context.Context, productID int) ([]string, error) {
	return f.distinct(func(m mmv.MMV) (string, bool) {
		return m.Make(), m.ProductID() == productID
	}), nil
}

func (f *fakeMMVRepo) Models(_ context.Context, productID int, makeName string) ([]string, error) {
	return f.distinct(func(m mmv.MMV) (string, bool) {
		return m.Model(), m.ProductID() == productID && m.Make() == makeName
	}), nil
}

func (f *fakeMMVRepo) Variants(_ context.Context, productID int, makeName, model string) ([]string, error) {
	return f.distinct(func(m mmv.MMV) (string, bool) {
		return m.Variant(), m.ProductID() == productID && m.Make() == makeName && m.Model() == model
	}), nil
}

func (f *fakeMMVRepo) distinct(pick func(mmv.MMV) (string, bool)) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, row := range f.rows {
		if v, ok := pick(row); ok && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// fakeMMVCodeIndex answers segment queries from the fake repo's rows,
// the way the SQL index does over ensuredit_id substrings.
type fakeMMVCodeIndex struct {
	repo *fakeMMVRepo
}

func (f *fakeMMVCodeIndex) MakeSegment(_ context.Context, productID int, makeName string) (int, bool, error) {
	for _, row := range f.repo.rows {
		if row.ProductID() == productID && row.Make() == makeName {
			return row.Code().MakeSegment(), true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeMMVCodeIndex) MaxMakeSegment(_ context.Context, productID int) (int, bool, error) {
	max, found := 0, false
	for _, row := range f.repo.rows {
		if row.ProductID() == productID && row.Code().InProductScope(productID) && row.Code().MakeSegment() > max {
			max, found = row.Code().MakeSegment(), true
		}
	}
	return max, found, nil
}

func (f *fakeMMVCodeIndex) ModelSegment(_ context.Context, productID, makeSeg int, model string) (int, bool, error) {
	for _, row := range f.repo.rows {
		if row.ProductID() == productID && row.Code().MakeSegment() == makeSeg && row.Model() == model {
			return row.Code().ModelSegment(), true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeMMVCodeIndex) MaxModelSegment(_ context.Context, productID, makeSeg int) (int, bool, error) {
	max, found := 0, false
	for _, row := range f.repo.rows {
		if row.ProductID() == productID && row.Code().MakeSegment() == makeSeg && row.Code().ModelSegment() > max {
			max, found = row.Code().ModelSegment(), true
		}
	}
	return max, found, nil
}

func (f *fakeMMVCodeIndex) VariantSegment(_ context.Context, productID, makeSeg, modelSeg int, variant string) (int, bool, error) {
	for _, row := range f.repo.rows {
		if row.ProductID() == productID && row.Code().MakeSegment() == makeSeg && row.Code().ModelSegment() == modelSeg && row.Variant() == variant {
			return row.Code().VariantSegment(), true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeMMVCodeIndex) MaxVariantSegment(_ context.Context, productID, makeSeg, modelSeg int) (int, bool, error) {
	max, found := 0, false
	for _, row := range f.repo.rows {
		if row.ProductID() == productID && row.Code().MakeSegment() == makeSeg && row.Code().ModelSegment() == modelSeg && row.Code().VariantSegment() > max {
			max, found = row.Code().VariantSegment(), true
		}
	}
	return max, found, nil
}

type fakePincodeRepo struct {
	rows map[string]pincode.Pincode
}

func newFakePincodeRepo() *fakePincodeRepo {
	return &fakePincodeRepo{rows: make(map[string]pincode.Pincode)}
}

func (f *fakePincodeRepo) GetPaginated(_ context.Context, params *pincode.FindParams) ([]pincode.Pincode, int64, error) {
	out := make([]pincode.Pincode, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, int64(len(f.rows)), nil
}

func (f *fakePincodeRepo) GetByCode(_ context.Context, code string) (pincode.Pincode, error) {
	row, ok := f.rows[code]
	if !ok {
		return pincode.Pincode{}, pincode.ErrNotFound
	}
	return row, nil
}

func (f *fakePincodeRepo) Create(_ context.Context, p pincode.Pincode) (pincode.Pincode, error) {
	if _, ok := f.rows[p.Code()]; ok {
		return pincode.Pincode{}, pincode.ErrAlreadyExists
	}
	f.rows[p.Code()] = p
	return p, nil
}

func (f *fakePincodeRepo) Update(_ context.Context, p pincode.Pincode) error {
	if _, ok := f.rows[p.Code()]; !ok {
		return pincode.ErrNotFound
	}
	f.rows[p.Code()] = p
	return nil
}

// fakeMappingStore keys values by kind|key|column.
type fakeMappingStore struct {
	values map[string]mapping.Value
	keys   map[string]bool
}

func newFakeMappingStore() *fakeMappingStore {
	return &fakeMappingStore{
		values: make(map[string]mapping.Value),
		keys:   make(map[string]bool),
	}
}

func (f *fakeMappingStore) addKey(kind insurer.MasterKind, key string) {
	f.keys[string(kind)+"|"+key] = true
}

func (f *fakeMappingStore) cell(kind insurer.MasterKind, key string, ins insurer.Insurer) string {
	return string(kind) + "|" + key + "|" + ins.Column()
}

func (f *fakeMappingStore) Get(_ context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (mapping.Value, error) {
	if !f.keys[string(kind)+"|"+key] {
		return "", mapping.ErrRecordNotFound
	}
	return f.values[f.cell(kind, key, ins)], nil
}

func (f *fakeMappingStore) GetPrimary(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (mapping.Value, error) {
	return f.Get(ctx, kind, key, ins)
}

func (f *fakeMappingStore) Update(_ context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer, value mapping.Value) error {
	if !f.keys[string(kind)+"|"+key] {
		return mapping.ErrRecordNotFound
	}
	f.values[f.cell(kind, key, ins)] = value
	return nil
}

type fixture struct {
	router      *mux.Router
	rtoRepo     *fakeRTORepo
	mmvRepo     *fakeMMVRepo
	pincodeRepo *fakePincodeRepo
	store       *fakeMappingStore
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	bus := eventbus.NewEventPublisher(logger)
	app := application.New(&application.ApplicationOptions{EventBus: bus})
	cache := services.NewCacheInvalidator(bus)

	f := &fixture{
		rtoRepo:     newFakeRTORepo(),
		mmvRepo:     &fakeMMVRepo{},
		pincodeRepo: newFakePincodeRepo(),
		store:       newFakeMappingStore(),
	}
	allocator := services.NewCodeAllocator(&fakeMMVCodeIndex{repo: f.mmvRepo})
	app.RegisterServices(
		services.NewRTOService(f.rtoRepo, bus, cache),
		services.NewMMVService(f.mmvRepo, allocator, bus, cache),
		services.NewPincodeService(f.pincodeRepo, bus, cache),
		services.NewMappingService(f.store, f.mmvRepo, bus),
		services.NewBulkMappingService(f.store, bus),
	)

	f.router = mux.NewRouter()
	// Handlers run against a transaction scope owned by the test.
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constants.TxKey, struct{}{})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	for _, c := range []application.Controller{
		controllers.NewRTOAPIController(app),
		controllers.NewMMVAPIController(app),
		controllers.NewPincodeAPIController(app),
		controllers.NewMappingAPIController(app),
		controllers.NewRegistryAPIController(app),
	} {
		c.Register(f.router)
	}
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRTOAPI_CRUD(t *testing.T) {
	f := setupFixture(t)

	rec := f.do(t, http.MethodGet, "/masterdata/api/rto", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeBody(t, rec)["total"])

	create := map[string]any{
		"id": "1", "rto_code": "MH01", "city": "Mumbai", "state": "Maharashtra",
	}
	rec = f.do(t, http.MethodPost, "/masterdata/api/rto", create)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "MH01", decodeBody(t, rec)["rto_code"])

	rec = f.do(t, http.MethodPost, "/masterdata/api/rto", create)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/masterdata/api/rto/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mumbai", decodeBody(t, rec)["city"])

	rec = f.do(t, http.MethodPut, "/masterdata/api/rto/1", map[string]any{
		"rto_code": "MH01", "city": "Mumbai Central", "state": "Maharashtra",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mumbai Central", decodeBody(t, rec)["city"])

	rec = f.do(t, http.MethodGet, "/masterdata/api/rto/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/masterdata/api/rto", map[string]any{"id": "2", "rto_code": "MH02"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRTOAPI_NextID(t *testing.T) {
	f := setupFixture(t)

	rec := f.do(t, http.MethodGet, "/masterdata/api/rto/next-id", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", decodeBody(t, rec)["next_id"])
}

func TestMMVAPI_CreateAllocatesCode(t *testing.T) {
	f := setupFixture(t)

	rec := f.do(t, http.MethodPost, "/masterdata/api/mmv", map[string]any{
		"product_id": 1, "make": "Honda", "model": "Activa", "variant": "STD",
		"fuel_type": "Petrol", "cc": 110, "seating_capacity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "10110101", decodeBody(t, rec)["ensuredit_id"])

	// Same hierarchy again conflicts.
	rec = f.do(t, http.MethodPost, "/masterdata/api/mmv", map[string]any{
		"product_id": 1, "make": "Honda", "model": "Activa", "variant": "STD",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// A sibling variant extends the same make/model prefix.
	rec = f.do(t, http.MethodPost, "/masterdata/api/mmv", map[string]any{
		"product_id": 1, "make": "Honda", "model": "Activa", "variant": "DLX",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "10110102", decodeBody(t, rec)["ensuredit_id"])

	rec = f.do(t, http.MethodGet, "/masterdata/api/mmv/10110101", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Activa", decodeBody(t, rec)["model"])

	rec = f.do(t, http.MethodGet, "/masterdata/api/mmv/makes?product_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Honda")
}

func TestMMVAPI_ListRequiresProduct(t *testing.T) {
	f := setupFixture(t)

	rec := f.do(t, http.MethodGet, "/masterdata/api/mmv", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/masterdata/api/mmv?product_id=7", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMMVAPI_PreviewCode(t *testing.T) {
	f := setupFixture(t)

	rec := f.do(t, http.MethodGet, "/masterdata/api/mmv/code-preview?product_id=2&make=Maruti&model=Swift&variant=VXI", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "40110101", decodeBody(t, rec)["ensuredit_id"])
}

func TestPincodeAPI_CRUD(t *testing.T) {
	f := setupFixture(t)

	rec := f.do(t, http.MethodPost, "/masterdata/api/pincodes", map[string]any{
		"pincode": "400001", "district": "Mumbai", "city": "Mumbai", "state": "Maharashtra",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/masterdata/api/pincodes/400001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mumbai", decodeBody(t, rec)["district"])

	rec = f.do(t, http.MethodPost, "/masterdata/api/pincodes", map[string]any{
		"pincode": "40000", "district": "x", "city": "y", "state": "z",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMappingAPI_EditorRoundTrip(t *testing.T) {
	f := setupFixture(t)
	f.store.addKey(insurer.KindRTO, "1")

	rec := f.do(t, http.MethodPut, "/masterdata/api/mappings/rto/1/icici", map[string]any{
		"value": `{"rto_id": 77}`,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/masterdata/api/mappings/rto/1/icici", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rto_id": 77}`, decodeBody(t, rec)["value"].(string))

	// JSON-typed insurers reject scalar garbage.
	rec = f.do(t, http.MethodPut, "/masterdata/api/mappings/rto/1/icici", map[string]any{
		"value": "not-json",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodGet, "/masterdata/api/mappings/rto/1/nosuchinsurer", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/masterdata/api/mappings/rto/999/icici", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/masterdata/api/mappings/depot/1/icici", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMappingAPI_BulkUpload(t *testing.T) {
	f := setupFixture(t)
	f.store.addKey(insurer.KindRTO, "1")
	f.store.addKey(insurer.KindRTO, "2")

	csv := "id,json_payload\n" +
		"1,\"{\"\"code\"\": \"\"MH01\"\"}\"\n" +
		"2,\n" +
		"999,\"{\"\"code\"\": \"\"XX\"\"}\"\n"

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "rto_icici.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, form.WriteField("insurer", "icici"))
	require.NoError(t, form.WriteField("overwrite", "false"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/masterdata/api/mappings/rto/bulk", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req = req.WithContext(context.WithValue(req.Context(), constants.TxKey, struct{}{}))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["updated"])
	assert.Equal(t, float64(1), body["skipped"])
	assert.Equal(t, float64(1), body["errored"])
	assert.Equal(t, mapping.Value(`{"code": "MH01"}`), f.store.values["rto|1|icici"])
}

func TestRegistryAPI(t *testing.T) {
	f := setupFixture(t)
	entity := rto.Hydrate("1", "MH01", "Mumbai", "Maharashtra", "", "", map[string]mapping.Value{
		"icici": `{"rto_id": 5}`,
	})
	f.rtoRepo.rows["1"] = entity

	rec := f.do(t, http.MethodGet, "/masterdata/api/registry/rto", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["total"])

	rec = f.do(t, http.MethodGet, "/masterdata/api/registry/rto/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	mappings, ok := body["mappings"].(map[string]any)
	require.True(t, ok)
	assert.JSONEq(t, `{"rto_id": 5}`, mappings["icici"].(string))

	rec = f.do(t, http.MethodGet, "/masterdata/api/registry/mmv", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/masterdata/api/fieldspecs?kind=rto&insurer=reliance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stateId")

	rec = f.do(t, http.MethodGet, "/masterdata/api/insurers?kind=mmv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "royalsundaram")
}

func TestRegistryAPI_Export(t *testing.T) {
	f := setupFixture(t)
	f.pincodeRepo.rows["400001"] = pincode.New("400001", "Mumbai", "Mumbai", "Maharashtra")

	rec := f.do(t, http.MethodGet, "/masterdata/api/registry/pincode/export.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"), "xlsx payload is a zip archive")
}
