package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/pkg/constants"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

type fakeStore struct {
	values map[string]mapping.Value
	legacy map[string]mapping.Value
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		values: make(map[string]mapping.Value),
		legacy: make(map[string]mapping.Value),
	}
}

func storeKey(kind insurer.MasterKind, key string, ins insurer.Insurer) string {
	return string(kind) + "|" + key + "|" + ins.Column()
}

func (f *fakeStore) seed(kind insurer.MasterKind, key string, ins insurer.Insurer, v mapping.Value) {
	f.values[storeKey(kind, key, ins)] = v
}

func (f *fakeStore) seedLegacy(kind insurer.MasterKind, key string, ins insurer.Insurer, v mapping.Value) {
	f.legacy[storeKey(kind, key, ins)] = v
}

func (f *fakeStore) Get(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (mapping.Value, error) {
	v, err := f.GetPrimary(ctx, kind, key, ins)
	if err != nil {
		return "", err
	}
	if v.Empty() {
		if lv, ok := f.legacy[storeKey(kind, key, ins)]; ok {
			return lv, nil
		}
	}
	return v, nil
}

func (f *fakeStore) GetPrimary(_ context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (mapping.Value, error) {
	v, ok := f.values[storeKey(kind, key, ins)]
	if !ok {
		return "", mapping.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeStore) Update(_ context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer, value mapping.Value) error {
	sk := storeKey(kind, key, ins)
	if _, ok := f.values[sk]; !ok {
		return mapping.ErrRecordNotFound
	}
	f.values[sk] = value
	return nil
}

func testContext() context.Context {
	// A transaction marker in the context keeps the batch on the
	// caller-provided scope instead of opening one from a pool.
	return context.WithValue(context.Background(), constants.TxKey, struct{}{})
}

func newBulkService(store mapping.Store) *BulkMappingService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewBulkMappingService(store, eventbus.NewEventPublisher(logger))
}

func TestBulkUpload_RTOReconciliation(t *testing.T) {
	icici, _ := insurer.ByName("icici")
	store := newFakeStore()
	store.seed(insurer.KindRTO, "1", icici, "")
	store.seed(insurer.KindRTO, "2", icici, `{"zone":"north"}`)
	store.seed(insurer.KindRTO, "3", icici, `{"zone":"south"}`)

	csvData := strings.Join([]string{
		"rto_id,json_payload",
		`1,"{""zone"":""east""}"`,
		`2,"{""zone"":""north""}"`,
		`3,"{""zone"":""west""}"`,
		`99,"{""zone"":""nowhere""}"`,
	}, "\n")

	svc := newBulkService(store)
	result, err := svc.Upload(testContext(), BulkUploadParams{
		Kind:    insurer.KindRTO,
		Insurer: "icici",
	}, strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated, "filled empty and rewrote differing")
	assert.Equal(t, 1, result.Skipped, "identical text skipped")
	assert.Equal(t, 1, result.Errored, "unknown key errored")

	v, err := store.Get(context.Background(), insurer.KindRTO, "1", icici)
	require.NoError(t, err)
	assert.Equal(t, mapping.Value(`{"zone":"east"}`), v)
}

func TestBulkUpload_OverwriteForcesUpdates(t *testing.T) {
	icici, _ := insurer.ByName("icici")
	store := newFakeStore()
	store.seed(insurer.KindRTO, "1", icici, `{"zone":"north"}`)

	csvData := "id,payload\n1,\"{\"\"zone\"\":\"\"north\"\"}\"\n"

	svc := newBulkService(store)
	result, err := svc.Upload(testContext(), BulkUploadParams{
		Kind:      insurer.KindRTO,
		Insurer:   "icici",
		Overwrite: true,
	}, strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Zero(t, result.Skipped)
}

func TestBulkUpload_LegacyColumnValueMigratesToPrimary(t *testing.T) {
	royal, ok := insurer.ByName("royalsundaram")
	require.True(t, ok)

	// The primary column is empty and the legacy column carries the
	// same payload the batch brings. The reconciler compares against
	// the primary only, so the row updates and the value lands in the
	// royalsundaram column instead of being skipped.
	store := newFakeStore()
	store.seed(insurer.KindRTO, "1", royal, "")
	store.seedLegacy(insurer.KindRTO, "1", royal, `{"zone":"west"}`)

	csvData := "rto_id,royal\n1,\"{\"\"zone\"\":\"\"west\"\"}\"\n"

	svc := newBulkService(store)
	result, err := svc.Upload(testContext(), BulkUploadParams{
		Kind:    insurer.KindRTO,
		Insurer: "royalsundaram",
	}, strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Zero(t, result.Skipped)

	v, err := store.GetPrimary(context.Background(), insurer.KindRTO, "1", royal)
	require.NoError(t, err)
	assert.Equal(t, mapping.Value(`{"zone":"west"}`), v)
}

func TestBulkUpload_NullMarkersNormalize(t *testing.T) {
	icici, _ := insurer.ByName("icici")
	store := newFakeStore()
	store.seed(insurer.KindPincode, "110001", icici, "")
	store.seed(insurer.KindPincode, "110002", icici, "")

	csvData := "pincode,data\n110001,nan\n110002,NULL\n"

	svc := newBulkService(store)
	result, err := svc.Upload(testContext(), BulkUploadParams{
		Kind:    insurer.KindPincode,
		Insurer: "icici",
	}, strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Zero(t, result.Updated, "null markers never fill an empty mapping")
	assert.Equal(t, 2, result.Skipped)
}

func TestBulkUpload_MissingColumnsRejectedBeforeAnyRow(t *testing.T) {
	store := newFakeStore()
	svc := newBulkService(store)

	csvData := "code,value\n1,x\n"
	_, err := svc.Upload(testContext(), BulkUploadParams{
		Kind:    insurer.KindRTO,
		Insurer: "icici",
	}, strings.NewReader(csvData))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensuredit_id")
	assert.Contains(t, err.Error(), "json_payload")
}

func TestBulkUpload_MMVRequiresProductScope(t *testing.T) {
	svc := newBulkService(newFakeStore())
	_, err := svc.Upload(testContext(), BulkUploadParams{
		Kind:    insurer.KindMMV,
		Insurer: "digit",
	}, strings.NewReader("ensuredit_id,digit\n10110101,ABC\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_id")
}

func TestBulkUpload_MMVRowsOutsideProductScopeError(t *testing.T) {
	digit, _ := insurer.ByName("digit")
	store := newFakeStore()
	store.seed(insurer.KindMMV, "10110101", digit, "")
	store.seed(insurer.KindMMV, "40110101", digit, "")

	csvData := strings.Join([]string{
		"ensuredit_id,digit",
		"10110101,TW123",
		"40110101,FW456",
		"notacode,XX",
	}, "\n")

	svc := newBulkService(store)
	result, err := svc.Upload(testContext(), BulkUploadParams{
		Kind:      insurer.KindMMV,
		Insurer:   "digit",
		ProductID: 1,
	}, strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 2, result.Errored, "wrong product and malformed code both fail their rows")
}

func TestBulkUpload_UnknownInsurerRejected(t *testing.T) {
	svc := newBulkService(newFakeStore())
	_, err := svc.Upload(testContext(), BulkUploadParams{
		Kind:    insurer.KindRTO,
		Insurer: "nonexistent",
	}, strings.NewReader("id,payload\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown insurer")
}
