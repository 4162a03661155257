package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/rto"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/pkg/constants"
)

func txContext(tx *stubTx) context.Context {
	return context.WithValue(context.Background(), constants.TxKey, tx)
}

func TestRTORepository_GetPaginated_SearchAndOrder(t *testing.T) {
	queryCalled := false
	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			queryCalled = true
			require.Contains(t, sql, "FROM rto_master")
			// The numeric sort must not choke on a non-numeric legacy id.
			require.Contains(t, sql, "ORDER BY CASE WHEN id ~ '^[0-9]+$' THEN CAST(id AS BIGINT) END, id")
			require.Contains(t, sql, "ILIKE")
			require.Equal(t, "%MH%", args[0])
			return &stubRows{data: [][]any{
				{"1", text("MH01"), text("Mumbai"), text("Maharashtra"), text(""), text("")},
			}}, nil
		},
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "COUNT(*)")
			return stubRow{scan: func(dest ...any) error {
				*dest[0].(*int64) = 1
				return nil
			}}
		},
	}

	repo := NewRTORepository()
	results, total, err := repo.GetPaginated(txContext(tx), &rto.FindParams{Q: "MH", Limit: 10})
	require.NoError(t, err)
	require.True(t, queryCalled)
	require.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	require.Equal(t, "MH01", results[0].RTOCode())
}

func TestRTORepository_GetByID_NotFound(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}

	_, err := NewRTORepository().GetByID(txContext(tx), "999")
	require.ErrorIs(t, err, rto.ErrNotFound)
}

func TestRTORepository_Create_DuplicateID(t *testing.T) {
	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "INSERT INTO rto_master")
			return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"}
		},
	}

	_, err := NewRTORepository().Create(txContext(tx), rto.New("1", "MH01", "Mumbai", "Maharashtra", "", ""))
	require.ErrorIs(t, err, rto.ErrAlreadyExists)
}

func TestRTORepository_Update_MissingRow(t *testing.T) {
	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}

	err := NewRTORepository().Update(txContext(tx), rto.New("1", "MH01", "Mumbai", "Maharashtra", "", ""))
	require.ErrorIs(t, err, rto.ErrNotFound)
}

func TestRTORepository_NextID_SkipsNonNumericIDs(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, `id ~ '^[0-9]+$'`)
			return stubRow{scan: func(dest ...any) error {
				*dest[0].(*int64) = 42
				return nil
			}}
		},
	}

	next, err := NewRTORepository().NextID(txContext(tx))
	require.NoError(t, err)
	require.Equal(t, "42", next)
}

func TestMMVRepository_Create_HierarchyConflict(t *testing.T) {
	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "INSERT INTO mmv_master")
			return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"}
		},
	}

	entity := mmv.New(1, "Honda", "Activa", "STD", "Petrol", 110, "", 2, 0).WithCode("10110101")
	_, err := NewMMVRepository().Create(txContext(tx), entity)
	require.ErrorIs(t, err, mmv.ErrHierarchyTaken)
}

func TestMMVCodeIndex_SegmentQueries(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "SUBSTRING(ensuredit_id, 1, 3)")
			require.Contains(t, sql, `ensuredit_id ~ '^\d{8}$'`)
			require.Equal(t, 1, args[0])
			require.Equal(t, "Honda", args[1])
			return stubRow{scan: func(dest ...any) error {
				*dest[0].(*pgtype.Int4) = pgtype.Int4{Int32: 105, Valid: true}
				return nil
			}}
		},
	}

	seg, found, err := NewMMVCodeIndex().MakeSegment(txContext(tx), 1, "Honda")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 105, seg)
}

func TestMMVCodeIndex_MaxMakeScopedToProductBand(t *testing.T) {
	// The make-prefix MAX only considers codes from the product's own
	// band; a stray code from the other line must never feed max+1.
	for _, tc := range []struct {
		productID int
		predicate string
	}{
		{1, "CAST(SUBSTRING(ensuredit_id, 1, 3) AS INT) < $2"},
		{2, "CAST(SUBSTRING(ensuredit_id, 1, 3) AS INT) >= $2"},
	} {
		tx := &stubTx{
			queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, tc.predicate)
				require.Contains(t, sql, `ensuredit_id ~ '^\d{8}$'`)
				require.Equal(t, tc.productID, args[0])
				require.Equal(t, 400, args[1])
				return stubRow{scan: func(dest ...any) error {
					*dest[0].(*pgtype.Int4) = pgtype.Int4{Int32: 401, Valid: true}
					return nil
				}}
			},
		}

		seg, found, err := NewMMVCodeIndex().MaxMakeSegment(txContext(tx), tc.productID)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, 401, seg)
	}
}

func TestMMVCodeIndex_NullAggregateMeansNotFound(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return stubRow{scan: func(dest ...any) error {
				*dest[0].(*pgtype.Int4) = pgtype.Int4{}
				return nil
			}}
		},
	}

	_, found, err := NewMMVCodeIndex().MaxMakeSegment(txContext(tx), 2)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMappingRepository_Get_LegacyRoyalFallback(t *testing.T) {
	ins, ok := insurer.ByName("royalsundaram")
	require.True(t, ok)

	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "SELECT royalsundaram, royal FROM rto_master")
			require.Equal(t, "12", args[0])
			return stubRow{scan: func(dest ...any) error {
				*dest[0].(*pgtype.Text) = pgtype.Text{}
				*dest[1].(*pgtype.Text) = pgtype.Text{String: `{"old":1}`, Valid: true}
				return nil
			}}
		},
	}

	value, err := NewMappingRepository().Get(txContext(tx), insurer.KindRTO, "12", ins)
	require.NoError(t, err)
	require.Equal(t, mapping.Value(`{"old":1}`), value)
}

func TestMappingRepository_GetPrimary_SkipsLegacyColumn(t *testing.T) {
	ins, ok := insurer.ByName("royalsundaram")
	require.True(t, ok)

	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "SELECT royalsundaram FROM rto_master")
			require.NotContains(t, sql, "royal,")
			return stubRow{scan: func(dest ...any) error {
				*dest[0].(*pgtype.Text) = pgtype.Text{}
				return nil
			}}
		},
	}

	value, err := NewMappingRepository().GetPrimary(txContext(tx), insurer.KindRTO, "12", ins)
	require.NoError(t, err)
	require.True(t, value.Empty(), "legacy value never reaches the primary read")
}

func TestMappingRepository_Get_PrimaryWinsOverLegacy(t *testing.T) {
	ins, ok := insurer.ByName("royalsundaram")
	require.True(t, ok)

	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return stubRow{scan: func(dest ...any) error {
				*dest[0].(*pgtype.Text) = pgtype.Text{String: `{"new":1}`, Valid: true}
				*dest[1].(*pgtype.Text) = pgtype.Text{String: `{"old":1}`, Valid: true}
				return nil
			}}
		},
	}

	value, err := NewMappingRepository().Get(txContext(tx), insurer.KindRTO, "12", ins)
	require.NoError(t, err)
	require.Equal(t, mapping.Value(`{"new":1}`), value)
}

func TestMappingRepository_Update_EmptyBecomesNull(t *testing.T) {
	ins, ok := insurer.ByName("icici")
	require.True(t, ok)

	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Equal(t, "UPDATE mmv_master SET icici = NULLIF($2, '') WHERE ensuredit_id = $1", sql)
			require.Equal(t, "10110101", args[0])
			require.Equal(t, "", args[1])
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	err := NewMappingRepository().Update(txContext(tx), insurer.KindMMV, "10110101", ins, "")
	require.NoError(t, err)
}

func TestMappingRepository_Update_UnknownKey(t *testing.T) {
	ins, ok := insurer.ByName("icici")
	require.True(t, ok)

	tx := &stubTx{
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}

	err := NewMappingRepository().Update(txContext(tx), insurer.KindPincode, "400001", ins, `{"a":1}`)
	require.ErrorIs(t, err, mapping.ErrRecordNotFound)
}

type stubTx struct {
	queryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	execFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (s *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("copy not implemented")
}

func (s *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	var results pgx.BatchResults
	return results
}

func (s *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if s.execFunc == nil {
		return pgconn.CommandTag{}, errors.New("exec not implemented")
	}
	return s.execFunc(ctx, sql, arguments...)
}

func (s *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if s.queryFunc == nil {
		return nil, errors.New("query not implemented")
	}
	return s.queryFunc(ctx, sql, args...)
}

func (s *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.queryRowFunc == nil {
		return stubRow{scan: func(dest ...any) error { return errors.New("query row not implemented") }}
	}
	return s.queryRowFunc(ctx, sql, args...)
}

func text(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: true}
}

type stubRows struct {
	data [][]any
	idx  int
	err  error
}

func (r *stubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.data) {
		return errors.New("no current row to scan")
	}
	row := r.data[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("destination length %d does not match row length %d", len(dest), len(row))
	}
	for i, target := range dest {
		switch v := target.(type) {
		case *string:
			*v = row[i].(string)
		case *int32:
			*v = row[i].(int32)
		case *int64:
			*v = row[i].(int64)
		case *pgtype.Text:
			*v = row[i].(pgtype.Text)
		case *pgtype.Int4:
			*v = row[i].(pgtype.Int4)
		default:
			return fmt.Errorf("unsupported scan target %T", target)
		}
	}
	return nil
}

func (r *stubRows) Values() ([]any, error) {
	if r.idx == 0 || r.idx > len(r.data) {
		return nil, errors.New("no current row")
	}
	return r.data[r.idx-1], nil
}

func (r *stubRows) RawValues() [][]byte { return nil }
func (r *stubRows) Err() error          { return r.err }
func (r *stubRows) Close()              {}
func (r *stubRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return errors.New("scan not implemented")
	}
	return r.scan(dest...)
}
