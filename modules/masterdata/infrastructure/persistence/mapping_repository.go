package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/pkg/composables"
)

type masterTable struct {
	name   string
	keyCol string
}

var masterTables = map[insurer.MasterKind]masterTable{
	insurer.KindRTO:     {name: "rto_master", keyCol: "id"},
	insurer.KindMMV:     {name: "mmv_master", keyCol: "ensuredit_id"},
	insurer.KindPincode: {name: "pincode_master", keyCol: "pincode"},
}

// MappingRepository reads and writes insurer mapping columns. Column
// and table names are resolved from closed registries; request input
// never reaches the SQL text.
type MappingRepository struct{}

func NewMappingRepository() mapping.Store {
	return &MappingRepository{}
}

func (r *MappingRepository) Get(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (mapping.Value, error) {
	cols := []string{ins.Column()}
	if legacy := ins.LegacyColumn(); legacy != "" {
		cols = append(cols, legacy)
	}
	values, err := r.read(ctx, kind, key, cols)
	if err != nil {
		return "", err
	}
	primary := textValue(values[0])
	if !primary.Empty() || len(values) == 1 {
		return primary, nil
	}
	return textValue(values[1]), nil
}

// GetPrimary skips the legacy fallback; the reconciler reads through
// it so legacy-only values count as empty and get migrated.
func (r *MappingRepository) GetPrimary(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (mapping.Value, error) {
	values, err := r.read(ctx, kind, key, []string{ins.Column()})
	if err != nil {
		return "", err
	}
	return textValue(values[0]), nil
}

func (r *MappingRepository) read(ctx context.Context, kind insurer.MasterKind, key string, cols []string) ([]pgtype.Text, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	table, ok := masterTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown master kind %q", kind)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(cols, ", "), table.name, table.keyCol,
	)
	values, targets := mappingScanTargets(len(cols))
	if err := tx.QueryRow(ctx, query, strings.TrimSpace(key)).Scan(targets...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mapping.ErrRecordNotFound
		}
		return nil, err
	}
	return values, nil
}

func (r *MappingRepository) Update(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer, value mapping.Value) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	table, ok := masterTables[kind]
	if !ok {
		return fmt.Errorf("unknown master kind %q", kind)
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s = NULLIF($2, '') WHERE %s = $1",
		table.name, ins.Column(), table.keyCol,
	)
	tag, err := tx.Exec(ctx, query, strings.TrimSpace(key), string(value))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapping.ErrRecordNotFound
	}
	return nil
}

func textValue(v pgtype.Text) mapping.Value {
	if !v.Valid {
		return ""
	}
	return mapping.Value(v.String)
}
