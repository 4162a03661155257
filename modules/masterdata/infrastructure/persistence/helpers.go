package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
)

const legacyRoyalColumn = "royal"

// isUniqueViolation reports a Postgres duplicate-key error (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// mappingColumns is every insurer column plus the legacy royal column,
// in stable order. All names come from the closed registry, never from
// request input.
func mappingColumns() []string {
	return append(insurer.Columns(), legacyRoyalColumn)
}

// mappingScanTargets allocates one nullable text per mapping column.
func mappingScanTargets(n int) ([]pgtype.Text, []any) {
	values := make([]pgtype.Text, n)
	targets := make([]any, n)
	for i := range values {
		targets[i] = &values[i]
	}
	return values, targets
}

func mappingsFromValues(columns []string, values []pgtype.Text) map[string]mapping.Value {
	out := make(map[string]mapping.Value, len(columns))
	for i, col := range columns {
		if values[i].Valid {
			out[col] = mapping.Value(values[i].String)
		}
	}
	return out
}
