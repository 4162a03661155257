package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/rto"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/modules/masterdata/infrastructure/persistence/models"
	"github.com/ensuredit/masterdata/pkg/composables"
	"github.com/ensuredit/masterdata/pkg/repo"
)

type RTORepository struct{}

func NewRTORepository() rto.Repository {
	return &RTORepository{}
}

func (r *RTORepository) GetPaginated(ctx context.Context, params *rto.FindParams) ([]rto.RTO, int64, error) {
	if params == nil {
		params = &rto.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := "1=1"
	args := []any{}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = "(rto_code ILIKE $1 OR city ILIKE $1 OR state ILIKE $1 OR search_string ILIKE $1)"
		args = append(args, "%"+q+"%")
	}

	// Ids are numeric text but legacy imports are not guaranteed clean;
	// non-numeric ids sort last instead of failing the whole listing.
	query := `
		SELECT id, rto_code, city, state, search_string, display_string
		FROM rto_master
		WHERE ` + where + `
		ORDER BY CASE WHEN id ~ '^[0-9]+$' THEN CAST(id AS BIGINT) END, id
	`
	query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []rto.RTO
	for rows.Next() {
		var row models.RTO
		if err := rows.Scan(&row.ID, &row.RTOCode, &row.City, &row.State, &row.SearchString, &row.DisplayString); err != nil {
			return nil, 0, err
		}
		results = append(results, toDomainRTO(&row, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM rto_master WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *RTORepository) GetByID(ctx context.Context, id string) (rto.RTO, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return rto.RTO{}, err
	}

	cols := mappingColumns()
	query := `
		SELECT id, rto_code, city, state, search_string, display_string, ` + strings.Join(cols, ", ") + `
		FROM rto_master
		WHERE id = $1
	`
	var row models.RTO
	values, targets := mappingScanTargets(len(cols))
	scanArgs := append([]any{&row.ID, &row.RTOCode, &row.City, &row.State, &row.SearchString, &row.DisplayString}, targets...)

	if err := tx.QueryRow(ctx, query, strings.TrimSpace(id)).Scan(scanArgs...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rto.RTO{}, rto.ErrNotFound
		}
		return rto.RTO{}, err
	}
	return toDomainRTO(&row, mappingsFromValues(cols, values)), nil
}

func (r *RTORepository) Create(ctx context.Context, entity rto.RTO) (rto.RTO, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return rto.RTO{}, err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO rto_master (id, rto_code, city, state, search_string, display_string)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entity.ID(), entity.RTOCode(), entity.City(), entity.State(), entity.SearchString(), entity.DisplayString())
	if err != nil {
		if isUniqueViolation(err) {
			return rto.RTO{}, rto.ErrAlreadyExists
		}
		return rto.RTO{}, err
	}
	return entity, nil
}

func (r *RTORepository) Update(ctx context.Context, entity rto.RTO) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE rto_master
		SET rto_code = $2, city = $3, state = $4, search_string = $5, display_string = $6
		WHERE id = $1
	`, entity.ID(), entity.RTOCode(), entity.City(), entity.State(), entity.SearchString(), entity.DisplayString())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return rto.ErrNotFound
	}
	return nil
}

func (r *RTORepository) NextID(ctx context.Context) (string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return "", err
	}
	var next int64
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(id AS BIGINT)), 0) + 1
		FROM rto_master
		WHERE id ~ '^[0-9]+$'
	`).Scan(&next); err != nil {
		return "", err
	}
	return strconv.FormatInt(next, 10), nil
}

func toDomainRTO(row *models.RTO, mappings map[string]mapping.Value) rto.RTO {
	return rto.Hydrate(
		row.ID,
		row.RTOCode.String,
		row.City.String,
		row.State.String,
		row.SearchString.String,
		row.DisplayString.String,
		mappings,
	)
}
