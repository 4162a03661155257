package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/pincode"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/modules/masterdata/infrastructure/persistence/models"
	"github.com/ensuredit/masterdata/pkg/composables"
	"github.com/ensuredit/masterdata/pkg/repo"
)

type PincodeRepository struct{}

func NewPincodeRepository() pincode.Repository {
	return &PincodeRepository{}
}

func (r *PincodeRepository) GetPaginated(ctx context.Context, params *pincode.FindParams) ([]pincode.Pincode, int64, error) {
	if params == nil {
		params = &pincode.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := "1=1"
	args := []any{}
	if q := strings.TrimSpace(params.Q); q != "" {
		where = "(pincode ILIKE $1 OR district ILIKE $1 OR city ILIKE $1 OR state ILIKE $1)"
		args = append(args, "%"+q+"%")
	}

	query := `
		SELECT pincode, district, city, state
		FROM pincode_master
		WHERE ` + where + `
		ORDER BY pincode
	`
	query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []pincode.Pincode
	for rows.Next() {
		var row models.Pincode
		if err := rows.Scan(&row.Pincode, &row.District, &row.City, &row.State); err != nil {
			return nil, 0, err
		}
		results = append(results, toDomainPincode(&row, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM pincode_master WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *PincodeRepository) GetByCode(ctx context.Context, code string) (pincode.Pincode, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return pincode.Pincode{}, err
	}

	cols := mappingColumns()
	query := `
		SELECT pincode, district, city, state, ` + strings.Join(cols, ", ") + `
		FROM pincode_master
		WHERE pincode = $1
	`
	var row models.Pincode
	values, targets := mappingScanTargets(len(cols))
	scanArgs := append([]any{&row.Pincode, &row.District, &row.City, &row.State}, targets...)

	if err := tx.QueryRow(ctx, query, strings.TrimSpace(code)).Scan(scanArgs...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pincode.Pincode{}, pincode.ErrNotFound
		}
		return pincode.Pincode{}, err
	}
	return toDomainPincode(&row, mappingsFromValues(cols, values)), nil
}

func (r *PincodeRepository) Create(ctx context.Context, entity pincode.Pincode) (pincode.Pincode, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return pincode.Pincode{}, err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO pincode_master (pincode, district, city, state)
		VALUES ($1, $2, $3, $4)
	`, entity.Code(), entity.District(), entity.City(), entity.State())
	if err != nil {
		if isUniqueViolation(err) {
			return pincode.Pincode{}, pincode.ErrAlreadyExists
		}
		return pincode.Pincode{}, err
	}
	return entity, nil
}

func (r *PincodeRepository) Update(ctx context.Context, entity pincode.Pincode) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE pincode_master
		SET district = $2, city = $3, state = $4
		WHERE pincode = $1
	`, entity.Code(), entity.District(), entity.City(), entity.State())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pincode.ErrNotFound
	}
	return nil
}

func toDomainPincode(row *models.Pincode, mappings map[string]mapping.Value) pincode.Pincode {
	return pincode.Hydrate(
		row.Pincode,
		row.District.String,
		row.City.String,
		row.State.String,
		mappings,
	)
}
