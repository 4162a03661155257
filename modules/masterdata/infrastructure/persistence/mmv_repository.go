package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/modules/masterdata/infrastructure/persistence/models"
	"github.com/ensuredit/masterdata/pkg/composables"
	"github.com/ensuredit/masterdata/pkg/repo"
)

// validCodeFilter keeps malformed composite codes out of every segment
// query; rows failing it never participate in allocation.
const validCodeFilter = `ensuredit_id ~ '^\d{8}$'`

type MMVRepository struct{}

func NewMMVRepository() mmv.Repository {
	return &MMVRepository{}
}

const mmvCoreColumns = `id, product_id, make, model, variant, fuel_type, cc, body_type, seating_capacity, carrying_capacity, ensuredit_id`

func (r *MMVRepository) GetPaginated(ctx context.Context, params *mmv.FindParams) ([]mmv.MMV, int64, error) {
	if params == nil {
		params = &mmv.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := "product_id = $1"
	args := []any{params.ProductID}
	if q := strings.TrimSpace(params.Q); q != "" {
		where += " AND (make ILIKE $2 OR model ILIKE $2 OR variant ILIKE $2)"
		args = append(args, "%"+q+"%")
	}

	query := `
		SELECT ` + mmvCoreColumns + `
		FROM mmv_master
		WHERE ` + where + `
		ORDER BY id DESC
	`
	query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []mmv.MMV
	for rows.Next() {
		row, err := scanMMV(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, toDomainMMV(row, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM mmv_master WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *MMVRepository) GetByCode(ctx context.Context, code mmv.Code) (mmv.MMV, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return mmv.MMV{}, err
	}

	cols := mappingColumns()
	query := `
		SELECT ` + mmvCoreColumns + `, ` + strings.Join(cols, ", ") + `
		FROM mmv_master
		WHERE ensuredit_id = $1
	`
	var row models.MMV
	values, targets := mappingScanTargets(len(cols))
	scanArgs := append([]any{
		&row.ID, &row.ProductID, &row.Make, &row.Model, &row.Variant,
		&row.FuelType, &row.CC, &row.BodyType, &row.SeatingCapacity,
		&row.CarryingCapacity, &row.EnsureditID,
	}, targets...)

	if err := tx.QueryRow(ctx, query, string(code)).Scan(scanArgs...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mmv.MMV{}, mmv.ErrNotFound
		}
		return mmv.MMV{}, err
	}
	return toDomainMMV(&row, mappingsFromValues(cols, values)), nil
}

func (r *MMVRepository) GetByHierarchy(ctx context.Context, productID int, make, model, variant string) (mmv.MMV, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return mmv.MMV{}, err
	}
	query := `
		SELECT ` + mmvCoreColumns + `
		FROM mmv_master
		WHERE product_id = $1 AND make = $2 AND model = $3 AND variant = $4
	`
	row := &models.MMV{}
	err = tx.QueryRow(ctx, query, productID, strings.TrimSpace(make), strings.TrimSpace(model), strings.TrimSpace(variant)).Scan(
		&row.ID, &row.ProductID, &row.Make, &row.Model, &row.Variant,
		&row.FuelType, &row.CC, &row.BodyType, &row.SeatingCapacity,
		&row.CarryingCapacity, &row.EnsureditID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mmv.MMV{}, mmv.ErrNotFound
		}
		return mmv.MMV{}, err
	}
	return toDomainMMV(row, nil), nil
}

func (r *MMVRepository) Create(ctx context.Context, entity mmv.MMV) (mmv.MMV, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return mmv.MMV{}, err
	}
	id := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO mmv_master (id, product_id, make, model, variant, fuel_type, cc, body_type, seating_capacity, carrying_capacity, ensuredit_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		id.String(), entity.ProductID(), entity.Make(), entity.Model(), entity.Variant(),
		entity.FuelType(), entity.CC(), entity.BodyType(),
		entity.SeatingCapacity(), entity.CarryingCapacity(), string(entity.Code()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mmv.MMV{}, mmv.ErrHierarchyTaken
		}
		return mmv.MMV{}, err
	}
	return mmv.Hydrate(
		id, entity.ProductID(),
		entity.Make(), entity.Model(), entity.Variant(),
		entity.FuelType(), entity.CC(), entity.BodyType(),
		entity.SeatingCapacity(), entity.CarryingCapacity(),
		entity.Code(), nil,
	), nil
}

func (r *MMVRepository) Update(ctx context.Context, entity mmv.MMV) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE mmv_master
		SET fuel_type = $2, cc = $3, body_type = $4, seating_capacity = $5, carrying_capacity = $6
		WHERE ensuredit_id = $1
	`,
		string(entity.Code()), entity.FuelType(), entity.CC(), entity.BodyType(),
		entity.SeatingCapacity(), entity.CarryingCapacity(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mmv.ErrNotFound
	}
	return nil
}

func (r *MMVRepository) Makes(ctx context.Context, productID int) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT make FROM mmv_master
		WHERE product_id = $1 AND make IS NOT NULL
		ORDER BY make
	`, productID)
}

func (r *MMVRepository) Models(ctx context.Context, productID int, make string) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT model FROM mmv_master
		WHERE product_id = $1 AND make = $2 AND model IS NOT NULL
		ORDER BY model
	`, productID, strings.TrimSpace(make))
}

func (r *MMVRepository) Variants(ctx context.Context, productID int, make, model string) ([]string, error) {
	return r.distinct(ctx, `
		SELECT DISTINCT variant FROM mmv_master
		WHERE product_id = $1 AND make = $2 AND model = $3 AND variant IS NOT NULL
		ORDER BY variant
	`, productID, strings.TrimSpace(make), strings.TrimSpace(model))
}

func (r *MMVRepository) distinct(ctx context.Context, query string, args ...any) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMMV(rows rowScanner) (*models.MMV, error) {
	var row models.MMV
	err := rows.Scan(
		&row.ID, &row.ProductID, &row.Make, &row.Model, &row.Variant,
		&row.FuelType, &row.CC, &row.BodyType, &row.SeatingCapacity,
		&row.CarryingCapacity, &row.EnsureditID,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func toDomainMMV(row *models.MMV, mappings map[string]mapping.Value) mmv.MMV {
	// Seed imports may carry non-UUID ids; those hydrate with a nil id
	// and remain addressable by composite code.
	id, _ := uuid.Parse(row.ID)
	return mmv.Hydrate(
		id,
		int(row.ProductID),
		row.Make.String, row.Model.String, row.Variant.String,
		row.FuelType.String,
		int(row.CC.Int32),
		row.BodyType.String,
		int(row.SeatingCapacity.Int32),
		int(row.CarryingCapacity.Int32),
		mmv.Code(row.EnsureditID.String),
		mappings,
	)
}

// ---- CodeIndex ----

type MMVCodeIndex struct{}

func NewMMVCodeIndex() mmv.CodeIndex {
	return &MMVCodeIndex{}
}

func (i *MMVCodeIndex) MakeSegment(ctx context.Context, productID int, make string) (int, bool, error) {
	return i.segment(ctx, `
		SELECT MIN(CAST(SUBSTRING(ensuredit_id, 1, 3) AS INT))
		FROM mmv_master
		WHERE product_id = $1 AND make = $2 AND `+validCodeFilter,
		productID, strings.TrimSpace(make))
}

func (i *MMVCodeIndex) MaxMakeSegment(ctx context.Context, productID int) (int, bool, error) {
	// Stray codes from the other line's band must not feed max+1, or
	// the next allocation collides with the table-level UNIQUE.
	band := "<"
	if productID == mmv.ProductFourWheeler {
		band = ">="
	}
	return i.segment(ctx, `
		SELECT MAX(CAST(SUBSTRING(ensuredit_id, 1, 3) AS INT))
		FROM mmv_master
		WHERE product_id = $1 AND CAST(SUBSTRING(ensuredit_id, 1, 3) AS INT) `+band+` $2 AND `+validCodeFilter,
		productID, mmv.FourWheelerMakeFloor)
}

func (i *MMVCodeIndex) ModelSegment(ctx context.Context, productID, makeSeg int, model string) (int, bool, error) {
	return i.segment(ctx, `
		SELECT MIN(CAST(SUBSTRING(ensuredit_id, 4, 3) AS INT))
		FROM mmv_master
		WHERE product_id = $1 AND SUBSTRING(ensuredit_id, 1, 3) = $2 AND model = $3 AND `+validCodeFilter,
		productID, segmentText(makeSeg, 3), strings.TrimSpace(model))
}

func (i *MMVCodeIndex) MaxModelSegment(ctx context.Context, productID, makeSeg int) (int, bool, error) {
	return i.segment(ctx, `
		SELECT MAX(CAST(SUBSTRING(ensuredit_id, 4, 3) AS INT))
		FROM mmv_master
		WHERE product_id = $1 AND SUBSTRING(ensuredit_id, 1, 3) = $2 AND `+validCodeFilter,
		productID, segmentText(makeSeg, 3))
}

func (i *MMVCodeIndex) VariantSegment(ctx context.Context, productID, makeSeg, modelSeg int, variant string) (int, bool, error) {
	return i.segment(ctx, `
		SELECT MIN(CAST(SUBSTRING(ensuredit_id, 7, 2) AS INT))
		FROM mmv_master
		WHERE product_id = $1 AND SUBSTRING(ensuredit_id, 1, 3) = $2 AND SUBSTRING(ensuredit_id, 4, 3) = $3 AND variant = $4 AND `+validCodeFilter,
		productID, segmentText(makeSeg, 3), segmentText(modelSeg, 3), strings.TrimSpace(variant))
}

func (i *MMVCodeIndex) MaxVariantSegment(ctx context.Context, productID, makeSeg, modelSeg int) (int, bool, error) {
	return i.segment(ctx, `
		SELECT MAX(CAST(SUBSTRING(ensuredit_id, 7, 2) AS INT))
		FROM mmv_master
		WHERE product_id = $1 AND SUBSTRING(ensuredit_id, 1, 3) = $2 AND SUBSTRING(ensuredit_id, 4, 3) = $3 AND `+validCodeFilter,
		productID, segmentText(makeSeg, 3), segmentText(modelSeg, 3))
}

func (i *MMVCodeIndex) segment(ctx context.Context, query string, args ...any) (int, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, false, err
	}
	var value pgtype.Int4
	if err := tx.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if !value.Valid {
		return 0, false, nil
	}
	return int(value.Int32), true, nil
}

func segmentText(seg, width int) string {
	return fmt.Sprintf("%0*d", width, seg)
}
