package mmv

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("mmv record not found")
	ErrHierarchyTaken = errors.New("make/model/variant already exists for this product")
	// ErrCodeSpaceExhausted is returned when a segment would exceed its
	// fixed width: more than 999 makes, 999 models per make, or 99
	// variants per model.
	ErrCodeSpaceExhausted = errors.New("composite code space exhausted")
)

type FindParams struct {
	ProductID int
	Q         string
	Limit     int
	Offset    int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]MMV, int64, error)
	GetByCode(ctx context.Context, code Code) (MMV, error)
	GetByHierarchy(ctx context.Context, productID int, make, model, variant string) (MMV, error)
	Create(ctx context.Context, m MMV) (MMV, error)
	Update(ctx context.Context, m MMV) error
	Makes(ctx context.Context, productID int) ([]string, error)
	Models(ctx context.Context, productID int, make string) ([]string, error)
	Variants(ctx context.Context, productID int, make, model string) ([]string, error)
}

// CodeIndex answers segment lookups over existing composite codes.
// Rows whose code is not an 8-digit number are ignored by every query.
type CodeIndex interface {
	// MakeSegment returns the 3-digit prefix already assigned to a make
	// within a product scope.
	MakeSegment(ctx context.Context, productID int, make string) (int, bool, error)
	MaxMakeSegment(ctx context.Context, productID int) (int, bool, error)
	ModelSegment(ctx context.Context, productID, makeSeg int, model string) (int, bool, error)
	MaxModelSegment(ctx context.Context, productID, makeSeg int) (int, bool, error)
	VariantSegment(ctx context.Context, productID, makeSeg, modelSeg int, variant string) (int, bool, error)
	MaxVariantSegment(ctx context.Context, productID, makeSeg, modelSeg int) (int, bool, error)
}
