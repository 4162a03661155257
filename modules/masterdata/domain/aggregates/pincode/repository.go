package pincode

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("pincode record not found")
	ErrAlreadyExists = errors.New("pincode record already exists")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Pincode, int64, error)
	GetByCode(ctx context.Context, code string) (Pincode, error)
	Create(ctx context.Context, p Pincode) (Pincode, error)
	Update(ctx context.Context, p Pincode) error
}
