package rto

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("rto record not found")
	ErrAlreadyExists = errors.New("rto record already exists")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]RTO, int64, error)
	GetByID(ctx context.Context, id string) (RTO, error)
	Create(ctx context.Context, r RTO) (RTO, error)
	Update(ctx context.Context, r RTO) error
	// NextID returns max(numeric id)+1, or "1" on an empty table.
	NextID(ctx context.Context) (string, error)
}
