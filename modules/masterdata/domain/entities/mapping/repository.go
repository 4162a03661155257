package mapping

import (
	"context"
	"errors"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
)

// ErrRecordNotFound reports a business key with no master row behind it.
var ErrRecordNotFound = errors.New("no record for business key")

// Store reads and writes one insurer's mapping column across the three
// master tables. Implementations resolve the column strictly through
// the insurer registry.
type Store interface {
	// Get reads the mapping the platform serves: the insurer's column,
	// falling back to its legacy column when the primary is empty.
	Get(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (Value, error)
	// GetPrimary reads the insurer's own column only. The bulk
	// reconciler compares against it so a payload matching a legacy
	// value still lands in the primary column.
	GetPrimary(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (Value, error)
	// Update stores the value, writing NULL for an empty one. Returns
	// ErrRecordNotFound when the key does not exist.
	Update(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer, value Value) error
}
