package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	gerrors "github.com/go-faster/errors"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/pkg/composables"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

// BulkResult is the per-batch outcome summary: rows written, rows left
// untouched, and rows whose business key had no record behind it.
type BulkResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errored int `json:"errored"`
}

type BulkUploadParams struct {
	Kind      insurer.MasterKind
	Insurer   string
	Overwrite bool
	// ProductID scopes MMV batches to one product line; ignored for the
	// other master kinds.
	ProductID int
}

// BulkMappingService reconciles a CSV of (business key, payload) pairs
// against one insurer's mapping column. The whole batch runs in a
// single transaction: a key miss only fails its row, any unexpected
// error rolls everything back.
type BulkMappingService struct {
	store     mapping.Store
	publisher eventbus.EventBus
}

func NewBulkMappingService(store mapping.Store, publisher eventbus.EventBus) *BulkMappingService {
	return &BulkMappingService{store: store, publisher: publisher}
}

func (s *BulkMappingService) Upload(ctx context.Context, params BulkUploadParams, r io.Reader) (BulkResult, error) {
	if !params.Kind.Valid() {
		return BulkResult{}, fmt.Errorf("unknown master kind %q", params.Kind)
	}
	ins, ok := insurer.ByName(params.Insurer)
	if !ok {
		return BulkResult{}, fmt.Errorf("unknown insurer %q", params.Insurer)
	}
	if params.Kind == insurer.KindMMV &&
		params.ProductID != mmv.ProductTwoWheeler && params.ProductID != mmv.ProductFourWheeler {
		return BulkResult{}, fmt.Errorf("mmv uploads require product_id 1 or 2, got %d", params.ProductID)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return BulkResult{}, gerrors.Wrap(err, "read csv header")
	}
	cols, err := mapping.ResolveColumns(header, ins)
	if err != nil {
		return BulkResult{}, err
	}
	keyIdx, payloadIdx := columnIndices(header, cols)

	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (BulkResult, error) {
		return s.reconcile(txCtx, params, ins, reader, keyIdx, payloadIdx)
	})
	if err != nil {
		bulkUploadsTotal.WithLabelValues(string(params.Kind), "failed").Inc()
		return BulkResult{}, err
	}
	bulkUploadsTotal.WithLabelValues(string(params.Kind), "completed").Inc()

	s.publisher.Publish(BulkUploadCompletedEvent{
		Kind:    params.Kind,
		Insurer: ins.Name(),
		Result:  result,
	})
	return result, nil
}

func (s *BulkMappingService) reconcile(
	ctx context.Context,
	params BulkUploadParams,
	ins insurer.Insurer,
	reader *csv.Reader,
	keyIdx, payloadIdx int,
) (BulkResult, error) {
	var result BulkResult
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return BulkResult{}, gerrors.Wrap(err, "read csv row")
		}
		if keyIdx >= len(record) || payloadIdx >= len(record) {
			result.Errored++
			s.count(params, ins, "errored")
			continue
		}

		key := strings.TrimSpace(record[keyIdx])
		incoming := mapping.Normalize(record[payloadIdx])

		// Malformed codes and the other line's codes both fail their row.
		if params.Kind == insurer.KindMMV && !mmv.Code(key).InProductScope(params.ProductID) {
			result.Errored++
			s.count(params, ins, "errored")
			continue
		}

		// The comparison reads the primary column only: a legacy-column
		// value never masks an incoming payload, it gets migrated.
		current, err := s.store.GetPrimary(ctx, params.Kind, key, ins)
		if err != nil {
			if errors.Is(err, mapping.ErrRecordNotFound) {
				result.Errored++
				s.count(params, ins, "errored")
				continue
			}
			return BulkResult{}, err
		}

		if mapping.Decide(current, incoming, params.Overwrite) == mapping.Update {
			if err := s.store.Update(ctx, params.Kind, key, ins, incoming); err != nil {
				if errors.Is(err, mapping.ErrRecordNotFound) {
					result.Errored++
					s.count(params, ins, "errored")
					continue
				}
				return BulkResult{}, err
			}
			result.Updated++
			s.count(params, ins, "updated")
		} else {
			result.Skipped++
			s.count(params, ins, "skipped")
		}
	}
	return result, nil
}

func (s *BulkMappingService) count(params BulkUploadParams, ins insurer.Insurer, outcome string) {
	bulkRowsTotal.WithLabelValues(string(params.Kind), ins.Name(), outcome).Inc()
}

func columnIndices(header []string, cols mapping.Columns) (int, int) {
	keyIdx, payloadIdx := -1, -1
	for i, h := range header {
		trimmed := strings.TrimSpace(h)
		if keyIdx < 0 && trimmed == cols.Key {
			keyIdx = i
		}
		if payloadIdx < 0 && trimmed == cols.Payload {
			payloadIdx = i
		}
	}
	return keyIdx, payloadIdx
}
