package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/mapping"
	"github.com/ensuredit/masterdata/pkg/composables"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

// MappingService backs the per-insurer editor: read one record's
// payload for one insurer, write one payload back.
type MappingService struct {
	store     mapping.Store
	mmvRepo   mmv.Repository
	publisher eventbus.EventBus
}

func NewMappingService(store mapping.Store, mmvRepo mmv.Repository, publisher eventbus.EventBus) *MappingService {
	return &MappingService{store: store, mmvRepo: mmvRepo, publisher: publisher}
}

func (s *MappingService) Get(ctx context.Context, kind insurer.MasterKind, key, insurerName string) (mapping.Value, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown master kind %q", kind)
	}
	ins, ok := insurer.ByName(insurerName)
	if !ok {
		return "", fmt.Errorf("unknown insurer %q", insurerName)
	}
	return s.store.Get(ctx, kind, strings.TrimSpace(key), ins)
}

// Update validates and stores one payload. JSON-typed insurers must
// supply well-formed JSON; scalar ones (bare vehicle codes) take the
// text as is.
func (s *MappingService) Update(ctx context.Context, kind insurer.MasterKind, key, insurerName, raw string) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown master kind %q", kind)
	}
	ins, ok := insurer.ByName(insurerName)
	if !ok {
		return fmt.Errorf("unknown insurer %q", insurerName)
	}
	key = strings.TrimSpace(key)
	value := mapping.Normalize(raw)

	err := composables.InTx(ctx, func(txCtx context.Context) error {
		scalar, err := s.isScalar(txCtx, kind, key, ins)
		if err != nil {
			return err
		}
		if !scalar && !value.Empty() && !json.Valid([]byte(value)) {
			return mapping.ErrInvalidPayload
		}
		return s.store.Update(txCtx, kind, key, ins, value)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(MappingUpdatedEvent{Kind: kind, Key: key, Insurer: ins.Name()})
	return nil
}

// isScalar needs the MMV row's product line; the other kinds are
// always JSON-typed.
func (s *MappingService) isScalar(ctx context.Context, kind insurer.MasterKind, key string, ins insurer.Insurer) (bool, error) {
	if kind != insurer.KindMMV {
		return false, nil
	}
	record, err := s.mmvRepo.GetByCode(ctx, mmv.Code(key))
	if err != nil {
		return false, err
	}
	return ins.Scalar(kind, record.ProductID()), nil
}
