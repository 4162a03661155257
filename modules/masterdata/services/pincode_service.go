package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/pincode"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/pkg/composables"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

type PincodeService struct {
	repo      pincode.Repository
	publisher eventbus.EventBus
	cache     *masterCache
}

func NewPincodeService(repo pincode.Repository, publisher eventbus.EventBus, cache *masterCache) *PincodeService {
	return &PincodeService{repo: repo, publisher: publisher, cache: cache}
}

func (s *PincodeService) GetPaginated(ctx context.Context, params *pincode.FindParams) ([]pincode.Pincode, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *PincodeService) GetByCode(ctx context.Context, code string) (pincode.Pincode, error) {
	code = strings.TrimSpace(code)
	if cached, ok := s.cache.Get(insurer.KindPincode, code); ok {
		return cached.(pincode.Pincode), nil
	}
	entity, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return pincode.Pincode{}, err
	}
	s.cache.Set(insurer.KindPincode, code, entity)
	return entity, nil
}

func (s *PincodeService) Create(ctx context.Context, dto *pincode.CreateDTO) (pincode.Pincode, error) {
	if dto == nil {
		return pincode.Pincode{}, errors.New("missing dto")
	}
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (pincode.Pincode, error) {
		return s.repo.Create(txCtx, dto.ToEntity())
	})
	if err != nil {
		return pincode.Pincode{}, err
	}
	s.publisher.Publish(PincodeCreatedEvent{Pincode: created.Code()})
	return created, nil
}

func (s *PincodeService) Update(ctx context.Context, code string, dto *pincode.UpdateDTO) (pincode.Pincode, error) {
	if dto == nil {
		return pincode.Pincode{}, errors.New("missing dto")
	}
	entity := dto.Apply(strings.TrimSpace(code))
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Update(txCtx, entity)
	})
	if err != nil {
		return pincode.Pincode{}, err
	}
	s.publisher.Publish(PincodeUpdatedEvent{Pincode: entity.Code()})
	return entity, nil
}
