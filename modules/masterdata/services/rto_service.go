package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/rto"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/pkg/composables"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

type RTOService struct {
	repo      rto.Repository
	publisher eventbus.EventBus
	cache     *masterCache
}

func NewRTOService(repo rto.Repository, publisher eventbus.EventBus, cache *masterCache) *RTOService {
	return &RTOService{repo: repo, publisher: publisher, cache: cache}
}

func (s *RTOService) GetPaginated(ctx context.Context, params *rto.FindParams) ([]rto.RTO, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *RTOService) GetByID(ctx context.Context, id string) (rto.RTO, error) {
	id = strings.TrimSpace(id)
	if cached, ok := s.cache.Get(insurer.KindRTO, id); ok {
		return cached.(rto.RTO), nil
	}
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return rto.RTO{}, err
	}
	s.cache.Set(insurer.KindRTO, id, entity)
	return entity, nil
}

func (s *RTOService) NextID(ctx context.Context) (string, error) {
	return s.repo.NextID(ctx)
}

func (s *RTOService) Create(ctx context.Context, dto *rto.CreateDTO) (rto.RTO, error) {
	if dto == nil {
		return rto.RTO{}, errors.New("missing dto")
	}
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (rto.RTO, error) {
		return s.repo.Create(txCtx, dto.ToEntity())
	})
	if err != nil {
		return rto.RTO{}, err
	}
	s.publisher.Publish(RTOCreatedEvent{ID: created.ID()})
	return created, nil
}

func (s *RTOService) Update(ctx context.Context, id string, dto *rto.UpdateDTO) (rto.RTO, error) {
	if dto == nil {
		return rto.RTO{}, errors.New("missing dto")
	}
	entity := dto.Apply(strings.TrimSpace(id))
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Update(txCtx, entity)
	})
	if err != nil {
		return rto.RTO{}, err
	}
	s.publisher.Publish(RTOUpdatedEvent{ID: entity.ID()})
	return entity, nil
}
