package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
	"github.com/ensuredit/masterdata/modules/masterdata/domain/entities/insurer"
	"github.com/ensuredit/masterdata/pkg/composables"
	"github.com/ensuredit/masterdata/pkg/eventbus"
)

type MMVService struct {
	repo      mmv.Repository
	allocator *CodeAllocator
	publisher eventbus.EventBus
	cache     *masterCache
}

func NewMMVService(
	repo mmv.Repository,
	allocator *CodeAllocator,
	publisher eventbus.EventBus,
	cache *masterCache,
) *MMVService {
	return &MMVService{repo: repo, allocator: allocator, publisher: publisher, cache: cache}
}

func (s *MMVService) GetPaginated(ctx context.Context, params *mmv.FindParams) ([]mmv.MMV, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *MMVService) GetByCode(ctx context.Context, code mmv.Code) (mmv.MMV, error) {
	if cached, ok := s.cache.Get(insurer.KindMMV, string(code)); ok {
		return cached.(mmv.MMV), nil
	}
	entity, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return mmv.MMV{}, err
	}
	s.cache.Set(insurer.KindMMV, string(code), entity)
	return entity, nil
}

func (s *MMVService) GetByHierarchy(ctx context.Context, productID int, make, model, variant string) (mmv.MMV, error) {
	return s.repo.GetByHierarchy(ctx, productID, make, model, variant)
}

// PreviewCode derives the composite code a triple would receive
// without creating anything. Used by the console to show the id ahead
// of the save.
func (s *MMVService) PreviewCode(ctx context.Context, productID int, make, model, variant string) (mmv.Code, error) {
	return s.allocator.Allocate(ctx, productID, make, model, variant)
}

// Create allocates the composite code and inserts the row in one
// transaction, so two concurrent saves of the same triple cannot both
// win.
func (s *MMVService) Create(ctx context.Context, dto *mmv.CreateDTO) (mmv.MMV, error) {
	if dto == nil {
		return mmv.MMV{}, errors.New("missing dto")
	}
	entity := dto.ToEntity()

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (mmv.MMV, error) {
		_, err := s.repo.GetByHierarchy(txCtx, entity.ProductID(), entity.Make(), entity.Model(), entity.Variant())
		if err == nil {
			return mmv.MMV{}, mmv.ErrHierarchyTaken
		}
		if !errors.Is(err, mmv.ErrNotFound) {
			return mmv.MMV{}, err
		}

		code, err := s.allocator.Allocate(txCtx, entity.ProductID(), entity.Make(), entity.Model(), entity.Variant())
		if err != nil {
			return mmv.MMV{}, err
		}
		return s.repo.Create(txCtx, entity.WithCode(code))
	})
	if err != nil {
		return mmv.MMV{}, err
	}
	s.publisher.Publish(MMVCreatedEvent{Code: created.Code()})
	return created, nil
}

func (s *MMVService) Update(ctx context.Context, code mmv.Code, dto *mmv.UpdateDTO) (mmv.MMV, error) {
	if dto == nil {
		return mmv.MMV{}, errors.New("missing dto")
	}
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (mmv.MMV, error) {
		existing, err := s.repo.GetByCode(txCtx, code)
		if err != nil {
			return mmv.MMV{}, err
		}
		entity := dto.Apply(existing)
		if err := s.repo.Update(txCtx, entity); err != nil {
			return mmv.MMV{}, err
		}
		return entity, nil
	})
	if err != nil {
		return mmv.MMV{}, err
	}
	s.publisher.Publish(MMVUpdatedEvent{Code: code})
	return updated, nil
}

func (s *MMVService) Makes(ctx context.Context, productID int) ([]string, error) {
	return s.repo.Makes(ctx, productID)
}

func (s *MMVService) Models(ctx context.Context, productID int, make string) ([]string, error) {
	return s.repo.Models(ctx, productID, make)
}

func (s *MMVService) Variants(ctx context.Context, productID int, make, model string) ([]string, error) {
	return s.repo.Variants(ctx, productID, make, model)
}
