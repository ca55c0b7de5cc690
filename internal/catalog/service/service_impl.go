package service

import (
	"context"
	"sync"
	"time"

	"github.com/smallbiznis/vitrine/internal/catalog/cache"
	"github.com/smallbiznis/vitrine/internal/catalog/domain"
	"github.com/smallbiznis/vitrine/internal/catalog/search"
	"github.com/smallbiznis/vitrine/internal/observability/logger"
	"github.com/smallbiznis/vitrine/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store   domain.Store
	Cache   *cache.Snapshot
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	store   domain.Store
	cache   *cache.Snapshot
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	// writeMu serializes a mutation together with the reload that follows it.
	writeMu sync.Mutex
}

func New(p Params) domain.Service {
	return newService(p)
}

func newService(p Params) *Service {
	snapshot := p.Cache
	if snapshot == nil {
		snapshot = cache.New()
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:   p.Store,
		cache:   snapshot,
		log:     log.Named("catalog.service"),
		metrics: p.Metrics,
		now:     time.Now,
	}
}

func (s *Service) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.reload(ctx, domain.OpLoad)
}

func (s *Service) Create(ctx context.Context, product domain.Product) error {
	return s.mutate(ctx, domain.OpCreate, product.ID, func(ctx context.Context) error {
		return s.store.Create(ctx, product)
	})
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	return s.mutate(ctx, domain.OpRemove, id, func(ctx context.Context) error {
		return s.store.Delete(ctx, id)
	})
}

func (s *Service) PatchStock(ctx context.Context, id int64, stock int64) error {
	return s.mutate(ctx, domain.OpStock, id, func(ctx context.Context) error {
		return s.store.PatchStock(ctx, id, stock)
	})
}

func (s *Service) Loaded() bool {
	return s.cache.Loaded()
}

func (s *Service) Products() []domain.Product {
	return s.cache.Products()
}

func (s *Service) Search(query string) []domain.Product {
	return search.Filter(s.cache.Products(), query)
}

// mutate runs call and, only when it succeeds, exactly one full reload.
// A reload failure is reported under the mutation's own category.
func (s *Service) mutate(ctx context.Context, op domain.Op, id int64, call func(context.Context) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	log := logger.WithContext(ctx, s.log)
	if err := call(ctx); err != nil {
		log.Error("catalog mutation failed",
			zap.String("op", string(op)),
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return domain.Failed(op, err)
	}

	log.Info("catalog mutation applied",
		zap.String("op", string(op)),
		zap.Int64("product_id", id),
	)
	return s.reload(ctx, op)
}

func (s *Service) reload(ctx context.Context, op domain.Op) error {
	log := logger.WithContext(ctx, s.log)
	products, err := s.store.List(ctx)
	if err != nil {
		s.metrics.ObserveReload(0, err)
		log.Error("catalog reload failed",
			zap.String("op", string(op)),
			zap.Error(err),
		)
		return domain.Failed(op, err)
	}

	s.cache.Replace(products, s.now())
	s.metrics.ObserveReload(len(products), nil)
	log.Debug("catalog reloaded",
		zap.String("op", string(op)),
		zap.Int("products", len(products)),
	)
	return nil
}
