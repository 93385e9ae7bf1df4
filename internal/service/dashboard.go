package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/cache"
)

const dashboardKey = "dashboard:stats"

type ProductCounter interface {
	CountProducts(ctx context.Context) (int64, error)
}

type MaterialStats interface {
	Counts(ctx context.Context) (total, low int64, err error)
	ListLowStock(ctx context.Context) ([]materials.RawMaterial, error)
}

type ProductionCounter interface {
	TodayTotal(ctx context.Context) (int64, error)
}

type DashboardStats struct {
	TotalProducts   int64                   `json:"total_products"`
	TotalMaterials  int64                   `json:"total_raw_materials"`
	LowStockCount   int64                   `json:"low_stock_count"`
	TodayProduction int64                   `json:"today_production"`
	LowStock        []materials.RawMaterial `json:"low_stock"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

type Dashboard struct {
	log        *slog.Logger
	products   ProductCounter
	materials  MaterialStats
	production ProductionCounter
	cache      cache.Cache
	ttl        time.Duration
}

func NewDashboard(log *slog.Logger, products ProductCounter, mats MaterialStats, prod ProductionCounter, c cache.Cache, ttl time.Duration) *Dashboard {
	if c == nil {
		c = cache.Nop{}
	}
	return &Dashboard{log: log, products: products, materials: mats, production: prod, cache: c, ttl: ttl}
}

func (s *Dashboard) Stats(ctx context.Context) (*DashboardStats, error) {
	var st DashboardStats
	if s.cache.Get(ctx, dashboardKey, &st) {
		return &st, nil
	}

	var err error
	if st.TotalProducts, err = s.products.CountProducts(ctx); err != nil {
		return nil, err
	}
	if st.TotalMaterials, st.LowStockCount, err = s.materials.Counts(ctx); err != nil {
		return nil, err
	}
	if st.TodayProduction, err = s.production.TodayTotal(ctx); err != nil {
		return nil, err
	}
	if st.LowStock, err = s.materials.ListLowStock(ctx); err != nil {
		return nil, err
	}
	if len(st.LowStock) > 5 {
		st.LowStock = st.LowStock[:5]
	}
	st.GeneratedAt = time.Now().UTC()

	if err := s.cache.Set(ctx, dashboardKey, st, s.ttl); err != nil {
		s.log.Warn("dashboard cache set failed", "err", err)
	}
	return &st, nil
}

func (s *Dashboard) Invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, dashboardKey); err != nil {
		s.log.Warn("dashboard cache invalidate failed", "err", err)
	}
}
