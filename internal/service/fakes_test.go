package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/losses"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/productionlogs"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/recipes"
	"github.com/avinashchandan12/bake-ready-core/internal/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type movement struct {
	id     uuid.UUID
	qty    decimal.Decimal
	reason inventory.Reason
}

// memDB is an in-memory stand-in for the tables the services touch. InTx
// snapshots it and restores the snapshot when fn fails.
type memDB struct {
	mu      sync.Mutex
	names   map[uuid.UUID]string
	stock   map[uuid.UUID]decimal.Decimal
	reorder map[uuid.UUID]decimal.Decimal
	recipes map[uuid.UUID]*recipes.Recipe
	logs    []*productionlogs.Log
	moves   []movement
	grns    map[uuid.UUID]*grn.GRN
	losses  []*losses.Loss
	seq     int64
}

func newMemDB() *memDB {
	return &memDB{
		names:   map[uuid.UUID]string{},
		stock:   map[uuid.UUID]decimal.Decimal{},
		reorder: map[uuid.UUID]decimal.Decimal{},
		recipes: map[uuid.UUID]*recipes.Recipe{},
		grns:    map[uuid.UUID]*grn.GRN{},
	}
}

func (m *memDB) addMaterial(name, stock, reorder string) uuid.UUID {
	id := uuid.New()
	m.names[id] = name
	m.stock[id] = dec(stock)
	m.reorder[id] = dec(reorder)
	return id
}

// addRecipe takes material id / per-unit quantity pairs.
func (m *memDB) addRecipe(product string, mins int, lines ...any) uuid.UUID {
	rc := &recipes.Recipe{ID: uuid.New(), ProductID: uuid.New(), ProductName: product, TimeRequiredMins: mins, YieldQuantity: 1}
	for i := 0; i < len(lines); i += 2 {
		id := lines[i].(uuid.UUID)
		rc.Ingredients = append(rc.Ingredients, recipes.Ingredient{
			MaterialID:   id,
			MaterialName: m.names[id],
			Unit:         "kg",
			Quantity:     dec(lines[i+1].(string)),
			Position:     i / 2,
		})
	}
	m.recipes[rc.ID] = rc
	return rc.ID
}

func (m *memDB) InTx(ctx context.Context, fn func(Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stock := make(map[uuid.UUID]decimal.Decimal, len(m.stock))
	for k, v := range m.stock {
		stock[k] = v
	}
	nLogs, nMoves, nLosses := len(m.logs), len(m.moves), len(m.losses)
	grns := make(map[uuid.UUID]grn.GRN, len(m.grns))
	for k, v := range m.grns {
		grns[k] = *v
	}

	err := fn(Tx{Recipes: m, Logs: memLogs{m}, Stock: memStock{m}, GRNs: memGRNs{m}, Losses: memLosses{m}})
	if err != nil {
		m.stock = stock
		m.logs, m.moves, m.losses = m.logs[:nLogs], m.moves[:nMoves], m.losses[:nLosses]
		m.grns = map[uuid.UUID]*grn.GRN{}
		for k, v := range grns {
			v := v
			m.grns[k] = &v
		}
	}
	return err
}

func (m *memDB) Snapshot(_ context.Context, id uuid.UUID) (*recipes.Recipe, []production.Ingredient, error) {
	rc, ok := m.recipes[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *rc
	cp.Ingredients = nil
	for _, in := range rc.Ingredients {
		in.Stock = m.stock[in.MaterialID]
		cp.Ingredients = append(cp.Ingredients, in)
	}
	return &cp, recipes.ToProduction(cp.Ingredients), nil
}

func (m *memDB) ListByIDs(_ context.Context, ids []uuid.UUID) ([]materials.RawMaterial, error) {
	var out []materials.RawMaterial
	for _, id := range ids {
		if _, ok := m.names[id]; !ok {
			continue
		}
		out = append(out, materials.RawMaterial{ID: id, Name: m.names[id], Unit: "kg", StockQuantity: m.stock[id], ReorderLevel: m.reorder[id]})
	}
	return out, nil
}

func (m *memDB) List(ctx context.Context) ([]materials.RawMaterial, error) {
	ids := make([]uuid.UUID, 0, len(m.names))
	for id := range m.names {
		ids = append(ids, id)
	}
	return m.ListByIDs(ctx, ids)
}

type memLogs struct{ m *memDB }

func (l memLogs) Create(_ context.Context, log *productionlogs.Log) error {
	log.ID = uuid.New()
	l.m.logs = append(l.m.logs, log)
	return nil
}

type memStock struct{ m *memDB }

func (s memStock) Deduct(_ context.Context, id uuid.UUID, qty decimal.Decimal, reason inventory.Reason, _ *uuid.UUID, _ string) error {
	cur, ok := s.m.stock[id]
	if !ok || cur.LessThan(qty) {
		return inventory.ErrStockChanged
	}
	s.m.stock[id] = cur.Sub(qty)
	s.m.moves = append(s.m.moves, movement{id: id, qty: qty.Neg(), reason: reason})
	return nil
}

func (s memStock) Add(_ context.Context, id uuid.UUID, qty decimal.Decimal, reason inventory.Reason, _ *uuid.UUID, _ string) error {
	s.m.stock[id] = s.m.stock[id].Add(qty)
	s.m.moves = append(s.m.moves, movement{id: id, qty: qty, reason: reason})
	return nil
}

func (s memStock) Set(_ context.Context, id uuid.UUID, counted decimal.Decimal, reason inventory.Reason, _ string) (decimal.Decimal, error) {
	cur, ok := s.m.stock[id]
	if !ok {
		return decimal.Zero, inventory.ErrUnknownMaterial
	}
	diff := counted.Sub(cur)
	if !diff.IsZero() {
		s.m.stock[id] = counted
		s.m.moves = append(s.m.moves, movement{id: id, qty: diff, reason: reason})
	}
	return diff, nil
}

type memGRNs struct{ m *memDB }

func (g memGRNs) Create(_ context.Context, in grn.Input) (*grn.GRN, []grn.Discrepancy, error) {
	g.m.seq++
	items, total := grn.PriceItems(in.Items)
	out := &grn.GRN{
		ID:          uuid.New(),
		Number:      grn.FormatNumber(in.Date, g.m.seq),
		VendorID:    in.VendorID,
		Date:        in.Date,
		TotalAmount: total,
		Status:      in.Status,
		Items:       items,
	}
	g.m.grns[out.ID] = out
	return out, grn.DetectDiscrepancies(items), nil
}

func (g memGRNs) MarkReceived(_ context.Context, id uuid.UUID) (*grn.GRN, error) {
	cur, ok := g.m.grns[id]
	if !ok {
		return nil, nil
	}
	if cur.Status == grn.StatusReceived {
		return cur, grn.ErrAlreadyReceived
	}
	cur.Status = grn.StatusReceived
	return cur, nil
}

type memLosses struct{ m *memDB }

func (l memLosses) Create(_ context.Context, in losses.Input) (*losses.Loss, error) {
	out := &losses.Loss{ID: uuid.New(), Kind: in.Kind, MaterialID: in.MaterialID, ProductID: in.ProductID, QuantityLost: in.QuantityLost, Reason: in.Reason}
	l.m.losses = append(l.m.losses, out)
	return out, nil
}

// recordingEvents captures what services report after commit.
type recordingEvents struct {
	mu      sync.Mutex
	changed [][]uuid.UUID
	found   [][]grn.Discrepancy
}

func (r *recordingEvents) StockChanged(_ context.Context, ids []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, ids)
}

func (r *recordingEvents) DiscrepanciesFound(_ context.Context, _ *grn.GRN, found []grn.Discrepancy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.found = append(r.found, found)
}
