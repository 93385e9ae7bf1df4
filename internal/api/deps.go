package api

import (
	"context"
	"io"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/catalog"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/clients"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/losses"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/orders"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/productionlogs"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/recipes"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/transport"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/vendors"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Products interface {
	CreateProduct(ctx context.Context, in catalog.ProductInput) (*catalog.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in catalog.ProductInput) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)
	ListProducts(ctx context.Context, category string) ([]catalog.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type Materials interface {
	Create(ctx context.Context, in materials.Input) (*materials.RawMaterial, error)
	GetByID(ctx context.Context, id uuid.UUID) (*materials.RawMaterial, error)
	Update(ctx context.Context, id uuid.UUID, in materials.Input) (*materials.RawMaterial, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]materials.RawMaterial, error)
	ListLowStock(ctx context.Context) ([]materials.RawMaterial, error)
	SearchByName(ctx context.Context, q string) ([]materials.RawMaterial, error)
}

type Movements interface {
	ListMovements(ctx context.Context, materialID uuid.UUID, limit int) ([]inventory.Movement, error)
}

type Recipes interface {
	Create(ctx context.Context, in recipes.Input) (*recipes.Recipe, error)
	Get(ctx context.Context, id uuid.UUID) (*recipes.Recipe, error)
	Update(ctx context.Context, id uuid.UUID, in recipes.Input) (*recipes.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]recipes.Recipe, error)
}

type ProductionService interface {
	Estimate(ctx context.Context, recipeID uuid.UUID) (*service.Estimate, error)
	Log(ctx context.Context, in service.LogInput) (*service.LogResult, error)
}

type ProductionLogs interface {
	Get(ctx context.Context, id uuid.UUID) (*productionlogs.Log, error)
	List(ctx context.Context, f productionlogs.Filter) ([]productionlogs.Log, error)
}

type LossService interface {
	Record(ctx context.Context, in losses.Input) (*losses.Loss, error)
}

type Losses interface {
	List(ctx context.Context, from, to time.Time) ([]losses.Loss, error)
	TotalCost(ctx context.Context, from time.Time) (decimal.Decimal, error)
}

type Vendors interface {
	Create(ctx context.Context, in vendors.Input) (*vendors.Vendor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*vendors.Vendor, error)
	Update(ctx context.Context, id uuid.UUID, in vendors.Input) (*vendors.Vendor, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]vendors.Vendor, error)
	Stats(ctx context.Context, id uuid.UUID) (vendors.Stats, error)
}

type Clients interface {
	Create(ctx context.Context, in clients.Input) (*clients.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*clients.Client, error)
	Update(ctx context.Context, id uuid.UUID, in clients.Input) (*clients.Client, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]clients.Client, error)
	Stats(ctx context.Context, id uuid.UUID) (clients.Stats, error)
}

type Orders interface {
	Create(ctx context.Context, in orders.Input) (*orders.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*orders.Order, error)
	Update(ctx context.Context, id uuid.UUID, in orders.Input) (*orders.Order, error)
	SetStatus(ctx context.Context, id uuid.UUID, s orders.Status) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, clientID uuid.UUID, status orders.Status) ([]orders.Order, error)
	CreateInvoice(ctx context.Context, orderID uuid.UUID) (*orders.Invoice, error)
	InvoiceForOrder(ctx context.Context, orderID uuid.UUID) (*orders.Invoice, error)
}

type ReceivingService interface {
	Create(ctx context.Context, in grn.Input) (*grn.GRN, []grn.Discrepancy, error)
	MarkReceived(ctx context.Context, id uuid.UUID) (*grn.GRN, error)
}

type GRNs interface {
	PeekNumber(ctx context.Context, date time.Time) (string, error)
	Get(ctx context.Context, id uuid.UUID) (*grn.GRN, error)
	List(ctx context.Context, vendorID uuid.UUID) ([]grn.GRN, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListDiscrepancies(ctx context.Context, f grn.DiscrepancyFilter) ([]grn.Discrepancy, error)
}

type Transport interface {
	Create(ctx context.Context, in transport.Input) (*transport.Log, error)
	Get(ctx context.Context, id uuid.UUID) (*transport.Log, error)
	List(ctx context.Context) ([]transport.Log, error)
	UpdateStopStatus(ctx context.Context, logID, clientID uuid.UUID, s transport.DeliveryStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*service.DashboardStats, error)
}

type ReportService interface {
	WriteStockCSV(ctx context.Context, w io.Writer) error
	WriteStockXLSX(ctx context.Context, w io.Writer) error
	ImportStocktake(ctx context.Context, r io.Reader) (*service.ImportResult, error)
	Adjust(ctx context.Context, materialID uuid.UUID, counted decimal.Decimal, note string) (decimal.Decimal, error)
}

type PaymentLinker interface {
	PaymentURL(invoiceID uuid.UUID) string
}

// Deps wires handlers to their stores and services. Nil members leave the
// matching routes unmounted.
type Deps struct {
	Products       Products
	Materials      Materials
	Movements      Movements
	Recipes        Recipes
	Production     ProductionService
	ProductionLogs ProductionLogs
	LossService    LossService
	Losses         Losses
	Vendors        Vendors
	Clients        Clients
	Orders         Orders
	Receiving      ReceivingService
	GRNs           GRNs
	Transport      Transport
	Dashboard      DashboardService
	Reports        ReportService
	Payments       PaymentLinker
	Events         service.StockEvents
}
