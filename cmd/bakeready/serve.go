package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/api"
	"github.com/avinashchandan12/bake-ready-core/internal/bot"
	"github.com/avinashchandan12/bake-ready-core/internal/config"
	"github.com/avinashchandan12/bake-ready-core/internal/dialog"
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
	"github.com/avinashchandan12/bake-ready-core/internal/domain/users"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/vendors"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/cache"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	httpx "github.com/avinashchandan12/bake-ready-core/internal/infra/http"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/payments"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, stock alerts and the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := boot()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")
}

func serve(parent context.Context, cfg config.Config) error {
	log := newLogger(cfg)

	hourlyRate, err := decimal.NewFromString(cfg.Production.HourlyRate)
	if err != nil {
		return fmt.Errorf("production.hourly_rate: %w", err)
	}

	if !skipMigrations {
		if err := db.Migrate(cfg.Postgres.DSN, "up"); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()
	log.Info("db connected")

	var dashCache cache.Cache = cache.Nop{}
	if cfg.RedisEnabled() {
		rc, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("redis unavailable, dashboard is not cached", "addr", cfg.Redis.Addr, "err", err)
		} else {
			defer func() { _ = rc.Close() }()
			dashCache = rc
			log.Info("redis connected", "addr", cfg.Redis.Addr)
		}
	}

	var (
		productsRepo  = catalog.NewRepo(pool)
		materialsRepo = materials.NewRepo(pool)
		stockRepo     = inventory.NewRepo(pool)
		recipesRepo   = recipes.NewRepo(pool)
		logsRepo      = productionlogs.NewRepo(pool)
		lossesRepo    = losses.NewRepo(pool)
		vendorsRepo   = vendors.NewRepo(pool)
		clientsRepo   = clients.NewRepo(pool)
		ordersRepo    = orders.NewRepo(pool)
		grnRepo       = grn.NewRepo(pool)
		transportRepo = transport.NewRepo(pool)
		store         = service.NewPgStore(pool)
	)

	dashboard := service.NewDashboard(log, productsRepo, materialsRepo, logsRepo, dashCache, cfg.Redis.TTL)
	watcher := service.NewStockWatcher(log, materialsRepo, dashboard, nil, 0)
	production := service.NewProduction(log, store, recipesRepo, watcher, hourlyRate)
	reports := service.NewReports(log, materialsRepo, store, watcher)
	payLinks := payments.NewService(cfg.HTTP.BaseURL)

	if cfg.TelegramEnabled() {
		b, err := newBot(log, cfg, bot.Deps{
			Operators:  users.NewRepo(pool),
			States:     dialog.NewRepo(pool),
			Recipes:    recipesRepo,
			Production: production,
			Materials:  materialsRepo,
			Stocktake:  reports,
		})
		if err != nil {
			return err
		}
		watcher.SetNotifier(b)
		go func() {
			if err := b.Run(ctx, cfg.Telegram.Timeout); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("bot stopped", "err", err)
			}
		}()
	} else {
		log.Info("telegram token not set, bot and alerts disabled")
	}
	go watcher.Run(ctx)

	apiRouter := api.NewRouter(log, api.Deps{
		Products:       productsRepo,
		Materials:      materialsRepo,
		Movements:      stockRepo,
		Recipes:        recipesRepo,
		Production:     production,
		ProductionLogs: logsRepo,
		LossService:    service.NewLosses(log, store, watcher),
		Losses:         lossesRepo,
		Vendors:        vendorsRepo,
		Clients:        clientsRepo,
		Orders:         ordersRepo,
		Receiving:      service.NewReceiving(log, store, watcher),
		GRNs:           grnRepo,
		Transport:      transportRepo,
		Dashboard:      dashboard,
		Reports:        reports,
		Payments:       payLinks,
		Events:         watcher,
	})

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, httpx.Routes{
		API:      apiRouter,
		Payments: payments.NewHandler(log, ordersRepo),
	})
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
	return nil
}

func newBot(log *slog.Logger, cfg config.Config, d bot.Deps) (*bot.Bot, error) {
	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Info("telegram bot authorized", "username", tg.Self.UserName)

	return bot.New(tg, log.With("component", "bot"), d, cfg.Telegram.AdminChatID, cfg.App.Currency), nil
}
