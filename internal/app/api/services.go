package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	productsmemory "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/memory"
	productsobs "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/observability"
	productspostgres "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/Apurer/cell-tech-api/internal/domains/products/application"
	productsports "github.com/Apurer/cell-tech-api/internal/domains/products/ports"
	salesredis "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/cache/redis"
	saleskafka "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/events/kafka"
	salesmemory "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/memory"
	salesobs "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/observability"
	salespostgres "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/persistence/postgres"
	salesapp "github.com/Apurer/cell-tech-api/internal/domains/sales/application"
	salesports "github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	usersmemory "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/memory"
	usersobs "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/observability"
	userspostgres "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/Apurer/cell-tech-api/internal/domains/users/adapters/security"
	usersapp "github.com/Apurer/cell-tech-api/internal/domains/users/application"
	usersports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	"github.com/Apurer/cell-tech-api/internal/platform/database"
	"github.com/Apurer/cell-tech-api/internal/platform/metrics"
	"github.com/Apurer/cell-tech-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/cell-tech-api/internal/platform/observability"
	platformredis "github.com/Apurer/cell-tech-api/internal/platform/redis"
)

const tokenIssuer = "cell-tech-api"

// Services is the wired application graph shared by the API, the worker and the CLI.
type Services struct {
	Users    usersports.Service
	Tokens   usersports.TokenVerifier
	Products productsports.Service
	Sales    salesports.Service
	Metrics  *metrics.Metrics
	DB       *gorm.DB

	closers []func() error
}

// BuildServices opens the configured store and wraps every service with its observability decorator.
// Redis and Kafka are optional; when unreachable the statistics cache and events are disabled.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, error) {
	logger := instruments.Logger
	db, err := database.Open(ctx, cfg.Database())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Services{DB: db, Metrics: metrics.New()}
	s.closers = append(s.closers, func() error { return database.Close(db) })
	if db != nil && cfg.AutoMigrate {
		if err := migrations.Run(db); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
	}

	hasher, err := security.NewBcryptHasher(cfg.BcryptSaltRounds)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	authority, err := security.NewJWTAuthority(cfg.JWTSecret, cfg.JWTAccessExpiresIn.Duration(), tokenIssuer)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Tokens = authority

	var (
		userRepo    usersports.Repository
		productRepo productsports.Repository
		saleRepo    salesports.Repository
	)
	if db == nil {
		logger.Warn("no database configured, using in-memory repositories")
		users := usersmemory.NewRepository()
		products := productsmemory.NewRepository()
		userRepo, productRepo = users, products
		saleRepo = salesmemory.NewRepository(products, users)
	} else {
		logger.Info("repositories configured with gorm", slog.String("dialect", db.Dialector.Name()))
		userRepo = userspostgres.NewRepository(db)
		productRepo = productspostgres.NewRepository(db)
		saleRepo = salespostgres.NewRepository(db)
	}

	s.Users = usersobs.New(
		usersapp.NewService(userRepo, hasher, authority),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	s.Products = productsobs.New(
		productsapp.NewService(productRepo),
		productsobs.WithLogger(logger),
		productsobs.WithTracer(instruments.Tracer("internal.products.application")),
		productsobs.WithMeter(instruments.Meter("internal.products.application")),
	)

	salesOpts := []salesapp.Option{salesapp.WithLogger(logger), salesapp.WithSaleMetrics(s.Metrics)}
	if cache := s.statisticsCache(ctx, cfg, logger); cache != nil {
		salesOpts = append(salesOpts, salesapp.WithStatisticsCache(cache))
	}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := saleskafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaSalesTopic)
		s.closers = append(s.closers, publisher.Close)
		salesOpts = append(salesOpts, salesapp.WithEventPublisher(publisher))
		logger.Info("sale events enabled", slog.String("topic", cfg.KafkaSalesTopic))
	}
	s.Sales = salesobs.New(
		salesapp.NewService(saleRepo, salesOpts...),
		salesobs.WithLogger(logger),
		salesobs.WithTracer(instruments.Tracer("internal.sales.application")),
		salesobs.WithMeter(instruments.Meter("internal.sales.application")),
		salesobs.WithFailureMetrics(s.Metrics),
	)
	return s, nil
}

func (s *Services) statisticsCache(ctx context.Context, cfg Config, logger *slog.Logger) salesports.StatisticsCache {
	if cfg.RedisAddr == "" {
		return nil
	}
	client, err := platformredis.Connect(ctx, platformredis.Settings{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		logger.Warn("redis unavailable, statistics are not cached", slog.String("error", err.Error()))
		return nil
	}
	s.closers = append(s.closers, client.Close)
	logger.Info("statistics cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.StatsCacheTTL))
	return salesredis.NewStatisticsCache(client, cfg.StatsCacheTTL)
}

// Close releases connections in reverse order of acquisition.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}
