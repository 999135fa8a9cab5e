// Package app wires the shared runtime of both services: config, logging,
// tracing, Postgres, metrics, the optional Redis cache and Kafka publisher,
// and the HTTP, metrics and gRPC health servers.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/MikeMC777/ordenes-skincare/internal/cache"
	"github.com/MikeMC777/ordenes-skincare/internal/config"
	"github.com/MikeMC777/ordenes-skincare/internal/events"
	"github.com/MikeMC777/ordenes-skincare/internal/health"
	"github.com/MikeMC777/ordenes-skincare/internal/httpx"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/metric"
	"github.com/MikeMC777/ordenes-skincare/internal/shipping"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres/transaction"
	"github.com/MikeMC777/ordenes-skincare/internal/telemetry"
	"github.com/MikeMC777/ordenes-skincare/migrations"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
)

// Ports are the per-service defaults used when the matching env var is unset,
// so both services can run side by side with one .env file.
type Ports struct {
	HTTP    string
	GRPC    string
	Metrics string
}

type App struct {
	Service string
	Cfg     *config.Config
	Log     *logger.ZapLogger
	PG      *postgres.Postgres
	Tx      transaction.Manager
	Metrics metric.Factory
	// Cache is nil when REDIS_ADDR is empty.
	Cache  *cache.Redis
	Events events.Publisher

	shutdownTracing func(context.Context) error
}

func New(service string, ports Ports) (*App, error) {
	const op = "app.New"

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	applyPorts(cfg, ports)
	cfg.App.Name = service

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var processors []sdktrace.SpanProcessor
	if cfg.Tracing.Endpoint != "" {
		bsp, err := telemetry.NewOTLPProcessor(context.Background(), cfg.Tracing.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		processors = append(processors, bsp)
		log.Infow("exporting traces", "endpoint", cfg.Tracing.Endpoint)
	}

	a := &App{
		Service:         service,
		Cfg:             cfg,
		Log:             log,
		Metrics:         metric.NewFactory(),
		shutdownTracing: telemetry.InitTracing(service, cfg.App.Version, processors...),
	}

	if cfg.Postgres.AutoMigrate {
		if err = migrations.Up(postgres.DSN("pgx5", &cfg.Postgres)); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Infow("database migrations applied")
	}

	a.PG, err = postgres.NewPostgres(&cfg.Postgres, log,
		postgres.MaxPoolSize(cfg.Postgres.PoolMax),
		postgres.MaxConnAttempts(cfg.Postgres.ConnAttempts),
		postgres.BaseRetryDelay(cfg.Postgres.BaseRetryDelay),
		postgres.MaxRetryDelay(cfg.Postgres.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.Tx, err = transaction.NewManager(a.PG, log, a.Metrics.Transaction())
	if err != nil {
		a.PG.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.Redis.Addr != "" {
		a.Cache, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warnw("redis unavailable, shipping rates served from postgres", "error", err)
			a.Cache = nil
		}
	}

	a.Events = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		a.Events = events.NewKafkaPublisher(&cfg.Kafka, log)
	} else {
		log.Infow("KAFKA_BROKERS empty, order events are not published")
	}

	log.Infow("service initialized", "service", service, "env", cfg.Env, "version", cfg.App.Version)
	return a, nil
}

func applyPorts(cfg *config.Config, p Ports) {
	if _, ok := os.LookupEnv("HTTP_PORT"); !ok && p.HTTP != "" {
		cfg.HTTP.Port = p.HTTP
	}
	if _, ok := os.LookupEnv("GRPC_PORT"); !ok && p.GRPC != "" {
		cfg.GRPC.Port = p.GRPC
	}
	if _, ok := os.LookupEnv("METRICS_PORT"); !ok && p.Metrics != "" {
		cfg.Metrics.Port = p.Metrics
	}
}

// Rates returns the Postgres rate table, fronted by Redis when configured.
func (a *App) Rates() shipping.RateAdmin {
	var rates shipping.RateAdmin = shipping.NewPGRateRepo(a.PG)
	if a.Cache != nil {
		rates = shipping.NewCachedRates(rates, a.Cache, a.Cfg.Redis.RateTTL, a.Log)
	}
	return rates
}

// Engine builds the gin router with the shared middleware chain, /healthz
// and /swagger serving the named swag instance.
func (a *App) Engine(docs string) *gin.Engine {
	if a.Cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(a.Service))
	r.Use(httpx.RequestID(a.Log))
	r.Use(httpx.Logger(a.Log, a.Metrics.HTTP()))
	r.Use(httpx.Timeout(a.Cfg.HTTP.RequestTimeout))

	r.GET("/healthz", HealthzHandler(a.PG))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs)))
	return r
}

// HealthzHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ok"
// @Failure      503  {string}  string  "database unavailable"
// @Router       /healthz [get]
func HealthzHandler(p health.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Ping(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}

// Run serves the HTTP API, the metrics endpoint and the gRPC health service
// until ctx is cancelled or one of them fails.
func (a *App) Run(ctx context.Context, engine http.Handler) error {
	eg, ctx := errgroup.WithContext(ctx)

	api := httpx.NewServer(a.Service, engine, &a.Cfg.HTTP, a.Log)
	metrics := httpx.NewMetricsServer(a.Metrics.Handler(), &a.Cfg.Metrics, a.Log)
	grpcHealth := health.NewServer(a.Service, &a.Cfg.GRPC, a.PG, a.Log)

	eg.Go(func() error { return api.Run(ctx) })
	eg.Go(func() error { return metrics.Run(ctx) })
	eg.Go(func() error { return grpcHealth.Run(ctx) })

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}
	return nil
}

// Close releases resources in reverse order of creation.
func (a *App) Close() {
	if err := a.Events.Close(); err != nil {
		a.Log.Warnw("closing event publisher", "error", err)
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Log.Warnw("closing redis", "error", err)
		}
	}
	a.PG.Close()
	if err := a.shutdownTracing(context.Background()); err != nil {
		a.Log.Warnw("shutting down tracing", "error", err)
	}
	a.Log.Infow("service stopped", "service", a.Service)
	_ = a.Log.Sync()
}
