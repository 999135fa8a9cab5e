package postgres

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"net/url"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/config"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"

	"github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	_defaultMaxPoolSize    = 20
	_defaultConnAttempts   = 5
	_defaultBaseRetryDelay = 100 * time.Millisecond
	_defaultMaxRetryDelay  = 5 * time.Second
	_pingTimeout           = 5 * time.Second

	_backoffMultiplier = 2
)

type Postgres struct {
	Builder squirrel.StatementBuilderType
	Pool    *pgxpool.Pool

	dsn            string
	connAttempts   int
	baseRetryDelay time.Duration
	maxRetryDelay  time.Duration
	maxPoolSize    int32
}

// DSN builds the libpq-style URL for cfg; scheme lets golang-migrate reuse it.
func DSN(scheme string, cfg *config.Postgres) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

func NewPostgres(cfg *config.Postgres, log logger.Logger, opts ...Option) (*Postgres, error) {
	const op = "storage.postgres.NewPostgres"

	pg := &Postgres{
		dsn:            DSN("postgres", cfg),
		connAttempts:   _defaultConnAttempts,
		baseRetryDelay: _defaultBaseRetryDelay,
		maxRetryDelay:  _defaultMaxRetryDelay,
		maxPoolSize:    _defaultMaxPoolSize,
	}

	for _, opt := range opts {
		opt(pg)
	}
	if err := pg.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	pg.Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	poolConfig, err := pgxpool.ParseConfig(pg.dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: parse pool config: %w", op, err)
	}
	poolConfig.MaxConns = pg.maxPoolSize
	poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	currentBackoff := pg.baseRetryDelay
	for attempt := 1; attempt <= pg.connAttempts; attempt++ {
		pg.Pool, err = connect(poolConfig)
		if err == nil {
			log.Infow("PostgreSQL connection established", "attempt", attempt, "pool_max", pg.maxPoolSize)
			return pg, nil
		}

		jitter := time.Duration(rand.Int64N(int64(currentBackoff * _backoffMultiplier)))
		if jitter > pg.maxRetryDelay {
			jitter = pg.maxRetryDelay
		}

		log.Warnw("PostgreSQL connection attempt failed",
			"operation", op,
			"attempt", attempt,
			"retry_after", jitter.String(),
			"error", err,
		)

		time.Sleep(jitter)

		currentBackoff = min(currentBackoff*_backoffMultiplier, pg.maxRetryDelay)
	}

	return nil, fmt.Errorf("%s: create new pool: %w", op, err)
}

// FromPool wraps an already opened pool, mainly for integration tests.
func FromPool(pool *pgxpool.Pool) *Postgres {
	return &Postgres{
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		Pool:    pool,
	}
}

func connect(cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), _pingTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
