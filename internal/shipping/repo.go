package shipping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const _queryTimeout = 5 * time.Second

type PGRateRepo struct {
	db      postgres.QueryExecuter
	builder squirrel.StatementBuilderType
}

var _ RateAdmin = (*PGRateRepo)(nil)

func NewPGRateRepo(pg *postgres.Postgres) *PGRateRepo {
	return &PGRateRepo{db: pg.Pool, builder: pg.Builder}
}

func (r *PGRateRepo) GetRate(ctx context.Context, zone Zone, modality Modality) (Rate, error) {
	const op = "shipping.PGRateRepo.GetRate"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	query, args, err := r.builder.
		Select("zone", "modality", "cost::text", "estimated_days").
		From("shipping_rates").
		Where(squirrel.Eq{"zone": string(zone), "modality": string(modality)}).
		ToSql()
	if err != nil {
		return Rate{}, fmt.Errorf("%s: build query: %w", op, err)
	}

	rate, err := scanRate(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Rate{}, fmt.Errorf("%s: %s/%s: %w", op, zone, modality, apperr.ErrRateNotFound)
	}
	if err != nil {
		return Rate{}, apperr.Persistence(op, err)
	}
	return rate, nil
}

func (r *PGRateRepo) List(ctx context.Context) ([]Rate, error) {
	const op = "shipping.PGRateRepo.List"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	query, args, err := r.builder.
		Select("zone", "modality", "cost::text", "estimated_days").
		From("shipping_rates").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer rows.Close()

	var out []Rate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, apperr.Persistence(op, err)
		}
		out = append(out, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Persistence(op, err)
	}

	SortRates(out)
	return out, nil
}

func (r *PGRateRepo) Upsert(ctx context.Context, rate Rate) error {
	const op = "shipping.PGRateRepo.Upsert"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	query, args, err := r.builder.
		Insert("shipping_rates").
		Columns("zone", "modality", "cost", "estimated_days", "updated_at").
		Values(string(rate.Zone), string(rate.Modality), rate.Cost.String(), rate.EstimatedDays, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (zone, modality) DO UPDATE SET cost = EXCLUDED.cost, " +
			"estimated_days = EXCLUDED.estimated_days, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		return apperr.Persistence(op, err)
	}
	return nil
}

func scanRate(row pgx.Row) (Rate, error) {
	var (
		rate Rate
		zone string
		mod  string
		cost string
	)
	if err := row.Scan(&zone, &mod, &cost, &rate.EstimatedDays); err != nil {
		return Rate{}, err
	}
	amount, err := money.Parse(cost)
	if err != nil {
		return Rate{}, fmt.Errorf("parse cost %q: %w", cost, err)
	}
	rate.Zone = Zone(zone)
	rate.Modality = Modality(mod)
	rate.Cost = amount
	return rate, nil
}
