// Package product provides the catalog repository: admin edits plus the
// row-locked batch reads the order engine and the reconciler run inside
// their transactions.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = fmt.Errorf("product not found: %w", apperr.ErrDataNotFound)
	// ErrReferenced is returned when deleting a product that past orders point to.
	ErrReferenced = apperr.NewValidation("id", "product is referenced by orders; mark it unavailable instead")
)

const _queryTimeout = 5 * time.Second

type Query struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Update(ctx context.Context, id string, patch Patch) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Lock selects the row lock taken by GetByIDs.
type Lock int

const (
	NoLock Lock = iota
	ForShare
	ForUpdate
)

func (l Lock) suffix() string {
	switch l {
	case ForShare:
		return "FOR SHARE"
	case ForUpdate:
		return "FOR UPDATE"
	default:
		return ""
	}
}

type PGRepo struct {
	db      postgres.QueryExecuter
	builder squirrel.StatementBuilderType
}

var _ Repository = (*PGRepo)(nil)

func NewPGRepo(pg *postgres.Postgres) *PGRepo {
	return &PGRepo{db: pg.Pool, builder: pg.Builder}
}

var productColumns = []string{
	"id", "name", "description", "price::text", "available", "created_at", "updated_at",
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	const op = "product.PGRepo.Create"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	query, args, err := r.builder.
		Insert("products").
		Columns("id", "name", "description", "price", "available", "created_at", "updated_at").
		Values(p.ID, p.Name, p.Description, p.Price.String(), p.Available, squirrel.Expr("NOW()"), squirrel.Expr("NOW()")).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	if err = r.db.QueryRow(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return apperr.Persistence(op, err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	const op = "product.PGRepo.GetByID"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	query, args, err := r.builder.
		Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return p, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	const op = "product.PGRepo.List"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	sb := r.builder.
		Select(productColumns...).
		From("products").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if search := strings.TrimSpace(q.Q); search != "" {
		like := "%" + search + "%"
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"description": like},
		})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer rows.Close()

	out := make([]Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.Persistence(op, err)
		}
		out = append(out, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return out, nil
}

// Update applies patch and returns the stored row. Price edits never touch
// order_items: orders keep the unit price they were created with.
func (r *PGRepo) Update(ctx context.Context, id string, patch Patch) (*Product, error) {
	const op = "product.PGRepo.Update"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	ub := r.builder.
		Update("products").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(productColumns, ", "))

	if patch.Name != nil {
		ub = ub.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		ub = ub.Set("description", *patch.Description)
	}
	if patch.Price != nil {
		ub = ub.Set("price", patch.Price.String())
	}
	if patch.Available != nil {
		ub = ub.Set("available", *patch.Available)
	}

	query, args, err := ub.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return p, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	const op = "product.PGRepo.Delete"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	query, args, err := r.builder.Delete("products").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: build query: %w", op, err)
	}

	cmd, err := r.db.Exec(ctx, query, args...)
	if postgres.IsCode(err, postgres.CodeForeignKeyViolation) {
		return false, ErrReferenced
	}
	if err != nil {
		return false, apperr.Persistence(op, err)
	}
	return cmd.RowsAffected() > 0, nil
}

// GetByIDs reads every id in one round trip on q, taking the requested row
// lock. Missing ids are simply absent from the result.
func (r *PGRepo) GetByIDs(ctx context.Context, q postgres.QueryExecuter, ids []string, lock Lock) (map[string]Product, error) {
	const op = "product.PGRepo.GetByIDs"

	out := make(map[string]Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sb := r.builder.
		Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id")
	if s := lock.suffix(); s != "" {
		sb = sb.Suffix(s)
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out[p.ID] = *p
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// LockForUpdate takes the row lock on one product, or returns ErrNotFound.
func (r *PGRepo) LockForUpdate(ctx context.Context, q postgres.QueryExecuter, id string) error {
	found, err := r.GetByIDs(ctx, q, []string{id}, ForUpdate)
	if err != nil {
		return err
	}
	if _, ok := found[id]; !ok {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p     Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Available, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	amount, err := money.Parse(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	p.Price = amount
	return &p, nil
}
