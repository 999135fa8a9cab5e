package inventory

import (
	"context"
	"fmt"

	"github.com/MikeMC777/ordenes-skincare/internal/product"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"

	"github.com/Masterminds/squirrel"
)

// Store is the persistence the reconciler needs. Every method runs on the
// executer it is given so that one reconciliation shares one transaction.
type Store interface {
	LockProduct(ctx context.Context, q postgres.QueryExecuter, productID string) error
	ProductExists(ctx context.Context, q postgres.QueryExecuter, productID string) error
	ListSizes(ctx context.Context, q postgres.QueryExecuter, productID string) ([]Size, error)
	InsertSizes(ctx context.Context, q postgres.QueryExecuter, sizes []Size) error
	UpdateSize(ctx context.Context, q postgres.QueryExecuter, s Size) error
	DeleteSizes(ctx context.Context, q postgres.QueryExecuter, productID string, values []string) error
}

type PGStore struct {
	products *product.PGRepo
	builder  squirrel.StatementBuilderType
}

var _ Store = (*PGStore)(nil)

func NewPGStore(pg *postgres.Postgres, products *product.PGRepo) *PGStore {
	return &PGStore{products: products, builder: pg.Builder}
}

func (s *PGStore) LockProduct(ctx context.Context, q postgres.QueryExecuter, productID string) error {
	return s.products.LockForUpdate(ctx, q, productID)
}

func (s *PGStore) ProductExists(ctx context.Context, q postgres.QueryExecuter, productID string) error {
	found, err := s.products.GetByIDs(ctx, q, []string{productID}, product.NoLock)
	if err != nil {
		return err
	}
	if _, ok := found[productID]; !ok {
		return product.ErrNotFound
	}
	return nil
}

func (s *PGStore) ListSizes(ctx context.Context, q postgres.QueryExecuter, productID string) ([]Size, error) {
	const op = "inventory.PGStore.ListSizes"

	query, args, err := s.builder.
		Select("product_id", "value", "inventory").
		From("product_sizes").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("value").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	out := []Size{}
	for rows.Next() {
		var sz Size
		if err = rows.Scan(&sz.ProductID, &sz.Value, &sz.Inventory); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, sz)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

func (s *PGStore) InsertSizes(ctx context.Context, q postgres.QueryExecuter, sizes []Size) error {
	const op = "inventory.PGStore.InsertSizes"

	if len(sizes) == 0 {
		return nil
	}

	ib := s.builder.
		Insert("product_sizes").
		Columns("product_id", "value", "inventory", "updated_at")
	for _, sz := range sizes {
		ib = ib.Values(sz.ProductID, sz.Value, sz.Inventory, squirrel.Expr("NOW()"))
	}

	query, args, err := ib.ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}
	if _, err = q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	return nil
}

func (s *PGStore) UpdateSize(ctx context.Context, q postgres.QueryExecuter, sz Size) error {
	const op = "inventory.PGStore.UpdateSize"

	query, args, err := s.builder.
		Update("product_sizes").
		Set("inventory", sz.Inventory).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"product_id": sz.ProductID, "value": sz.Value}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("%s: size %q: expected 1 row, got %d", op, sz.Value, tag.RowsAffected())
	}
	return nil
}

func (s *PGStore) DeleteSizes(ctx context.Context, q postgres.QueryExecuter, productID string, values []string) error {
	const op = "inventory.PGStore.DeleteSizes"

	if len(values) == 0 {
		return nil
	}

	query, args, err := s.builder.
		Delete("product_sizes").
		Where(squirrel.Eq{"product_id": productID, "value": values}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}
	if _, err = q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	return nil
}
