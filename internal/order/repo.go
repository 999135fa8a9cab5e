package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	"github.com/MikeMC777/ordenes-skincare/internal/shipping"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = fmt.Errorf("order not found: %w", apperr.ErrDataNotFound)
	// ErrStatusChanged means the row no longer holds the status the caller read.
	ErrStatusChanged = fmt.Errorf("order status changed concurrently: %w", apperr.ErrInvalidTransition)
)

const _queryTimeout = 5 * time.Second

// Repository methods taking a QueryExecuter run on the caller's transaction.
type Repository interface {
	Create(ctx context.Context, q postgres.QueryExecuter, o *Order, items []Item) error
	GetByID(ctx context.Context, id string) (*Order, []Item, error)
	List(ctx context.Context, f ListFilter) ([]Order, error)
	LockStatus(ctx context.Context, q postgres.QueryExecuter, id string) (Status, error)
	UpdateStatus(ctx context.Context, q postgres.QueryExecuter, id string, from, to Status) (*Order, error)
	GetItems(ctx context.Context, q postgres.QueryExecuter, orderID string) ([]Item, error)
	SetHandoffLink(ctx context.Context, id, link string) error
}

type PGRepo struct {
	db      postgres.QueryExecuter
	builder squirrel.StatementBuilderType
}

var _ Repository = (*PGRepo)(nil)

func NewPGRepo(pg *postgres.Postgres) *PGRepo {
	return &PGRepo{db: pg.Pool, builder: pg.Builder}
}

var orderColumns = []string{
	"id", "full_name", "dni", "phone", "address", "department", "province",
	"zone", "modality", "subtotal::text", "shipping_cost::text", "estimated_days",
	"total_amount::text", "status", "COALESCE(handoff_link, '')", "created_at", "updated_at",
}

var itemColumns = []string{
	"id", "order_id", "product_id", "product_name", "quantity", "unit_price::text",
}

func (r *PGRepo) Create(ctx context.Context, q postgres.QueryExecuter, o *Order, items []Item) error {
	const op = "order.PGRepo.Create"

	query, args, err := r.builder.
		Insert("orders").
		Columns(
			"id", "full_name", "dni", "phone", "address", "department", "province",
			"zone", "modality", "subtotal", "shipping_cost", "estimated_days",
			"total_amount", "status", "created_at", "updated_at",
		).
		Values(
			o.ID, o.Customer.FullName, o.Customer.DNI, o.Customer.Phone, o.Customer.Address,
			o.Customer.Department, o.Customer.Province,
			string(o.Zone), string(o.Modality), o.Subtotal.String(), o.ShippingCost.String(), o.EstimatedDays,
			o.Total.String(), string(o.Status), squirrel.Expr("NOW()"), squirrel.Expr("NOW()"),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: build order insert: %w", op, err)
	}

	if err = q.QueryRow(ctx, query, args...).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		if postgres.IsCode(err, postgres.CodeNumericOutOfRange) {
			return fmt.Errorf("%s: %w", op, apperr.NewValidation("items", "order amounts are too large to store"))
		}
		return fmt.Errorf("%s: insert order: %w", op, err)
	}

	ib := r.builder.
		Insert("order_items").
		Columns("id", "order_id", "product_id", "product_name", "quantity", "unit_price")
	for _, it := range items {
		ib = ib.Values(it.ID, o.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice.String())
	}

	query, args, err = ib.ToSql()
	if err != nil {
		return fmt.Errorf("%s: build items insert: %w", op, err)
	}
	if _, err = q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: insert items: %w", op, err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Item, error) {
	const op = "order.PGRepo.GetByID"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	query, args, err := r.builder.
		Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	o, err := scanOrder(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, apperr.Persistence(op, err)
	}

	items, err := r.GetItems(ctx, r.db, id)
	if err != nil {
		return nil, nil, apperr.Persistence(op, err)
	}
	return o, items, nil
}

func (r *PGRepo) List(ctx context.Context, f ListFilter) ([]Order, error) {
	const op = "order.PGRepo.List"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	sb := r.builder.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if f.Status != "" {
		sb = sb.Where(squirrel.Eq{"status": string(f.Status)})
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

	out := make([]Order, 0, limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, apperr.Persistence(op, err)
		}
		out = append(out, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return out, nil
}

func (r *PGRepo) LockStatus(ctx context.Context, q postgres.QueryExecuter, id string) (Status, error) {
	const op = "order.PGRepo.LockStatus"

	query, args, err := r.builder.
		Select("status").
		From("orders").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%s: build query: %w", op, err)
	}

	var st string
	err = q.QueryRow(ctx, query, args...).Scan(&st)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return Status(st), nil
}

// UpdateStatus moves the order from -> to only if it still holds from. Money
// columns are not part of the statement.
func (r *PGRepo) UpdateStatus(ctx context.Context, q postgres.QueryExecuter, id string, from, to Status) (*Order, error) {
	const op = "order.PGRepo.UpdateStatus"

	query, args, err := r.builder.
		Update("orders").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	o, err := scanOrder(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (r *PGRepo) GetItems(ctx context.Context, q postgres.QueryExecuter, orderID string) ([]Item, error) {
	const op = "order.PGRepo.GetItems"

	query, args, err := r.builder.
		Select(itemColumns...).
		From("order_items").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy(`product_name COLLATE "C"`, "product_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err = rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &price); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if it.UnitPrice, err = money.Parse(price); err != nil {
			return nil, fmt.Errorf("%s: parse unit price %q: %w", op, price, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) SetHandoffLink(ctx context.Context, id, link string) error {
	const op = "order.PGRepo.SetHandoffLink"

	ctx, cancel := context.WithTimeout(ctx, _queryTimeout)
	defer cancel()

	query, args, err := r.builder.
		Update("orders").
		Set("handoff_link", link).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperr.Persistence(op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o                             Order
		zone, modality, status        string
		subtotal, shippingCost, total string
	)
	err := row.Scan(
		&o.ID, &o.Customer.FullName, &o.Customer.DNI, &o.Customer.Phone, &o.Customer.Address,
		&o.Customer.Department, &o.Customer.Province,
		&zone, &modality, &subtotal, &shippingCost, &o.EstimatedDays,
		&total, &status, &o.HandoffLink, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Zone = shipping.Zone(zone)
	o.Modality = shipping.Modality(modality)
	o.Status = Status(status)

	if o.Subtotal, err = money.Parse(subtotal); err != nil {
		return nil, fmt.Errorf("parse subtotal %q: %w", subtotal, err)
	}
	if o.ShippingCost, err = money.Parse(shippingCost); err != nil {
		return nil, fmt.Errorf("parse shipping_cost %q: %w", shippingCost, err)
	}
	if o.Total, err = money.Parse(total); err != nil {
		return nil, fmt.Errorf("parse total_amount %q: %w", total, err)
	}
	return &o, nil
}
