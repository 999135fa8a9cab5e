package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/metric"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres/transaction"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const _slowOperation = 200 * time.Millisecond

type Result struct {
	ProductID string `json:"product_id"`
	Sizes     []Size `json:"sizes"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Deleted   int    `json:"deleted"`
	Unchanged int    `json:"unchanged"`
}

type Reconciler struct {
	tm      transaction.Manager
	store   Store
	reader  postgres.QueryExecuter
	log     logger.Logger
	metrics metric.Inventory
}

// NewReconciler wires the reconciler. reader serves List outside any
// transaction; it is usually the pool.
func NewReconciler(
	tm transaction.Manager,
	store Store,
	reader postgres.QueryExecuter,
	log logger.Logger,
	metrics metric.Inventory,
) *Reconciler {
	return &Reconciler{tm: tm, store: store, reader: reader, log: log, metrics: metrics}
}

// Reconcile makes the product's size rows equal desired in one transaction.
// Bad input and duplicates are rejected before the transaction starts; any
// failure inside it leaves the rows as they were.
func (r *Reconciler) Reconcile(ctx context.Context, productID string, desired []SizeSpec) (*Result, error) {
	const op = "inventory.Reconciler.Reconcile"

	ctx, span := otel.Tracer("inventory").Start(ctx, "ReconcileSizes")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("sizes.desired", len(desired)),
	)

	log := r.log.Ctx(ctx).With("op", op, "product_id", productID)
	start := time.Now()

	if _, err := Validate(desired); err != nil {
		r.metrics.Rejected(string(apperr.KindOf(err)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid desired set")
		log.Infow("size reconciliation rejected", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var res *Result
	err := r.tm.ExecuteInTransaction(ctx, "reconcile_sizes", func(tx postgres.QueryExecuter) error {
		if err := r.store.LockProduct(ctx, tx, productID); err != nil {
			return transaction.HandleError(op, "lock product", err)
		}

		current, err := r.store.ListSizes(ctx, tx, productID)
		if err != nil {
			return transaction.HandleError(op, "list sizes", err)
		}

		diff, err := Plan(productID, current, desired)
		if err != nil {
			return transaction.HandleError(op, "plan", err)
		}

		if err = r.apply(ctx, tx, productID, diff); err != nil {
			return err
		}

		final, err := r.store.ListSizes(ctx, tx, productID)
		if err != nil {
			return transaction.HandleError(op, "reload sizes", err)
		}

		res = &Result{
			ProductID: productID,
			Sizes:     final,
			Created:   len(diff.Create),
			Updated:   len(diff.Update),
			Deleted:   len(diff.Delete),
			Unchanged: diff.Unchanged,
		}
		return nil
	})
	if err != nil {
		err = apperr.FromStore(op, err)
		r.metrics.Rejected(string(apperr.KindOf(err)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "reconciliation failed")
		log.Errorw("size reconciliation failed", "error", err, "kind", apperr.KindOf(err))
		return nil, err
	}

	r.metrics.Reconciled(res.Created, res.Updated, res.Deleted)
	span.SetAttributes(
		attribute.Int("sizes.created", res.Created),
		attribute.Int("sizes.updated", res.Updated),
		attribute.Int("sizes.deleted", res.Deleted),
	)

	elapsed := time.Since(start)
	log.Infow("sizes reconciled",
		"created", res.Created,
		"updated", res.Updated,
		"deleted", res.Deleted,
		"unchanged", res.Unchanged,
		"duration", elapsed.String(),
	)
	if elapsed > _slowOperation {
		log.Warnw("slow size reconciliation", "duration", elapsed.String())
	}
	return res, nil
}

func (r *Reconciler) apply(ctx context.Context, tx postgres.QueryExecuter, productID string, diff Diff) error {
	const op = "inventory.Reconciler.apply"

	if len(diff.Delete) > 0 {
		values := make([]string, 0, len(diff.Delete))
		for _, s := range diff.Delete {
			values = append(values, s.Value)
		}
		if err := r.store.DeleteSizes(ctx, tx, productID, values); err != nil {
			return transaction.HandleError(op, "delete sizes", err)
		}
	}

	for _, s := range diff.Update {
		if err := r.store.UpdateSize(ctx, tx, s); err != nil {
			return transaction.HandleError(op, "update size "+s.Value, err)
		}
	}

	if err := r.store.InsertSizes(ctx, tx, diff.Create); err != nil {
		return transaction.HandleError(op, "insert sizes", err)
	}
	return nil
}

// List returns the product's sizes ordered by value. A product with no sizes
// yields an empty slice; an unknown product yields apperr.ErrDataNotFound.
func (r *Reconciler) List(ctx context.Context, productID string) ([]Size, error) {
	const op = "inventory.Reconciler.List"

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sizes, err := r.store.ListSizes(ctx, r.reader, productID)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}
	if len(sizes) > 0 {
		return sizes, nil
	}
	if err = r.store.ProductExists(ctx, r.reader, productID); err != nil {
		return nil, apperr.FromStore(op, err)
	}
	return sizes, nil
}
