package order

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/events"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/metric"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	"github.com/MikeMC777/ordenes-skincare/internal/product"
	"github.com/MikeMC777/ordenes-skincare/internal/shipping"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres/transaction"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const _slowOperation = 200 * time.Millisecond

// ProductReader is the catalog read the engine runs inside its transaction.
type ProductReader interface {
	GetByIDs(ctx context.Context, q postgres.QueryExecuter, ids []string, lock product.Lock) (map[string]product.Product, error)
}

type Deps struct {
	Tx        transaction.Manager
	Orders    Repository
	Products  ProductReader
	Rates     shipping.RateTable
	Handoff   *HandoffBuilder
	Lifecycle Lifecycle
	Events    events.Publisher
	Log       logger.Logger
	Metrics   metric.Orders
}

type Service struct {
	tx        transaction.Manager
	orders    Repository
	products  ProductReader
	rates     shipping.RateTable
	handoff   *HandoffBuilder
	lifecycle Lifecycle
	events    events.Publisher
	log       logger.Logger
	metrics   metric.Orders

	newID func() string
	now   func() time.Time
}

func NewService(d Deps) *Service {
	pub := d.Events
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		tx:        d.Tx,
		orders:    d.Orders,
		products:  d.Products,
		rates:     d.Rates,
		handoff:   d.Handoff,
		lifecycle: d.Lifecycle,
		events:    pub,
		log:       d.Log,
		metrics:   d.Metrics,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// CreateOrderResult carries the stored order. HandoffErr is set when the
// order committed but its handoff link could not be built or saved; the
// admin flow retries with RegenerateHandoff.
type CreateOrderResult struct {
	Order      *Order
	Items      []Item
	Message    string
	HandoffErr error
}

// CreateOrder prices the cart from server-held product prices and the rate
// table and stores the order with its items in one transaction. Nothing is
// written unless every product is available and the rate exists.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	const op = "order.Service.CreateOrder"

	ctx, span := otel.Tracer("order").Start(ctx, "CreateOrder")
	defer span.End()

	log := s.log.Ctx(ctx).With("op", op)
	start := time.Now()

	res, err := s.createOrder(ctx, req)
	if err != nil {
		kind := apperr.KindOf(err)
		s.metrics.Failed(string(kind))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))

		switch kind {
		case apperr.KindRateNotFound:
			log.Errorw("shipping rate missing from rate table; seed it", "error", err,
				"zone", req.ShippingZone, "department", req.Department, "modality", req.ShippingModality)
		case apperr.KindValidation, apperr.KindItemsUnavailable:
			log.Infow("order rejected", "kind", kind, "error", err)
		default:
			log.Errorw("order creation failed", "kind", kind, "error", err)
		}
		return nil, err
	}

	o := res.Order
	span.SetAttributes(
		attribute.String("order.id", o.ID),
		attribute.String("order.zone", string(o.Zone)),
		attribute.String("order.modality", string(o.Modality)),
		attribute.Int("order.items", len(res.Items)),
	)
	s.metrics.Created(string(o.Zone), string(o.Modality))

	msg, link, herr := s.handoff.Build(o, res.Items)
	res.Message = msg
	if herr == nil {
		if herr = s.orders.SetHandoffLink(ctx, o.ID, link); herr == nil {
			o.HandoffLink = link
		} else {
			herr = fmt.Errorf("%s: save link: %w: %w", op, apperr.ErrHandoff, herr)
		}
	}
	if herr != nil {
		res.HandoffErr = herr
		s.metrics.HandoffFailed()
		log.Warnw("order stored without handoff link", "order_id", o.ID, "error", herr)
	}

	s.publish(ctx, events.TypeOrderCreated, o.ID, map[string]any{
		"zone":         o.Zone,
		"modality":     o.Modality,
		"subtotal":     o.Subtotal,
		"shippingCost": o.ShippingCost,
		"totalAmount":  o.Total,
		"items":        len(res.Items),
	})

	elapsed := time.Since(start)
	log.Infow("order created",
		"order_id", o.ID,
		"zone", o.Zone,
		"modality", o.Modality,
		"total", o.Total.String(),
		"items", len(res.Items),
		"duration", elapsed.String(),
	)
	if elapsed > _slowOperation {
		log.Warnw("slow order creation", "order_id", o.ID, "duration", elapsed.String())
	}
	return res, nil
}

func (s *Service) createOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	const op = "order.Service.createOrder"

	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	modality, err := shipping.ParseModality(req.ShippingModality)
	if err != nil {
		return nil, err
	}
	zone, err := s.pickZone(ctx, req)
	if err != nil {
		return nil, err
	}

	lines := mergeLines(req.Items)
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	o := &Order{
		ID: s.newID(),
		Customer: Customer{
			FullName:   req.FullName,
			DNI:        req.DNI,
			Phone:      req.Phone,
			Address:    req.Address,
			Department: req.Department,
			Province:   req.Province,
		},
		Zone:     zone,
		Modality: modality,
		Status:   StatusPending,
	}

	var items []Item
	err = s.tx.ExecuteInTransaction(ctx, "create_order", func(tx postgres.QueryExecuter) error {
		found, err := s.products.GetByIDs(ctx, tx, ids, product.ForShare)
		if err != nil {
			return transaction.HandleError(op, "read products", err)
		}

		var missing []string
		for _, id := range ids {
			if p, ok := found[id]; !ok || !p.Available {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return &apperr.UnavailableError{ProductIDs: missing}
		}

		rate, err := s.rates.GetRate(ctx, zone, modality)
		if err != nil {
			return transaction.HandleError(op, "resolve rate", err)
		}

		items = make([]Item, 0, len(lines))
		lineTotals := make([]money.Money, 0, len(lines))
		for _, l := range lines {
			p := found[l.ProductID]
			it := Item{
				ID:          s.newID(),
				OrderID:     o.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitPrice:   p.Price,
			}
			items = append(items, it)
			lineTotals = append(lineTotals, it.LineTotal())
		}

		o.Subtotal = money.Sum(lineTotals...)
		o.ShippingCost = rate.Cost
		o.EstimatedDays = rate.EstimatedDays
		o.Total = o.Subtotal.Add(o.ShippingCost)
		if o.Total > money.MaxStored {
			return apperr.NewValidation("items",
				fmt.Sprintf("order total S/ %s exceeds the maximum of S/ %s", o.Total, money.MaxStored))
		}

		if err = s.orders.Create(ctx, tx, o, items); err != nil {
			return transaction.HandleError(op, "insert order", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}

	return &CreateOrderResult{Order: o, Items: SortItems(items)}, nil
}

// pickZone returns the zone the customer chose at checkout. An empty zone is
// derived from department/province. A chosen zone that disagrees with the
// address is kept and only logged.
func (s *Service) pickZone(ctx context.Context, req CreateOrderRequest) (shipping.Zone, error) {
	resolved := shipping.ResolveZoneFor(req.Department, req.Province)
	if req.ShippingZone == "" {
		return resolved, nil
	}

	requested, err := shipping.ParseZone(req.ShippingZone)
	if err != nil {
		return "", err
	}
	if requested != resolved && requested != shipping.ResolveZone(req.Department) {
		s.log.Ctx(ctx).Infow("shipping zone differs from address",
			"zone", requested, "resolved", resolved,
			"department", req.Department, "province", req.Province)
	}
	return requested, nil
}

// mergeLines folds repeated product ids into one line, keeping the order in
// which each product first appears.
func mergeLines(in []CreateOrderItem) []CreateOrderItem {
	idx := make(map[string]int, len(in))
	out := make([]CreateOrderItem, 0, len(in))
	for _, it := range in {
		if i, ok := idx[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		idx[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out
}

func (s *Service) GetOrder(ctx context.Context, id string) (*Details, error) {
	const op = "order.Service.GetOrder"

	if err := checkID(id); err != nil {
		return nil, err
	}

	o, items, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}
	return &Details{Order: *o, Items: items}, nil
}

func (s *Service) ListOrders(ctx context.Context, f ListFilter) ([]Order, error) {
	const op = "order.Service.ListOrders"

	orders, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}
	return orders, nil
}

// SetStatus moves the order to status in a single compare-and-set update.
// Money columns are never rewritten.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*Details, error) {
	const op = "order.Service.SetStatus"

	ctx, span := otel.Tracer("order").Start(ctx, "SetStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id), attribute.String("order.status", status))

	log := s.log.Ctx(ctx).With("op", op, "order_id", id)

	if err := checkID(id); err != nil {
		return nil, err
	}
	to, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		from    Status
		updated *Order
		items   []Item
	)
	err = s.tx.ExecuteInTransaction(ctx, "set_order_status", func(tx postgres.QueryExecuter) error {
		cur, err := s.orders.LockStatus(ctx, tx, id)
		if err != nil {
			return transaction.HandleError(op, "lock order", err)
		}
		from = cur

		if !s.lifecycle.CanTransition(cur, to) {
			return fmt.Errorf("%s: %s -> %s: %w", op, cur, to, apperr.ErrInvalidTransition)
		}

		if updated, err = s.orders.UpdateStatus(ctx, tx, id, cur, to); err != nil {
			return transaction.HandleError(op, "update status", err)
		}
		if items, err = s.orders.GetItems(ctx, tx, id); err != nil {
			return transaction.HandleError(op, "read items", err)
		}
		return nil
	})
	if err != nil {
		err = apperr.FromStore(op, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperr.KindOf(err)))
		log.Warnw("status change rejected", "to", to, "kind", apperr.KindOf(err), "error", err)
		return nil, err
	}

	if from != to {
		s.metrics.StatusChanged(string(from), string(to))
		s.publish(ctx, events.TypeOrderStatusChanged, id, map[string]any{
			"from": from,
			"to":   to,
		})
	}
	log.Infow("order status set", "from", from, "to", to)

	return &Details{Order: *updated, Items: items}, nil
}

// RegenerateHandoff rebuilds the link from the stored order and saves it.
// The message only depends on stored data, so the link is stable.
func (s *Service) RegenerateHandoff(ctx context.Context, id string) (*Details, error) {
	const op = "order.Service.RegenerateHandoff"

	if err := checkID(id); err != nil {
		return nil, err
	}

	o, items, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(op, err)
	}

	_, link, err := s.handoff.Build(o, items)
	if err != nil {
		s.metrics.HandoffFailed()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.orders.SetHandoffLink(ctx, id, link); err != nil {
		s.metrics.HandoffFailed()
		return nil, apperr.FromStore(op, err)
	}
	o.HandoffLink = link

	s.log.Ctx(ctx).Infow("handoff link regenerated", "op", op, "order_id", id)
	return &Details{Order: *o, Items: items}, nil
}

func (s *Service) publish(ctx context.Context, typ, orderID string, payload any) {
	err := s.events.Publish(ctx, events.Event{
		ID:         s.newID(),
		Type:       typ,
		OrderID:    orderID,
		OccurredAt: s.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		s.log.Ctx(ctx).Warnw("order event not published", "type", typ, "order_id", orderID, "error", err)
	}
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.NewValidation("id", "must be a UUID")
	}
	return nil
}
