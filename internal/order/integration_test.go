//go:build integration

package order_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/inventory"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/metric"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	"github.com/MikeMC777/ordenes-skincare/internal/order"
	"github.com/MikeMC777/ordenes-skincare/internal/product"
	"github.com/MikeMC777/ordenes-skincare/internal/shipping"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres/transaction"
	"github.com/MikeMC777/ordenes-skincare/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type IntegrationSuite struct {
	suite.Suite

	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pg        *postgres.Postgres

	products *product.PGRepo
	orders   *order.PGRepo
	rates    *shipping.PGRateRepo
	tx       transaction.Manager
	svc      *order.Service
	metrics  metric.Factory
}

func TestIntegration(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	var err error
	s.container, err = tcpostgres.Run(
		s.ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("skincare_test"),
		tcpostgres.WithUsername("test_user"),
		tcpostgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	connStr, err := s.container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(migrations.Up("pgx5://" + strings.TrimPrefix(connStr, "postgres://")))

	pool, err := pgxpool.New(s.ctx, connStr)
	s.Require().NoError(err)
	s.pg = postgres.FromPool(pool)

	log := logger.NewNop()
	s.metrics = metric.NewFactory()
	s.tx, err = transaction.NewManager(s.pg, log, s.metrics.Transaction())
	s.Require().NoError(err)

	s.products = product.NewPGRepo(s.pg)
	s.orders = order.NewPGRepo(s.pg)
	s.rates = shipping.NewPGRateRepo(s.pg)
	s.svc = order.NewService(order.Deps{
		Tx:       s.tx,
		Orders:   s.orders,
		Products: s.products,
		Rates:    s.rates,
		Handoff:  order.NewHandoffBuilder("+51 999 888 777"),
		Log:      log,
		Metrics:  s.metrics.Orders(),
	})
}

func (s *IntegrationSuite) TearDownSuite() {
	if s.pg != nil {
		s.pg.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *IntegrationSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(s.ctx, "TRUNCATE order_items, orders, product_sizes, products CASCADE")
	s.Require().NoError(err)
}

func (s *IntegrationSuite) seedProduct(name, price string) product.Product {
	p := product.Product{ID: uuid.NewString(), Name: name, Price: money.MustParse(price), Available: true}
	s.Require().NoError(s.products.Create(s.ctx, &p))
	return p
}

func (s *IntegrationSuite) request(items ...order.CreateOrderItem) order.CreateOrderRequest {
	return order.CreateOrderRequest{
		FullName:         "María Quispe",
		DNI:              "45678912",
		Phone:            "987654321",
		Address:          "Av. Arequipa 123",
		Department:       "Lima",
		Province:         "Lima",
		ShippingModality: "DOMICILIO",
		Items:            items,
	}
}

func (s *IntegrationSuite) countOrders() int {
	var n int
	s.Require().NoError(s.pg.Pool.QueryRow(s.ctx, "SELECT COUNT(*) FROM orders").Scan(&n))
	return n
}

func (s *IntegrationSuite) TestMigrationsSeedRateTable() {
	rates, err := s.rates.List(s.ctx)
	s.Require().NoError(err)
	s.Len(rates, 10)

	r, err := s.rates.GetRate(s.ctx, shipping.ZoneSierraSelva, shipping.ModalityAgencia)
	s.Require().NoError(err)
	s.Equal("18.00", r.Cost.String())
}

func (s *IntegrationSuite) TestCreateOrderPersistsSnapshot() {
	serum := s.seedProduct("Sérum", "85.00")
	crema := s.seedProduct("Crema", "130.00")

	res, err := s.svc.CreateOrder(s.ctx, s.request(
		order.CreateOrderItem{ProductID: serum.ID, Quantity: 2},
		order.CreateOrderItem{ProductID: crema.ID, Quantity: 1},
	))
	s.Require().NoError(err)
	s.Require().NoError(res.HandoffErr)

	got, items, err := s.orders.GetByID(s.ctx, res.Order.ID)
	s.Require().NoError(err)
	s.Equal("300.00", got.Subtotal.String())
	s.Equal("10.00", got.ShippingCost.String())
	s.Equal("310.00", got.Total.String())
	s.Equal(shipping.ZoneLimaLocal, got.Zone)
	s.Equal(order.StatusPending, got.Status)
	s.True(strings.HasPrefix(got.HandoffLink, "https://wa.me/51999888777?text="))
	s.Require().Len(items, 2)
	s.Equal("Crema", items[0].ProductName)

	// Later catalog and rate edits must not touch the stored order.
	newPrice := money.MustParse("999.00")
	_, err = s.products.Update(s.ctx, serum.ID, product.Patch{Price: &newPrice})
	s.Require().NoError(err)
	s.Require().NoError(s.rates.Upsert(s.ctx, shipping.Rate{
		Zone: shipping.ZoneLimaLocal, Modality: shipping.ModalityDomicilio,
		Cost: money.MustParse("50.00"), EstimatedDays: "1 día",
	}))
	s.T().Cleanup(func() {
		_ = s.rates.Upsert(s.ctx, shipping.Rate{
			Zone: shipping.ZoneLimaLocal, Modality: shipping.ModalityDomicilio,
			Cost: money.MustParse("10.00"), EstimatedDays: "1 - 2 días",
		})
	})

	again, _, err := s.orders.GetByID(s.ctx, res.Order.ID)
	s.Require().NoError(err)
	s.Equal("310.00", again.Total.String())
	s.Equal("1 - 2 días", again.EstimatedDays)

	regen, err := s.svc.RegenerateHandoff(s.ctx, res.Order.ID)
	s.Require().NoError(err)
	s.Equal(got.HandoffLink, regen.HandoffLink)
}

func (s *IntegrationSuite) TestUnavailableProductWritesNothing() {
	ok := s.seedProduct("Tónico", "49.90")
	off := s.seedProduct("Mascarilla", "60.00")
	available := false
	_, err := s.products.Update(s.ctx, off.ID, product.Patch{Available: &available})
	s.Require().NoError(err)

	_, err = s.svc.CreateOrder(s.ctx, s.request(
		order.CreateOrderItem{ProductID: ok.ID, Quantity: 1},
		order.CreateOrderItem{ProductID: off.ID, Quantity: 1},
	))
	var ue *apperr.UnavailableError
	s.Require().True(errors.As(err, &ue), "got %v", err)
	s.Equal([]string{off.ID}, ue.ProductIDs)
	s.Zero(s.countOrders())
}

func (s *IntegrationSuite) TestMissingRateWritesNothing() {
	p := s.seedProduct("Tónico", "49.90")
	_, err := s.pg.Pool.Exec(s.ctx, "DELETE FROM shipping_rates WHERE zone = 'ZONAS_REMOTAS' AND modality = 'AGENCIA'")
	s.Require().NoError(err)
	s.T().Cleanup(func() {
		_ = s.rates.Upsert(s.ctx, shipping.Rate{
			Zone: shipping.ZoneZonasRemotas, Modality: shipping.ModalityAgencia,
			Cost: money.MustParse("25.00"), EstimatedDays: "7 - 10 días",
		})
	})

	req := s.request(order.CreateOrderItem{ProductID: p.ID, Quantity: 1})
	req.Department, req.Province, req.ShippingModality = "Loreto", "Maynas", "AGENCIA"

	_, err = s.svc.CreateOrder(s.ctx, req)
	s.Equal(apperr.KindRateNotFound, apperr.KindOf(err))
	s.Zero(s.countOrders())
}

func (s *IntegrationSuite) TestSetStatusKeepsMoney() {
	p := s.seedProduct("Protector", "60.00")
	res, err := s.svc.CreateOrder(s.ctx, s.request(order.CreateOrderItem{ProductID: p.ID, Quantity: 3}))
	s.Require().NoError(err)

	d, err := s.svc.SetStatus(s.ctx, res.Order.ID, "shipped")
	s.Require().NoError(err)
	s.Equal(order.StatusShipped, d.Status)
	s.Equal("190.00", d.Total.String())
	s.Len(d.Items, 1)

	list, err := s.orders.List(s.ctx, order.ListFilter{Status: order.StatusShipped})
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.svc.SetStatus(s.ctx, uuid.NewString(), "DELIVERED")
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *IntegrationSuite) TestDeleteReferencedProduct() {
	p := s.seedProduct("Sérum", "85.00")
	_, err := s.svc.CreateOrder(s.ctx, s.request(order.CreateOrderItem{ProductID: p.ID, Quantity: 1}))
	s.Require().NoError(err)

	_, err = s.products.Delete(s.ctx, p.ID)
	s.ErrorIs(err, product.ErrReferenced)

	free := s.seedProduct("Libre", "1.00")
	deleted, err := s.products.Delete(s.ctx, free.ID)
	s.Require().NoError(err)
	s.True(deleted)
}

// failingStore breaks the last write of a reconciliation.
type failingStore struct {
	*inventory.PGStore
}

func (failingStore) InsertSizes(context.Context, postgres.QueryExecuter, []inventory.Size) error {
	return errors.New("disk full")
}

func (s *IntegrationSuite) TestReconcileSizes() {
	p := s.seedProduct("Protector Solar", "60.00")
	store := inventory.NewPGStore(s.pg, s.products)
	rec := inventory.NewReconciler(s.tx, store, s.pg.Pool, logger.NewNop(), s.metrics.Inventory())

	res, err := rec.Reconcile(s.ctx, p.ID, []inventory.SizeSpec{{Value: "m", Inventory: 5}, {Value: "L", Inventory: 3}})
	s.Require().NoError(err)
	s.Equal(2, res.Created)

	res, err = rec.Reconcile(s.ctx, p.ID, []inventory.SizeSpec{{Value: "M", Inventory: 5}, {Value: "L", Inventory: 10}, {Value: "XL", Inventory: 2}})
	s.Require().NoError(err)
	s.Equal(1, res.Created)
	s.Equal(1, res.Updated)
	s.Equal(1, res.Unchanged)
	s.Equal([]inventory.Size{
		{ProductID: p.ID, Value: "L", Inventory: 10},
		{ProductID: p.ID, Value: "M", Inventory: 5},
		{ProductID: p.ID, Value: "XL", Inventory: 2},
	}, res.Sizes)

	_, err = rec.Reconcile(s.ctx, p.ID, []inventory.SizeSpec{{Value: "S", Inventory: 1}, {Value: " s ", Inventory: 2}})
	s.Equal(apperr.KindConflict, apperr.KindOf(err))

	broken := inventory.NewReconciler(s.tx, failingStore{store}, s.pg.Pool, logger.NewNop(), s.metrics.Inventory())
	_, err = broken.Reconcile(s.ctx, p.ID, []inventory.SizeSpec{{Value: "M", Inventory: 1}, {Value: "XXL", Inventory: 1}})
	s.Require().Error(err)

	rows, err := rec.List(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(res.Sizes, rows, "a failed reconciliation must leave the rows untouched")

	res, err = rec.Reconcile(s.ctx, p.ID, nil)
	s.Require().NoError(err)
	s.Equal(3, res.Deleted)
	s.Empty(res.Sizes)

	_, err = rec.Reconcile(s.ctx, uuid.NewString(), nil)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}
