package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/MikeMC777/ordenes-skincare/docs"
	"github.com/MikeMC777/ordenes-skincare/internal/app"
	"github.com/MikeMC777/ordenes-skincare/internal/httpx"
	"github.com/MikeMC777/ordenes-skincare/internal/order"
	"github.com/MikeMC777/ordenes-skincare/internal/product"
)

// @title                       Órdenes Skincare - Order Service
// @version                     1.0
// @description                 Checkout, shipping zones and rates, order administration and the WhatsApp handoff.
// @host                        localhost:8082
// @BasePath                    /
// @schemes                     http https
// @securityDefinitions.apikey  AdminKey
// @in                          header
// @name                        X-Admin-Key
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New("order-service", app.Ports{HTTP: "8082", GRPC: "50052", Metrics: "9092"})
	if err != nil {
		log.Fatalf("order-service: %v", err)
	}
	defer a.Close()

	rates := a.Rates()
	svc := order.NewService(order.Deps{
		Tx:        a.Tx,
		Orders:    order.NewPGRepo(a.PG),
		Products:  product.NewPGRepo(a.PG),
		Rates:     rates,
		Handoff:   order.NewHandoffBuilder(a.Cfg.Handoff.Phone),
		Lifecycle: order.Lifecycle{Strict: a.Cfg.Orders.StrictStatus},
		Events:    a.Events,
		Log:       a.Log,
		Metrics:   a.Metrics.Orders(),
	})

	r := a.Engine("orders")
	registerRoutes(r, svc, rates, httpx.AdminKey(a.Cfg.Admin.KeyHash, a.Log), a.Log)

	if err = a.Run(ctx, r); err != nil {
		a.Log.Errorw("order-service stopped with error", "error", err)
		stop()
		a.Close()
		os.Exit(1)
	}
}
