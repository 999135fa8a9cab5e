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
	"github.com/MikeMC777/ordenes-skincare/internal/inventory"
	"github.com/MikeMC777/ordenes-skincare/internal/product"
)

// @title                       Órdenes Skincare - Product Service
// @version                     1.0
// @description                 Catalog administration and per-product size inventory.
// @host                        localhost:8081
// @BasePath                    /
// @schemes                     http https
// @securityDefinitions.apikey  AdminKey
// @in                          header
// @name                        X-Admin-Key
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New("product-service", app.Ports{HTTP: "8081", GRPC: "50051", Metrics: "9091"})
	if err != nil {
		log.Fatalf("product-service: %v", err)
	}
	defer a.Close()

	repo := product.NewPGRepo(a.PG)
	sizes := inventory.NewReconciler(
		a.Tx,
		inventory.NewPGStore(a.PG, repo),
		a.PG.Pool,
		a.Log,
		a.Metrics.Inventory(),
	)

	r := a.Engine("products")
	registerRoutes(r, repo, sizes, httpx.AdminKey(a.Cfg.Admin.KeyHash, a.Log), a.Log)

	if err = a.Run(ctx, r); err != nil {
		a.Log.Errorw("product-service stopped with error", "error", err)
		stop()
		a.Close()
		os.Exit(1)
	}
}
