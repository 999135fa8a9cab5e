package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/httpx"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	"github.com/MikeMC777/ordenes-skincare/internal/order"
	"github.com/MikeMC777/ordenes-skincare/internal/shipping"

	"github.com/gin-gonic/gin"
)

const _handoffRetryHint = "order stored; the handoff link could not be generated, regenerate it from the admin panel"

type orderService interface {
	CreateOrder(ctx context.Context, req order.CreateOrderRequest) (*order.CreateOrderResult, error)
	GetOrder(ctx context.Context, id string) (*order.Details, error)
	ListOrders(ctx context.Context, f order.ListFilter) ([]order.Order, error)
	SetStatus(ctx context.Context, id, status string) (*order.Details, error)
	RegenerateHandoff(ctx context.Context, id string) (*order.Details, error)
}

func registerRoutes(r gin.IRouter, svc orderService, rates shipping.RateAdmin, admin gin.HandlerFunc, log logger.Logger) {
	r.POST("/orders", createOrderHandler(svc, log))
	r.GET("/shipping/zone", resolveZoneHandler())
	r.GET("/shipping/rates", listRatesHandler(rates, log))

	adm := r.Group("", admin)
	adm.GET("/orders", listOrdersHandler(svc, log))
	adm.GET("/orders/:id", getOrderHandler(svc, log))
	adm.PUT("/orders/:id/status", updateStatusHandler(svc, log))
	adm.POST("/orders/:id/handoff", regenerateHandoffHandler(svc, log))
	adm.PUT("/admin/shipping/rates/:zone/:modality", upsertRateHandler(rates, log))
}

// createOrderHandler godoc
// @Summary      Crear orden
// @Description  Prices the cart with server-side product prices and the shipping rate table, stores it and returns the WhatsApp handoff link.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      order.CreateOrderRequest  true  "Order"
// @Success      201   {object}  order.CreateOrderResponse
// @Failure      400   {object}  httpx.ErrorResponse "validation"
// @Failure      409   {object}  httpx.ErrorResponse "items_unavailable"
// @Failure      422   {object}  httpx.ErrorResponse "rate_not_found"
// @Failure      503   {object}  httpx.ErrorResponse "persistence"
// @Router       /orders [post]
func createOrderHandler(svc orderService, log logger.Logger) gin.HandlerFunc {
	const op = "createOrderHandler"

	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadBody(c, log, op, err)
			return
		}

		res, err := svc.CreateOrder(c.Request.Context(), req)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		resp := order.CreateOrderResponse{
			OrderID:     res.Order.ID,
			HandoffLink: res.Order.HandoffLink,
		}
		if res.HandoffErr != nil {
			resp.HandoffError = _handoffRetryHint
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// getOrderHandler godoc
// @Summary      Obtener orden
// @Tags         orders
// @Produce      json
// @Security     AdminKey
// @Param        id   path      string  true  "Order ID (uuid)"
// @Success      200  {object}  order.Details
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /orders/{id} [get]
func getOrderHandler(svc orderService, log logger.Logger) gin.HandlerFunc {
	const op = "getOrderHandler"

	return func(c *gin.Context) {
		d, err := svc.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// listOrdersHandler godoc
// @Summary      Listar órdenes
// @Description  Newest first. Optional status filter.
// @Tags         orders
// @Produce      json
// @Security     AdminKey
// @Param        status  query     string  false  "PENDING | SHIPPED | DELIVERED"
// @Param        limit   query     int     false  "1..100"  default(20)
// @Param        offset  query     int     false  ">= 0"    default(0)
// @Success      200     {object}  order.ListResponse
// @Failure      400     {object}  httpx.ErrorResponse
// @Router       /orders [get]
func listOrdersHandler(svc orderService, log logger.Logger) gin.HandlerFunc {
	const op = "listOrdersHandler"

	return func(c *gin.Context) {
		limit, offset, err := pagination(c)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		f := order.ListFilter{Limit: limit, Offset: offset}
		if raw := c.Query("status"); raw != "" {
			if f.Status, err = order.ParseStatus(raw); err != nil {
				httpx.RenderError(c, log, op, err)
				return
			}
		}

		orders, err := svc.ListOrders(c.Request.Context(), f)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		c.JSON(http.StatusOK, order.ListResponse{
			Status: string(f.Status),
			Limit:  limit,
			Offset: offset,
			Items:  orders,
		})
	}
}

// updateStatusHandler godoc
// @Summary      Cambiar estado
// @Description  Sets the fulfilment status. Money fields are never modified.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     AdminKey
// @Param        id    path      string                     true  "Order ID (uuid)"
// @Param        body  body      order.UpdateStatusRequest  true  "New status"
// @Success      200   {object}  order.Details
// @Failure      400   {object}  httpx.ErrorResponse
// @Failure      404   {object}  httpx.ErrorResponse
// @Failure      409   {object}  httpx.ErrorResponse "invalid_transition"
// @Router       /orders/{id}/status [put]
func updateStatusHandler(svc orderService, log logger.Logger) gin.HandlerFunc {
	const op = "updateStatusHandler"

	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadBody(c, log, op, err)
			return
		}

		d, err := svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// regenerateHandoffHandler godoc
// @Summary      Regenerar enlace de WhatsApp
// @Tags         orders
// @Produce      json
// @Security     AdminKey
// @Param        id   path      string  true  "Order ID (uuid)"
// @Success      200  {object}  order.HandoffResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Failure      502  {object}  httpx.ErrorResponse "handoff"
// @Router       /orders/{id}/handoff [post]
func regenerateHandoffHandler(svc orderService, log logger.Logger) gin.HandlerFunc {
	const op = "regenerateHandoffHandler"

	return func(c *gin.Context) {
		d, err := svc.RegenerateHandoff(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		c.JSON(http.StatusOK, order.HandoffResponse{OrderID: d.ID, HandoffLink: d.HandoffLink})
	}
}

// resolveZoneHandler godoc
// @Summary      Resolver zona de envío
// @Description  Unknown departments resolve to ZONAS_REMOTAS.
// @Tags         shipping
// @Produce      json
// @Param        department  query     string  true   "Departamento"
// @Param        province    query     string  false  "Provincia"
// @Success      200         {object}  shipping.ZoneResponse
// @Failure      400         {object}  httpx.ErrorResponse
// @Router       /shipping/zone [get]
func resolveZoneHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		department := strings.TrimSpace(c.Query("department"))
		province := strings.TrimSpace(c.Query("province"))
		if department == "" {
			c.JSON(http.StatusBadRequest, httpx.ErrorResponse{
				Error: "department is required",
				Kind:  string(apperr.KindValidation),
			})
			return
		}

		zone := shipping.ResolveZoneFor(department, province)
		c.JSON(http.StatusOK, shipping.ZoneResponse{
			Department: department,
			Province:   province,
			Zone:       zone,
			Label:      zone.Label(),
		})
	}
}

// listRatesHandler godoc
// @Summary      Tarifas de envío
// @Tags         shipping
// @Produce      json
// @Success      200  {object}  shipping.ListResponse
// @Failure      503  {object}  httpx.ErrorResponse
// @Router       /shipping/rates [get]
func listRatesHandler(rates shipping.RateTable, log logger.Logger) gin.HandlerFunc {
	const op = "listRatesHandler"

	return func(c *gin.Context) {
		items, err := rates.List(c.Request.Context())
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		if items == nil {
			items = []shipping.Rate{}
		}
		c.JSON(http.StatusOK, shipping.ListResponse{Items: items})
	}
}

// upsertRateHandler godoc
// @Summary      Ajustar tarifa
// @Description  Creates or replaces the rate of one (zone, modality) pair. Existing orders keep their shipping cost.
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Security     AdminKey
// @Param        zone      path      string                      true  "Zone"
// @Param        modality  path      string                      true  "DOMICILIO | AGENCIA"
// @Param        body      body      shipping.UpsertRateRequest  true  "Rate"
// @Success      200       {object}  shipping.Rate
// @Failure      400       {object}  httpx.ErrorResponse
// @Router       /admin/shipping/rates/{zone}/{modality} [put]
func upsertRateHandler(rates shipping.RateAdmin, log logger.Logger) gin.HandlerFunc {
	const op = "upsertRateHandler"

	return func(c *gin.Context) {
		zone, err := shipping.ParseZone(c.Param("zone"))
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		modality, err := shipping.ParseModality(c.Param("modality"))
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		var req shipping.UpsertRateRequest
		if err = c.ShouldBindJSON(&req); err != nil {
			httpx.BadBody(c, log, op, err)
			return
		}
		cost, err := money.Parse(req.Cost)
		if err != nil || !cost.IsPositive() {
			httpx.RenderError(c, log, op, apperr.NewValidation("cost", "must be a positive amount with at most 2 decimals"))
			return
		}

		rate := shipping.Rate{
			Zone:          zone,
			Modality:      modality,
			Cost:          cost,
			EstimatedDays: strings.TrimSpace(req.EstimatedDays),
		}
		if err = rates.Upsert(c.Request.Context(), rate); err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		log.Ctx(c.Request.Context()).Infow("shipping rate updated",
			"zone", zone, "modality", modality, "cost", cost.String())
		c.JSON(http.StatusOK, rate)
	}
}

func pagination(c *gin.Context) (limit, offset int, err error) {
	limit, offset = 20, 0
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > 100 {
			return 0, 0, apperr.NewValidation("limit", "must be an integer between 1 and 100")
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, apperr.NewValidation("offset", "must be a non-negative integer")
		}
	}
	return limit, offset, nil
}
