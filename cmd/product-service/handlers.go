package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/httpx"
	"github.com/MikeMC777/ordenes-skincare/internal/inventory"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	prod "github.com/MikeMC777/ordenes-skincare/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type sizeReconciler interface {
	Reconcile(ctx context.Context, productID string, desired []inventory.SizeSpec) (*inventory.Result, error)
	List(ctx context.Context, productID string) ([]inventory.Size, error)
}

// productDetail is a product with its size rows.
// swagger:model ProductDetail
type productDetail struct {
	prod.Product
	Sizes []inventory.Size `json:"sizes"`
}

// sizesRequest payload de reconciliación de tallas.
// swagger:model SizesRequest
type sizesRequest struct {
	Sizes []inventory.SizeSpec `json:"sizes" binding:"required"`
}

func registerRoutes(r gin.IRouter, repo prod.Repository, sizes sizeReconciler, admin gin.HandlerFunc, log logger.Logger) {
	r.GET("/products", listOnlyHandler(repo, log))
	r.GET("/products/search", searchHandler(repo, log))
	r.GET("/products/:id", getProductHandler(repo, sizes, log))
	r.GET("/products/:id/sizes", listSizesHandler(sizes, log))

	adm := r.Group("", admin)
	adm.POST("/products", createProductHandler(repo, log))
	adm.PATCH("/products/:id", updateProductHandler(repo, log))
	adm.DELETE("/products/:id", deleteProductHandler(repo, log))
	adm.PUT("/products/:id/sizes", reconcileSizesHandler(sizes, log))
}

// listOnlyHandler godoc
// @Summary      Listar productos
// @Description  Paginated catalog, newest first. No search here; see /products/search.
// @Tags         products
// @Produce      json
// @Param        limit   query     int  false  "1..100"  default(20)
// @Param        offset  query     int  false  ">= 0"    default(0)
// @Success      200     {object}  prod.ListResponse
// @Failure      400     {object}  httpx.ErrorResponse
// @Router       /products [get]
func listOnlyHandler(repo prod.Repository, log logger.Logger) gin.HandlerFunc {
	const op = "listOnlyHandler"

	return func(c *gin.Context) {
		limit, offset, err := pagination(c)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		items, err := repo.List(c.Request.Context(), prod.Query{Limit: limit, Offset: offset})
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		if items == nil {
			items = []prod.Product{}
		}
		c.JSON(http.StatusOK, prod.ListResponse{Limit: limit, Offset: offset, Items: items})
	}
}

// searchHandler godoc
// @Summary      Buscar productos
// @Description  Case-insensitive match on name or description.
// @Tags         products
// @Produce      json
// @Param        q       query     string  true   "Texto (mínimo 2 caracteres)"
// @Param        limit   query     int     false  "1..100"  default(20)
// @Param        offset  query     int     false  ">= 0"    default(0)
// @Success      200     {object}  prod.ListResponse
// @Failure      400     {object}  httpx.ErrorResponse
// @Router       /products/search [get]
func searchHandler(repo prod.Repository, log logger.Logger) gin.HandlerFunc {
	const op = "searchHandler"

	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if utf8.RuneCountInString(q) < 2 {
			httpx.RenderError(c, log, op, apperr.NewValidation("q", "must be at least 2 characters"))
			return
		}
		limit, offset, err := pagination(c)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		items, err := repo.List(c.Request.Context(), prod.Query{Q: q, Limit: limit, Offset: offset})
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		if items == nil {
			items = []prod.Product{}
		}
		c.JSON(http.StatusOK, prod.ListResponse{Q: q, Limit: limit, Offset: offset, Items: items})
	}
}

// getProductHandler godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID (uuid)"
// @Success      200  {object}  productDetail
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /products/{id} [get]
func getProductHandler(repo prod.Repository, sizes sizeReconciler, log logger.Logger) gin.HandlerFunc {
	const op = "getProductHandler"

	return func(c *gin.Context) {
		id, err := productID(c)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		p, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		rows, err := sizes.List(c.Request.Context(), id)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		c.JSON(http.StatusOK, productDetail{Product: *p, Sizes: rows})
	}
}

// createProductHandler godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     AdminKey
// @Param        body  body      prod.CreateProductRequest  true  "Product"
// @Success      201   {object}  prod.Product
// @Failure      400   {object}  httpx.ErrorResponse
// @Router       /products [post]
func createProductHandler(repo prod.Repository, log logger.Logger) gin.HandlerFunc {
	const op = "createProductHandler"

	return func(c *gin.Context) {
		var req prod.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadBody(c, log, op, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			httpx.RenderError(c, log, op, apperr.NewValidation("name", "is required"))
			return
		}
		price, err := parsePrice(req.Price)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		p := &prod.Product{
			ID:          uuid.NewString(),
			Name:        name,
			Description: strings.TrimSpace(req.Description),
			Price:       price,
			Available:   req.Available == nil || *req.Available,
		}
		if err = repo.Create(c.Request.Context(), p); err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		log.Ctx(c.Request.Context()).Infow("product created", "product_id", p.ID, "price", p.Price.String())
		c.JSON(http.StatusCreated, p)
	}
}

// updateProductHandler godoc
// @Summary      Actualizar producto
// @Description  Partial update. Price changes never alter existing orders.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     AdminKey
// @Param        id    path      string                     true  "Product ID (uuid)"
// @Param        body  body      prod.UpdateProductRequest  true  "Fields to change"
// @Success      200   {object}  prod.Product
// @Failure      400   {object}  httpx.ErrorResponse
// @Failure      404   {object}  httpx.ErrorResponse
// @Router       /products/{id} [patch]
func updateProductHandler(repo prod.Repository, log logger.Logger) gin.HandlerFunc {
	const op = "updateProductHandler"

	return func(c *gin.Context) {
		id, err := productID(c)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		var req prod.UpdateProductRequest
		if err = c.ShouldBindJSON(&req); err != nil {
			httpx.BadBody(c, log, op, err)
			return
		}

		patch, err := toPatch(req)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		p, err := repo.Update(c.Request.Context(), id, patch)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// deleteProductHandler godoc
// @Summary      Eliminar producto
// @Description  Products referenced by orders cannot be deleted; mark them unavailable instead.
// @Tags         products
// @Security     AdminKey
// @Param        id   path  string  true  "Product ID (uuid)"
// @Success      204
// @Failure      400  {object}  httpx.ErrorResponse
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /products/{id} [delete]
func deleteProductHandler(repo prod.Repository, log logger.Logger) gin.HandlerFunc {
	const op = "deleteProductHandler"

	return func(c *gin.Context) {
		id, err := productID(c)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		if !ok {
			httpx.RenderError(c, log, op, prod.ErrNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// listSizesHandler godoc
// @Summary      Tallas del producto
// @Tags         sizes
// @Produce      json
// @Param        id   path      string  true  "Product ID (uuid)"
// @Success      200  {array}   inventory.Size
// @Failure      404  {object}  httpx.ErrorResponse
// @Router       /products/{id}/sizes [get]
func listSizesHandler(sizes sizeReconciler, log logger.Logger) gin.HandlerFunc {
	const op = "listSizesHandler"

	return func(c *gin.Context) {
		id, err := productID(c)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		rows, err := sizes.List(c.Request.Context(), id)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// reconcileSizesHandler godoc
// @Summary      Reemplazar tallas
// @Description  Makes the product's sizes exactly equal to the submitted set in one transaction. An empty list removes every size.
// @Tags         sizes
// @Accept       json
// @Produce      json
// @Security     AdminKey
// @Param        id    path      string        true  "Product ID (uuid)"
// @Param        body  body      sizesRequest  true  "Desired sizes"
// @Success      200   {object}  inventory.Result
// @Failure      400   {object}  httpx.ErrorResponse
// @Failure      404   {object}  httpx.ErrorResponse
// @Failure      409   {object}  httpx.ErrorResponse "reconciliation_conflict"
// @Failure      503   {object}  httpx.ErrorResponse
// @Router       /products/{id}/sizes [put]
func reconcileSizesHandler(sizes sizeReconciler, log logger.Logger) gin.HandlerFunc {
	const op = "reconcileSizesHandler"

	return func(c *gin.Context) {
		id, err := productID(c)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}

		var req sizesRequest
		if err = c.ShouldBindJSON(&req); err != nil {
			httpx.BadBody(c, log, op, err)
			return
		}

		res, err := sizes.Reconcile(c.Request.Context(), id, req.Sizes)
		if err != nil {
			httpx.RenderError(c, log, op, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func productID(c *gin.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", apperr.NewValidation("id", "must be a UUID")
	}
	return id.String(), nil
}

func parsePrice(raw string) (money.Money, error) {
	price, err := money.Parse(raw)
	if err != nil || !price.IsPositive() {
		return 0, apperr.NewValidation("price", "must be a positive amount with at most 2 decimals")
	}
	return price, nil
}

func toPatch(req prod.UpdateProductRequest) (prod.Patch, error) {
	patch := prod.Patch{Available: req.Available}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return prod.Patch{}, apperr.NewValidation("name", "must not be blank")
		}
		patch.Name = &name
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		patch.Description = &desc
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return prod.Patch{}, err
		}
		patch.Price = &price
	}
	if patch.Empty() {
		return prod.Patch{}, apperr.NewValidation("body", "at least one field is required")
	}
	return patch, nil
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
