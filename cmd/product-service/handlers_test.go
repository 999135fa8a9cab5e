package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/httpx"
	"github.com/MikeMC777/ordenes-skincare/internal/inventory"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	prod "github.com/MikeMC777/ordenes-skincare/internal/product"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}

//
// ===== STUB REPO EN MEMORIA (implementa product.Repository) =====
//

type stubRepo struct {
	items      map[string]*prod.Product
	referenced map[string]bool
	lastQuery  prod.Query
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: map[string]*prod.Product{}, referenced: map[string]bool{}}
}

func (s *stubRepo) List(_ context.Context, q prod.Query) ([]prod.Product, error) {
	s.lastQuery = q
	out := make([]prod.Product, 0, len(s.items))
	for _, v := range s.items {
		// filtro mínimo por nombre/descr cuando Q viene con search
		if q.Q != "" && !containsFold(v.Name, q.Q) && !containsFold(v.Description, q.Q) {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	start := q.Offset
	if start > len(out) {
		return []prod.Product{}, nil
	}
	end := start + q.Limit
	if end > len(out) || q.Limit <= 0 {
		end = len(out)
	}
	return out[start:end], nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*prod.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, prod.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) Create(_ context.Context, p *prod.Product) error {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubRepo) Update(_ context.Context, id string, patch prod.Patch) (*prod.Product, error) {
	cur, ok := s.items[id]
	if !ok {
		return nil, prod.ErrNotFound
	}
	if patch.Name != nil {
		cur.Name = *patch.Name
	}
	if patch.Description != nil {
		cur.Description = *patch.Description
	}
	if patch.Price != nil {
		cur.Price = *patch.Price
	}
	if patch.Available != nil {
		cur.Available = *patch.Available
	}
	cur.UpdatedAt = time.Now().UTC()
	cp := *cur
	return &cp, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) (bool, error) {
	if s.referenced[id] {
		return false, prod.ErrReferenced
	}
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// stubSizes aplica el mismo plan que el reconciliador sobre un mapa.
type stubSizes struct {
	repo *stubRepo
	rows map[string][]inventory.Size
}

func (s *stubSizes) List(_ context.Context, productID string) ([]inventory.Size, error) {
	if _, ok := s.repo.items[productID]; !ok {
		return nil, prod.ErrNotFound
	}
	out := append([]inventory.Size{}, s.rows[productID]...)
	return out, nil
}

func (s *stubSizes) Reconcile(ctx context.Context, productID string, desired []inventory.SizeSpec) (*inventory.Result, error) {
	clean, err := inventory.Validate(desired)
	if err != nil {
		return nil, err
	}
	current, err := s.List(ctx, productID)
	if err != nil {
		return nil, err
	}
	diff, err := inventory.Plan(productID, current, clean)
	if err != nil {
		return nil, err
	}

	next := make([]inventory.Size, 0, len(clean))
	for _, d := range clean {
		next = append(next, inventory.Size{ProductID: productID, Value: d.Value, Inventory: d.Inventory})
	}
	sort.Slice(next, func(i, j int) bool { return next[i].Value < next[j].Value })
	s.rows[productID] = next

	return &inventory.Result{
		ProductID: productID,
		Sizes:     next,
		Created:   len(diff.Create),
		Updated:   len(diff.Update),
		Deleted:   len(diff.Delete),
		Unchanged: diff.Unchanged,
	}, nil
}

//
// ===== ROUTER de pruebas con los handlers del main =====
//

func newRouter(repo *stubRepo) (*gin.Engine, *stubSizes) {
	sizes := &stubSizes{repo: repo, rows: map[string][]inventory.Size{}}
	log := logger.NewNop()

	r := gin.New()
	registerRoutes(r, repo, sizes, httpx.AdminKey("", log), log)
	return r, sizes
}

func seed(repo *stubRepo, name, desc, price string) string {
	id := uuid.NewString()
	_ = repo.Create(context.Background(), &prod.Product{
		ID:          id,
		Name:        name,
		Description: desc,
		Price:       money.MustParse(price),
		Available:   true,
	})
	return id
}

func send(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

//
// ===== TESTS =====
//

// /products → paginación SOLAMENTE (no debe mandar Q al repo)
func TestListProducts_PaginationOnly_NoSearch(t *testing.T) {
	repo := newStubRepo()
	for i := 1; i <= 3; i++ {
		seed(repo, fmt.Sprintf("Prod %d", i), "desc", "10.00")
	}
	r, _ := newRouter(repo)

	w := send(r, http.MethodGet, "/products?limit=2&offset=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got prod.ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(got.Items) != 2 || got.Limit != 2 || got.Offset != 1 {
		t.Fatalf("respuesta inesperada: %+v", got)
	}
	if repo.lastQuery.Q != "" {
		t.Fatalf("listOnlyHandler no debe aplicar búsqueda; Q=%q", repo.lastQuery.Q)
	}

	if w = send(r, http.MethodGet, "/products?limit=abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por limit inválido, got %d", w.Code)
	}
}

// /products/search → exige q (≥2); devuelve filtrado + paginado
func TestSearchProducts_RequiresQAndFilters(t *testing.T) {
	repo := newStubRepo()
	serum := seed(repo, "Sérum Niacinamida", "piel mixta", "85.00")
	seed(repo, "Crema Hidratante", "piel seca", "130.00")
	r, _ := newRouter(repo)

	// falta q ⇒ 400
	if w := send(r, http.MethodGet, "/products/search?limit=10", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por q faltante, got %d", w.Code)
	}
	// q demasiado corta ⇒ 400
	if w := send(r, http.MethodGet, "/products/search?q=s", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por q corta, got %d", w.Code)
	}

	// q válida ⇒ 200 + 1 resultado
	w := send(r, http.MethodGet, "/products/search?q=mixta&limit=10&offset=0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got prod.ListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Q != "mixta" || len(got.Items) != 1 || got.Items[0].ID != serum {
		t.Fatalf("resultado inesperado: q=%q items=%+v", got.Q, got.Items)
	}
	if repo.lastQuery.Q == "" {
		t.Fatalf("debió enviarse Q al repo en search")
	}
}

// /products/:id incluye tallas
func TestGetProduct_OK_NotFound_BadID(t *testing.T) {
	repo := newStubRepo()
	id := seed(repo, "Tónico", "", "49.90")
	r, sizes := newRouter(repo)
	sizes.rows[id] = []inventory.Size{{ProductID: id, Value: "100ML", Inventory: 4}}

	w := send(r, http.MethodGet, "/products/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got productDetail
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Price.String() != "49.90" || len(got.Sizes) != 1 {
		t.Fatalf("producto inesperado: %+v", got)
	}

	if w = send(r, http.MethodGet, "/products/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d body=%s", w.Code, w.Body.String())
	}
	if w = send(r, http.MethodGet, "/products/nope", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d body=%s", w.Code, w.Body.String())
	}
}

// POST /products
func TestCreateProduct_Valid_And_Invalid(t *testing.T) {
	repo := newStubRepo()
	r, _ := newRouter(repo)

	name := gofakeit.ProductName()
	valid := fmt.Sprintf(`{"name":%q,"description":"30 ml","price":"85.00"}`, name)
	w := send(r, http.MethodPost, "/products", valid)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var created prod.Product
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.ID == "" || created.Name != name || !created.Available || created.Price.String() != "85.00" {
		t.Fatalf("producto inesperado: %+v", created)
	}

	for _, bad := range []string{
		`{"description":"x"}`,                 // falta name/price
		`{"name":"  ","price":"10.00"}`,       // nombre en blanco
		`{"name":"Bad","price":"0.00"}`,       // precio no positivo
		`{"name":"Bad","price":"10.001"}`,     // más de 2 decimales
		`{"name":"Bad","price":"diez soles"}`, // no numérico
	} {
		if w = send(r, http.MethodPost, "/products", bad); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: esperaba 400, got %d body=%s", bad, w.Code, w.Body.String())
		}
	}
}

// PATCH /products/:id (parcial): lo omitido no se toca
func TestUpdateProduct_Partial(t *testing.T) {
	repo := newStubRepo()
	id := seed(repo, "Mascarilla", "arcilla", "10.00")
	r, _ := newRouter(repo)

	w := send(r, http.MethodPatch, "/products/"+id, `{"name":"Mascarilla Purificante"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got, _ := repo.GetByID(context.Background(), id)
	if got.Name != "Mascarilla Purificante" || got.Price.String() != "10.00" || got.Description != "arcilla" {
		t.Fatalf("update sin price no respetado: %+v", got)
	}

	w = send(r, http.MethodPatch, "/products/"+id, `{"price":"12.50","available":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got, _ = repo.GetByID(context.Background(), id)
	if got.Price.String() != "12.50" || got.Available {
		t.Fatalf("update con price no aplicado: %+v", got)
	}

	for _, bad := range []string{`{}`, `{"price":"-3"}`, `{"name":""}`} {
		if w = send(r, http.MethodPatch, "/products/"+id, bad); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: esperaba 400, got %d body=%s", bad, w.Code, w.Body.String())
		}
	}
	if w = send(r, http.MethodPatch, "/products/"+uuid.NewString(), `{"price":"1.00"}`); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}
}

// DELETE /products/:id
func TestDeleteProduct_OK_NotFound_Referenced(t *testing.T) {
	repo := newStubRepo()
	del := seed(repo, "X", "", "1.00")
	used := seed(repo, "Y", "", "1.00")
	repo.referenced[used] = true
	r, _ := newRouter(repo)

	if w := send(r, http.MethodDelete, "/products/"+del, ""); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := send(r, http.MethodDelete, "/products/"+del, ""); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}
	w := send(r, http.MethodDelete, "/products/"+used, "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "unavailable") {
		t.Fatalf("esperaba 400 por producto referenciado, got %d body=%s", w.Code, w.Body.String())
	}
}

// PUT /products/:id/sizes
func TestReconcileSizes(t *testing.T) {
	repo := newStubRepo()
	id := seed(repo, "Protector Solar", "", "60.00")
	r, sizes := newRouter(repo)
	sizes.rows[id] = []inventory.Size{
		{ProductID: id, Value: "L", Inventory: 3},
		{ProductID: id, Value: "M", Inventory: 5},
	}

	w := send(r, http.MethodPut, "/products/"+id+"/sizes", `{"sizes":[{"value":"M","inventory":5},{"value":"L","inventory":10},{"value":"XL","inventory":2}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var res inventory.Result
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Created != 1 || res.Updated != 1 || res.Deleted != 0 || len(res.Sizes) != 3 {
		t.Fatalf("resultado inesperado: %+v", res)
	}

	// duplicado ⇒ 409 y nada cambia
	w = send(r, http.MethodPut, "/products/"+id+"/sizes", `{"sizes":[{"value":"M","inventory":1},{"value":"m","inventory":2}]}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("esperaba 409, got %d body=%s", w.Code, w.Body.String())
	}
	if len(sizes.rows[id]) != 3 {
		t.Fatalf("las tallas no debieron cambiar: %+v", sizes.rows[id])
	}

	// inventario negativo ⇒ 400
	w = send(r, http.MethodPut, "/products/"+id+"/sizes", `{"sizes":[{"value":"S","inventory":-1}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400, got %d body=%s", w.Code, w.Body.String())
	}

	// lista vacía ⇒ se eliminan todas
	w = send(r, http.MethodPut, "/products/"+id+"/sizes", `{"sizes":[]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Deleted != 3 || len(res.Sizes) != 0 {
		t.Fatalf("resultado inesperado: %+v", res)
	}

	// producto inexistente ⇒ 404
	w = send(r, http.MethodPut, "/products/"+uuid.NewString()+"/sizes", `{"sizes":[]}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d", w.Code)
	}
	if apperr.KindOf(prod.ErrNotFound) != apperr.KindNotFound {
		t.Fatalf("ErrNotFound debe mapear a not_found")
	}
}
