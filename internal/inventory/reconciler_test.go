package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/metric"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// memStore keeps sizes per product. failInsert makes InsertSizes fail after
// deletes and updates already ran, to prove the rollback.
type memStore struct {
	mu         sync.Mutex
	products   map[string]bool
	sizes      map[string]map[string]int
	failInsert bool
}

func newMemStore() *memStore {
	return &memStore{products: map[string]bool{}, sizes: map[string]map[string]int{}}
}

func (m *memStore) snapshot() map[string]map[string]int {
	out := make(map[string]map[string]int, len(m.sizes))
	for p, rows := range m.sizes {
		cp := make(map[string]int, len(rows))
		for v, n := range rows {
			cp[v] = n
		}
		out[p] = cp
	}
	return out
}

func (m *memStore) LockProduct(_ context.Context, _ postgres.QueryExecuter, id string) error {
	if !m.products[id] {
		return apperr.ErrDataNotFound
	}
	return nil
}

func (m *memStore) ProductExists(ctx context.Context, q postgres.QueryExecuter, id string) error {
	return m.LockProduct(ctx, q, id)
}

func (m *memStore) ListSizes(_ context.Context, _ postgres.QueryExecuter, id string) ([]Size, error) {
	out := []Size{}
	for v, n := range m.sizes[id] {
		out = append(out, Size{ProductID: id, Value: v, Inventory: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}

func (m *memStore) InsertSizes(_ context.Context, _ postgres.QueryExecuter, sizes []Size) error {
	if len(sizes) == 0 {
		return nil
	}
	if m.failInsert {
		return errors.New("connection reset by peer")
	}
	for _, s := range sizes {
		if _, dup := m.sizes[s.ProductID][s.Value]; dup {
			return errors.New("duplicate key value violates unique constraint")
		}
		if m.sizes[s.ProductID] == nil {
			m.sizes[s.ProductID] = map[string]int{}
		}
		m.sizes[s.ProductID][s.Value] = s.Inventory
	}
	return nil
}

func (m *memStore) UpdateSize(_ context.Context, _ postgres.QueryExecuter, s Size) error {
	if _, ok := m.sizes[s.ProductID][s.Value]; !ok {
		return errors.New("no row")
	}
	m.sizes[s.ProductID][s.Value] = s.Inventory
	return nil
}

func (m *memStore) DeleteSizes(_ context.Context, _ postgres.QueryExecuter, id string, values []string) error {
	for _, v := range values {
		delete(m.sizes[id], v)
	}
	return nil
}

// memTx restores the store snapshot when fn fails, like a rollback.
type memTx struct {
	store *memStore
	calls int
}

func (t *memTx) ExecuteInTransaction(_ context.Context, _ string, fn func(tx postgres.QueryExecuter) error) error {
	t.calls++
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	before := t.store.snapshot()
	if err := fn(nil); err != nil {
		t.store.sizes = before
		return err
	}
	return nil
}

type ReconcilerSuite struct {
	suite.Suite
	store *memStore
	tx    *memTx
	rec   *Reconciler
}

func (s *ReconcilerSuite) SetupTest() {
	s.store = newMemStore()
	s.store.products[pid] = true
	s.store.sizes[pid] = map[string]int{"M": 5, "L": 3}
	s.tx = &memTx{store: s.store}
	s.rec = NewReconciler(s.tx, s.store, nil, logger.NewNop(), metric.NewFactory().Inventory())
}

func (s *ReconcilerSuite) TestReconcile_EndToEnd() {
	res, err := s.rec.Reconcile(context.Background(), pid, []SizeSpec{{"M", 5}, {"L", 10}, {"XL", 2}})
	s.Require().NoError(err)

	s.Equal([]Size{
		{ProductID: pid, Value: "L", Inventory: 10},
		{ProductID: pid, Value: "M", Inventory: 5},
		{ProductID: pid, Value: "XL", Inventory: 2},
	}, res.Sizes)
	s.Equal(1, res.Created)
	s.Equal(1, res.Updated)
	s.Equal(0, res.Deleted)
	s.Equal(1, res.Unchanged)
}

func (s *ReconcilerSuite) TestReconcile_Idempotent() {
	desired := []SizeSpec{{"S", 1}, {"M", 4}}

	first, err := s.rec.Reconcile(context.Background(), pid, desired)
	s.Require().NoError(err)
	second, err := s.rec.Reconcile(context.Background(), pid, desired)
	s.Require().NoError(err)

	s.Equal(first.Sizes, second.Sizes)
	s.Zero(second.Created + second.Updated + second.Deleted)
	s.Equal(2, second.Unchanged)
}

func (s *ReconcilerSuite) TestReconcile_EmptyDesiredRemovesAll() {
	res, err := s.rec.Reconcile(context.Background(), pid, []SizeSpec{})
	s.Require().NoError(err)

	s.Empty(res.Sizes)
	s.Equal(2, res.Deleted)
	s.Empty(s.store.sizes[pid])
}

func (s *ReconcilerSuite) TestReconcile_DuplicateRejectedBeforeTransaction() {
	_, err := s.rec.Reconcile(context.Background(), pid, []SizeSpec{{"M", 1}, {"m", 2}})

	s.Require().ErrorIs(err, apperr.ErrDuplicateSize)
	s.Equal(apperr.KindConflict, apperr.KindOf(err))
	s.Zero(s.tx.calls)
	s.Equal(map[string]int{"M": 5, "L": 3}, s.store.sizes[pid])
}

func (s *ReconcilerSuite) TestReconcile_UnknownProduct() {
	_, err := s.rec.Reconcile(context.Background(), "00000000-0000-0000-0000-000000000000", []SizeSpec{{"M", 1}})

	s.Require().ErrorIs(err, apperr.ErrDataNotFound)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *ReconcilerSuite) TestReconcile_FailureRollsBackEverything() {
	s.store.failInsert = true

	_, err := s.rec.Reconcile(context.Background(), pid, []SizeSpec{{"L", 9}, {"XXL", 1}})

	s.Require().ErrorIs(err, apperr.ErrPersistence)
	s.True(apperr.Retryable(err))
	s.Equal(map[string]int{"M": 5, "L": 3}, s.store.sizes[pid])
}

func (s *ReconcilerSuite) TestList() {
	sizes, err := s.rec.List(context.Background(), pid)
	s.Require().NoError(err)
	s.Len(sizes, 2)

	s.store.products["empty"] = true
	sizes, err = s.rec.List(context.Background(), "empty")
	s.Require().NoError(err)
	s.Empty(sizes)

	_, err = s.rec.List(context.Background(), "missing")
	s.ErrorIs(err, apperr.ErrDataNotFound)
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func TestDiffEmpty(t *testing.T) {
	assert.True(t, Diff{Unchanged: 3}.Empty())
	assert.False(t, Diff{Delete: []Size{{Value: "M"}}}.Empty())
}
