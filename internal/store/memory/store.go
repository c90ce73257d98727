// Package memory is an in-process implementation of every repository and of
// the transaction manager. It backs STORE_DRIVER=memory and the test suites.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type txKey struct{}

// Store serialises transactions behind a single mutex. A failed transaction
// restores the snapshot taken when it began.
type Store struct {
	mu sync.Mutex

	products     map[string]model.Product
	productOrder []string
	categories   map[string]model.Category
	ledger       []model.InventoryLog
	sales        map[string]model.Sale
	saleOrder    []string
	activity     []model.ActivityLog
	users        map[string]model.User
}

func NewStore() *Store {
	return &Store{
		products:   map[string]model.Product{},
		categories: map[string]model.Category{},
		sales:      map[string]model.Sale{},
		users:      map[string]model.User{},
	}
}

type snapshot struct {
	products     map[string]model.Product
	productOrder []string
	categories   map[string]model.Category
	ledgerLen    int
	sales        map[string]model.Sale
	saleOrder    []string
	activityLen  int
	users        map[string]model.User
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:     make(map[string]model.Product, len(s.products)),
		productOrder: append([]string(nil), s.productOrder...),
		categories:   make(map[string]model.Category, len(s.categories)),
		ledgerLen:    len(s.ledger),
		sales:        make(map[string]model.Sale, len(s.sales)),
		saleOrder:    append([]string(nil), s.saleOrder...),
		activityLen:  len(s.activity),
		users:        make(map[string]model.User, len(s.users)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.categories {
		snap.categories[k] = v
	}
	for k, v := range s.sales {
		snap.sales[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.productOrder = snap.productOrder
	s.categories = snap.categories
	s.ledger = s.ledger[:snap.ledgerLen]
	s.sales = snap.sales
	s.saleOrder = snap.saleOrder
	s.activity = s.activity[:snap.activityLen]
	s.users = snap.users
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock takes the store mutex unless ctx already runs inside one of its transactions.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// AddUser seeds an employee account.
func (s *Store) AddUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) Products() *ProductRepository    { return &ProductRepository{s: s} }
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }
func (s *Store) Ledger() *LedgerRepository       { return &LedgerRepository{s: s} }
func (s *Store) Sales() *SaleRepository          { return &SaleRepository{s: s} }
func (s *Store) Activity() *ActivityRepository   { return &ActivityRepository{s: s} }
func (s *Store) Users() *UserRepository          { return &UserRepository{s: s} }

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func inRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// newestFirst orders by createdAt descending, most recently inserted first on ties.
func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
