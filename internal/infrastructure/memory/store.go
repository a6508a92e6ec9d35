// Package memory is an in-process implementation of the persistence ports,
// for development and tests. It keeps the same transactional semantics as
// the PostgreSQL store: all-or-nothing commits, a single writer at a time
// and domain.ErrContention when the lock wait budget runs out.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

const (
	lockRetryInterval = 2 * time.Millisecond
	lockWaitBudget    = 3 * time.Second
)

type stockKey struct {
	AssetID string
	BaseID  string
}

// data is the whole dataset. Transactions mutate a deep copy and swap it
// in on commit.
type data struct {
	bases        map[string]entity.Base
	assets       map[string]entity.Asset
	stocks       map[stockKey]entity.Stock
	purchases    []entity.Purchase
	transfers    []entity.Transfer
	expenditures []entity.Expenditure
	assignments  map[string]entity.Assignment
	users        map[string]entity.User
}

func newData() data {
	return data{
		bases:       make(map[string]entity.Base),
		assets:      make(map[string]entity.Asset),
		stocks:      make(map[stockKey]entity.Stock),
		assignments: make(map[string]entity.Assignment),
		users:       make(map[string]entity.User),
	}
}

func (d *data) clone() data {
	c := data{
		bases:        make(map[string]entity.Base, len(d.bases)),
		assets:       make(map[string]entity.Asset, len(d.assets)),
		stocks:       make(map[stockKey]entity.Stock, len(d.stocks)),
		purchases:    append([]entity.Purchase(nil), d.purchases...),
		transfers:    append([]entity.Transfer(nil), d.transfers...),
		expenditures: append([]entity.Expenditure(nil), d.expenditures...),
		assignments:  make(map[string]entity.Assignment, len(d.assignments)),
		users:        make(map[string]entity.User, len(d.users)),
	}
	for k, v := range d.bases {
		c.bases[k] = v
	}
	for k, v := range d.assets {
		c.assets[k] = v
	}
	for k, v := range d.stocks {
		c.stocks[k] = v
	}
	for k, v := range d.assignments {
		if v.ExpendedAt != nil {
			t := *v.ExpendedAt
			v.ExpendedAt = &t
		}
		c.assignments[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	return c
}

// Store holds the dataset behind one mutex. Writers (transactions) hold
// it for their whole span; readers lock per call.
type Store struct {
	mu         sync.Mutex
	d          data
	lockBudget time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLockWaitBudget overrides how long a caller waits for the store lock
// before failing with ErrContention.
func WithLockWaitBudget(d time.Duration) StoreOption {
	return func(s *Store) { s.lockBudget = d }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{d: newData(), lockBudget: lockWaitBudget}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// acquire takes the store lock with a bounded wait, so a stuck writer
// surfaces as contention instead of blocking callers forever.
func (s *Store) acquire(ctx context.Context) error {
	deadline := time.Now().Add(s.lockBudget)
	for {
		if s.mu.TryLock() {
			return nil
		}
		if time.Now().After(deadline) {
			return domain.ErrContention
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// Run executes fn against a copy of the dataset and swaps it in on
// success.
func (s *Store) Run(ctx context.Context, fn func(
	assets repository.AssetRepository,
	stocks repository.StockRepository,
	purchases repository.PurchaseRepository,
	transfers repository.TransferRepository,
	expenditures repository.ExpenditureRepository,
) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	tx := s.d.clone()
	err := fn(
		&AssetRepo{session{d: &tx}},
		&StockRepo{session{d: &tx}},
		&PurchaseRepo{session{d: &tx}},
		&TransferRepo{session{d: &tx}},
		&ExpenditureRepo{session{d: &tx}},
	)
	if err != nil {
		return err
	}
	s.d = tx
	return nil
}

// RunAssignment executes fn scoped to assets and assignments.
func (s *Store) RunAssignment(ctx context.Context, fn func(
	assets repository.AssetRepository,
	assignments repository.AssignmentRepository,
) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	tx := s.d.clone()
	if err := fn(&AssetRepo{session{d: &tx}}, &AssignmentRepo{session{d: &tx}}); err != nil {
		return err
	}
	s.d = tx
	return nil
}

// session binds a repo either to a live transaction (d set) or to the
// store itself, locking per call.
type session struct {
	s *Store
	d *data
}

func (x session) with(ctx context.Context, fn func(*data) error) error {
	if x.d != nil {
		return fn(x.d)
	}
	if err := x.s.acquire(ctx); err != nil {
		return err
	}
	defer x.s.mu.Unlock()
	return fn(&x.s.d)
}

// Repository accessors for use outside transactions.

func (s *Store) Bases() *BaseRepo               { return &BaseRepo{session{s: s}} }
func (s *Store) Assets() *AssetRepo             { return &AssetRepo{session{s: s}} }
func (s *Store) Stocks() *StockRepo             { return &StockRepo{session{s: s}} }
func (s *Store) Purchases() *PurchaseRepo       { return &PurchaseRepo{session{s: s}} }
func (s *Store) Transfers() *TransferRepo       { return &TransferRepo{session{s: s}} }
func (s *Store) Expenditures() *ExpenditureRepo { return &ExpenditureRepo{session{s: s}} }
func (s *Store) Assignments() *AssignmentRepo   { return &AssignmentRepo{session{s: s}} }
func (s *Store) Users() *UserRepo               { return &UserRepo{session{s: s}} }
func (s *Store) Analytics() *AnalyticsRepo      { return &AnalyticsRepo{session{s: s}} }
