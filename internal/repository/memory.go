package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/models"
)

// MemoryStore is an in-process Store. Transactions are serialized: InTx
// holds the store lock, works on a copy of the data and swaps the copy in
// only when the callback succeeds.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
	now   func() time.Time
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: newMemState(),
		now:   time.Now,
	}
}

// memState holds rows by value so that callers never share memory with the store
type memState struct {
	customers    table[models.Customer]
	accounts     table[models.Account]
	cards        table[models.Card]
	transactions table[models.TransactionHistory]
}

func newMemState() *memState {
	return &memState{
		customers:    newTable[models.Customer](),
		accounts:     newTable[models.Account](),
		cards:        newTable[models.Card](),
		transactions: newTable[models.TransactionHistory](),
	}
}

func (s *memState) clone() *memState {
	return &memState{
		customers:    s.customers.clone(),
		accounts:     s.accounts.clone(),
		cards:        s.cards.clone(),
		transactions: s.transactions.clone(),
	}
}

// table keeps rows in insertion order
type table[T any] struct {
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[uuid.UUID]T)}
}

func (t table[T]) clone() table[T] {
	c := table[T]{
		rows:  make(map[uuid.UUID]T, len(t.rows)),
		order: make([]uuid.UUID, len(t.order)),
	}
	for id, row := range t.rows {
		c.rows[id] = row
	}
	copy(c.order, t.order)
	return c
}

func (t *table[T]) get(id uuid.UUID) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (t *table[T]) first(match func(*T) bool) (*T, error) {
	for _, id := range t.order {
		row := t.rows[id]
		if match(&row) {
			return &row, nil
		}
	}
	return nil, ErrNotFound
}

func (t *table[T]) filter(match func(*T) bool) []*T {
	result := make([]*T, 0)
	for _, id := range t.order {
		row := t.rows[id]
		if match == nil || match(&row) {
			result = append(result, &row)
		}
	}
	return result
}

func (t *table[T]) insert(id uuid.UUID, row T) error {
	if _, exists := t.rows[id]; exists {
		return fmt.Errorf("duplicate id %s", id)
	}
	t.rows[id] = row
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) update(id uuid.UUID, row T) error {
	if _, exists := t.rows[id]; !exists {
		return ErrNotFound
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) delete(id uuid.UUID) error {
	if _, exists := t.rows[id]; !exists {
		return ErrNotFound
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// memView exposes a memState through the repository interfaces. Outside a
// transaction store is set and every call takes the store lock and reads the
// committed state at that moment; inside InTx the lock is already held and
// state is the transaction's working copy.
type memView struct {
	store *MemoryStore
	state *memState
	now   func() time.Time
}

func (v *memView) do(fn func(s *memState) error) error {
	if v.store != nil {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
		return fn(v.store.state)
	}
	return fn(v.state)
}

func (v *memView) Customers() CustomerRepository       { return memCustomers{v} }
func (v *memView) Accounts() AccountRepository         { return memAccounts{v} }
func (v *memView) Cards() CardRepository               { return memCards{v} }
func (v *memView) Transactions() TransactionRepository { return memTransactions{v} }

func (m *MemoryStore) view() *memView {
	return &memView{store: m, now: m.now}
}

// Customers returns the customer repository
func (m *MemoryStore) Customers() CustomerRepository { return m.view().Customers() }

// Accounts returns the account repository
func (m *MemoryStore) Accounts() AccountRepository { return m.view().Accounts() }

// Cards returns the card repository
func (m *MemoryStore) Cards() CardRepository { return m.view().Cards() }

// Transactions returns the transaction history repository
func (m *MemoryStore) Transactions() TransactionRepository { return m.view().Transactions() }

// InTx runs fn against a private copy of the data and commits it on success
func (m *MemoryStore) InTx(ctx context.Context, fn TxFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := m.state.clone()
	if err := fn(ctx, &memView{state: working, now: m.now}); err != nil {
		return err
	}

	m.state = working
	return nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

// Customers

type memCustomers struct{ v *memView }

func (r memCustomers) Find(_ context.Context, id uuid.UUID) (c *models.Customer, err error) {
	err = r.v.do(func(s *memState) error {
		c, err = s.customers.get(id)
		return err
	})
	return c, err
}

func (r memCustomers) FindByIdentityNumber(_ context.Context, identityNumber string) (c *models.Customer, err error) {
	err = r.v.do(func(s *memState) error {
		c, err = s.customers.first(func(row *models.Customer) bool {
			return row.IdentityNumber == identityNumber
		})
		return err
	})
	return c, err
}

func (r memCustomers) List(_ context.Context) (list []*models.Customer, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.customers.filter(nil)
		return nil
	})
	return list, err
}

func (r memCustomers) Insert(_ context.Context, c *models.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := r.v.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	return r.v.do(func(s *memState) error {
		return s.customers.insert(c.ID, *c)
	})
}

func (r memCustomers) Update(_ context.Context, c *models.Customer) error {
	c.UpdatedAt = r.v.now()
	return r.v.do(func(s *memState) error {
		return s.customers.update(c.ID, *c)
	})
}

func (r memCustomers) Delete(_ context.Context, id uuid.UUID) error {
	return r.v.do(func(s *memState) error {
		return s.customers.delete(id)
	})
}

// Accounts

type memAccounts struct{ v *memView }

func (r memAccounts) Find(_ context.Context, id uuid.UUID) (a *models.Account, err error) {
	err = r.v.do(func(s *memState) error {
		a, err = s.accounts.get(id)
		return err
	})
	return a, err
}

func (r memAccounts) FindByIBAN(_ context.Context, iban string) (a *models.Account, err error) {
	err = r.v.do(func(s *memState) error {
		a, err = s.accounts.first(func(row *models.Account) bool {
			return row.IBAN == iban
		})
		return err
	})
	return a, err
}

func (r memAccounts) List(_ context.Context) (list []*models.Account, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.accounts.filter(nil)
		return nil
	})
	return list, err
}

func (r memAccounts) ListByCustomer(_ context.Context, customerID uuid.UUID) (list []*models.Account, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.accounts.filter(func(row *models.Account) bool {
			return row.CustomerID == customerID
		})
		return nil
	})
	return list, err
}

func (r memAccounts) Insert(_ context.Context, a *models.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.v.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	return r.v.do(func(s *memState) error {
		return s.accounts.insert(a.ID, *a)
	})
}

func (r memAccounts) Update(_ context.Context, a *models.Account) error {
	a.UpdatedAt = r.v.now()
	return r.v.do(func(s *memState) error {
		return s.accounts.update(a.ID, *a)
	})
}

func (r memAccounts) Delete(_ context.Context, id uuid.UUID) error {
	return r.v.do(func(s *memState) error {
		return s.accounts.delete(id)
	})
}

// Cards

type memCards struct{ v *memView }

func (r memCards) Find(_ context.Context, id uuid.UUID) (c *models.Card, err error) {
	err = r.v.do(func(s *memState) error {
		c, err = s.cards.get(id)
		return err
	})
	return c, err
}

func (r memCards) FindByNumber(_ context.Context, number string) (c *models.Card, err error) {
	err = r.v.do(func(s *memState) error {
		c, err = s.cards.first(func(row *models.Card) bool {
			return row.Number == number
		})
		return err
	})
	return c, err
}

func (r memCards) FindDebitByAccount(_ context.Context, accountID uuid.UUID) (c *models.Card, err error) {
	err = r.v.do(func(s *memState) error {
		c, err = s.cards.first(func(row *models.Card) bool {
			return row.AccountID == accountID && row.Type == models.CardTypeDebit
		})
		return err
	})
	return c, err
}

func (r memCards) List(_ context.Context) (list []*models.Card, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.cards.filter(nil)
		return nil
	})
	return list, err
}

func (r memCards) ListByAccount(_ context.Context, accountID uuid.UUID) (list []*models.Card, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.cards.filter(func(row *models.Card) bool {
			return row.AccountID == accountID
		})
		return nil
	})
	return list, err
}

func (r memCards) Insert(_ context.Context, c *models.Card) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := r.v.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	return r.v.do(func(s *memState) error {
		return s.cards.insert(c.ID, *c)
	})
}

func (r memCards) Update(_ context.Context, c *models.Card) error {
	c.UpdatedAt = r.v.now()
	return r.v.do(func(s *memState) error {
		return s.cards.update(c.ID, *c)
	})
}

func (r memCards) Delete(_ context.Context, id uuid.UUID) error {
	return r.v.do(func(s *memState) error {
		return s.cards.delete(id)
	})
}

// Transactions

type memTransactions struct{ v *memView }

func (r memTransactions) Find(_ context.Context, id uuid.UUID) (t *models.TransactionHistory, err error) {
	err = r.v.do(func(s *memState) error {
		t, err = s.transactions.get(id)
		return err
	})
	return t, err
}

func (r memTransactions) List(_ context.Context) (list []*models.TransactionHistory, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.transactions.filter(nil)
		return nil
	})
	return list, err
}

func (r memTransactions) ListByCard(_ context.Context, cardID uuid.UUID) (list []*models.TransactionHistory, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.transactions.filter(func(row *models.TransactionHistory) bool {
			return row.CardID == cardID
		})
		return nil
	})
	return list, err
}

func (r memTransactions) ListByCustomer(_ context.Context, customerID uuid.UUID) (list []*models.TransactionHistory, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.transactions.filter(func(row *models.TransactionHistory) bool {
			return row.CustomerID == customerID
		})
		return nil
	})
	return list, err
}

func (r memTransactions) ListByCardAndDirection(_ context.Context, cardID uuid.UUID, direction models.Direction) (list []*models.TransactionHistory, err error) {
	err = r.v.do(func(s *memState) error {
		list = s.transactions.filter(func(row *models.TransactionHistory) bool {
			return row.CardID == cardID && row.Direction == direction
		})
		return nil
	})
	return list, err
}

func (r memTransactions) Insert(_ context.Context, t *models.TransactionHistory) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = r.v.now()
	}
	return r.v.do(func(s *memState) error {
		return s.transactions.insert(t.ID, *t)
	})
}
