package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/store"
)

// MockAccountStore implements store.AccountStore for testing. Without
// function fields it behaves like a real store: accounts are kept in memory
// and usernames are unique.
type MockAccountStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, account *domain.Account) (domain.AccountID, error)
	FindByUsernameFn func(ctx context.Context, username domain.Username) (*domain.Account, error)

	// Data for default implementation
	CreateError         error
	FindByUsernameError error

	mu       sync.RWMutex
	accounts map[string]*domain.Account
	calls    int
}

// NewMockAccountStore creates a new mock store with initialized defaults
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// Create implements the AccountStore interface
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) (domain.AccountID, error) {
	m.recordCall()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}
	if m.CreateError != nil {
		return domain.AccountID{}, m.CreateError
	}
	if err := ctx.Err(); err != nil {
		return domain.AccountID{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := account.Username().String()
	if _, exists := m.accounts[key]; exists {
		return domain.AccountID{}, store.ErrUsernameExists
	}
	m.accounts[key] = account
	return account.ID(), nil
}

// FindByUsername implements the AccountStore interface
func (m *MockAccountStore) FindByUsername(ctx context.Context, username domain.Username) (*domain.Account, error) {
	m.recordCall()
	if m.FindByUsernameFn != nil {
		return m.FindByUsernameFn(ctx, username)
	}
	if m.FindByUsernameError != nil {
		return nil, m.FindByUsernameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	account, exists := m.accounts[username.String()]
	if !exists {
		return nil, store.ErrAccountNotFound
	}
	return account, nil
}

// Put stores an account directly, bypassing Create.
func (m *MockAccountStore) Put(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.Username().String()] = account
}

// Len returns the number of stored accounts.
func (m *MockAccountStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

// Calls returns how many times any store method was invoked.
func (m *MockAccountStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

func (m *MockAccountStore) recordCall() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}
