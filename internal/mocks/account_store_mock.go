package mocks

import (
	"context"

	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockAccountStore is a mock of store.AccountStore interface for use with testify/mock
type TestifyMockAccountStore struct {
	mock.Mock
}

var _ store.AccountStore = (*TestifyMockAccountStore)(nil)

// Create is a mock implementation of store.AccountStore.Create
func (m *TestifyMockAccountStore) Create(ctx context.Context, account *domain.Account) (domain.AccountID, error) {
	args := m.Called(ctx, account)
	if id, ok := args.Get(0).(domain.AccountID); ok {
		return id, args.Error(1)
	}
	return domain.AccountID{}, args.Error(1)
}

// FindByUsername is a mock implementation of store.AccountStore.FindByUsername
func (m *TestifyMockAccountStore) FindByUsername(
	ctx context.Context,
	username domain.Username,
) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}
