// Package mocks provides centralized mock implementations for testing.
//
// Two styles are available. Function-field mocks (MockAccountStore,
// MockRegistrationService) have a working default and let a test override a
// single method:
//
//	accounts := mocks.NewMockAccountStore()
//	accounts.CreateFn = func(ctx context.Context, a *domain.Account) (domain.AccountID, error) {
//	    return domain.AccountID{}, errors.New("connection reset")
//	}
//
// TestifyMockAccountStore is a github.com/stretchr/testify/mock mock for tests
// that need call expectations.
package mocks
