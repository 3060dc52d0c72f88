package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/account-api/internal/domain"
	"github.com/phrazzld/account-api/internal/service"
)

// MockRegistrationService implements service.RegistrationService for
// handler tests. RegisterFn decides the outcome; without it every call
// succeeds with a fresh ID.
type MockRegistrationService struct {
	RegisterFn func(ctx context.Context, input service.RegisterInput) (domain.AccountID, error)

	mu     sync.Mutex
	inputs []service.RegisterInput
}

var _ service.RegistrationService = (*MockRegistrationService)(nil)

// Register implements the RegistrationService interface
func (m *MockRegistrationService) Register(
	ctx context.Context,
	input service.RegisterInput,
) (domain.AccountID, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, input)
	}
	return domain.NewAccountID(), nil
}

// Inputs returns a copy of every input Register received, in call order.
func (m *MockRegistrationService) Inputs() []service.RegisterInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.RegisterInput, len(m.inputs))
	copy(out, m.inputs)
	return out
}
