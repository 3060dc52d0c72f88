package api

// CreateAccountRequest defines the payload for the account registration endpoint.
// Only presence is checked here; the domain applies the real rules.
type CreateAccountRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"required"`
}

// CreateAccountResponse is returned with 201 Created.
type CreateAccountResponse struct {
	ID string `json:"id"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
