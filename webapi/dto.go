package webapi

// LoginRequest represents the request body for logging into an account.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      int    `json:"pin" validate:"required,gt=0"`
}

// TransferRequest represents the request body for transferring funds to
// another account.
type TransferRequest struct {
	To     string  `json:"to" validate:"required"`
	Amount float64 `json:"amount" validate:"required"`
}

// LoanRequest represents the request body for requesting a loan.
type LoanRequest struct {
	Amount float64 `json:"amount" validate:"required"`
}

// CloseRequest represents the confirmation body for closing the current
// account.
type CloseRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      int    `json:"pin" validate:"required,gt=0"`
}

// SortResponse reports the sorted display flag after a toggle.
type SortResponse struct {
	Sorted bool `json:"sorted"`
}
