package account

import "errors"

var (
	// ErrAuthenticationFailed is returned when a login attempt fails.
	// Unknown username and wrong PIN are deliberately indistinguishable.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotAuthenticated is returned when an operation requires a logged-in account.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAmountNotPositive is returned when a transaction amount is zero, negative or not finite.
	ErrAmountNotPositive = errors.New("amount must be a positive finite number")

	// ErrInsufficientFunds is returned when an account's balance cannot cover a transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrReceiverNotFound is returned when a transfer receiver cannot be found.
	ErrReceiverNotFound = errors.New("receiver account not found")

	// ErrSameAccount is returned when a transfer is attempted from an account to itself.
	ErrSameAccount = errors.New("cannot transfer to same account")

	// ErrNoQualifyingDeposit is returned when a loan request has no movement
	// large enough to back it.
	ErrNoQualifyingDeposit = errors.New("no qualifying deposit for requested loan")

	// ErrClosureMismatch is returned when closure confirmation credentials do not
	// match the current account.
	ErrClosureMismatch = errors.New("closure confirmation does not match account")
)
