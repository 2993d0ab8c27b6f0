// Package account defines the core domain model: the Account aggregate, its
// derived username, the pure ledger computations over movement histories and
// the domain error variables shared by the service and web layers.
package account

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Account represents a bank account with its full movement history.
//
// Invariants:
//   - Owner is set at construction and never changes.
//   - Username is derived from Owner and is stable for the account's lifetime.
//   - Movements is append-only; every entry is a non-zero finite number.
//   - Balance is always derived from Movements, never stored.
type Account struct {
	ID           uuid.UUID
	Owner        string
	Username     string
	Movements    []float64
	InterestRate float64 // percent, display-only interest
	PIN          int
}

// DeriveUsername maps an owner's full name to its login key: the first rune
// of each whitespace-separated part, lowercased, concatenated in order.
// Empty parts (double spaces) are skipped rather than faulting.
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, part := range strings.Fields(owner) {
		r := []rune(part)[0]
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Builder constructs Account instances, deriving the username and validating
// invariants before the account enters the store.
type Builder struct {
	id           uuid.UUID
	owner        string
	movements    []float64
	interestRate float64
	pin          int
}

// New creates a new Builder with a fresh UUID.
func New() *Builder {
	return &Builder{id: uuid.New()}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithOwner sets the owner's full display name. This is a mandatory field.
func (b *Builder) WithOwner(owner string) *Builder {
	b.owner = owner
	return b
}

// WithMovements sets the seeded movement history.
func (b *Builder) WithMovements(movements []float64) *Builder {
	b.movements = movements
	return b
}

// WithInterestRate sets the account's interest rate in percent.
func (b *Builder) WithInterestRate(rate float64) *Builder {
	b.interestRate = rate
	return b
}

// WithPIN sets the numeric login credential.
func (b *Builder) WithPIN(pin int) *Builder {
	b.pin = pin
	return b
}

// Build validates all invariants and returns the new Account. The username is
// derived here, once, and a defensive copy of the movements is taken so the
// account owns its history.
func (b *Builder) Build() (*Account, error) {
	if strings.TrimSpace(b.owner) == "" {
		return nil, errors.New("owner is required")
	}
	if b.pin <= 0 {
		return nil, errors.New("pin must be a positive number")
	}
	for _, m := range b.movements {
		if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return nil, errors.New("movements must be non-zero finite numbers")
		}
	}
	movs := make([]float64, len(b.movements))
	copy(movs, b.movements)
	return &Account{
		ID:           b.id,
		Owner:        b.owner,
		Username:     DeriveUsername(b.owner),
		Movements:    movs,
		InterestRate: b.interestRate,
		PIN:          b.pin,
	}, nil
}

// FirstName returns the owner's first name, used for welcome messages.
func (a *Account) FirstName() string {
	parts := strings.Fields(a.Owner)
	if len(parts) == 0 {
		return a.Owner
	}
	return parts[0]
}

// Balance returns the account's derived balance.
func (a *Account) Balance() float64 {
	return Balance(a.Movements)
}
