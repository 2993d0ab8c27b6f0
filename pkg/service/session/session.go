// Package session provides the business logic for an authenticated banking
// session: login, transfer, loan request, account closure and the sorted
// display toggle. It owns the session state machine
// (unauthenticated -> authenticated -> unauthenticated on close) and delegates
// all ledger math to the domain package.
//
// Every rule returns a typed domain error on rejection; a rejected operation
// never leaves partial state behind.
package session

import (
	"log/slog"
	"math"
	"sync"

	"github.com/anshusinha/bankist/pkg/domain/account"
	"github.com/anshusinha/bankist/pkg/repository"
)

// loanThreshold is the creditworthiness heuristic: a loan is granted only if
// some past movement exceeds this fraction of the requested amount.
const loanThreshold = 0.1

// Statement is the snapshot a rendering collaborator displays after every
// successful operation. Movements honor the session's sorted flag.
type Statement struct {
	Owner       string    `json:"owner"`
	FirstName   string    `json:"first_name"`
	Username    string    `json:"username"`
	Movements   []float64 `json:"movements"`
	Sorted      bool      `json:"sorted"`
	Balance     float64   `json:"balance"`
	Deposits    float64   `json:"deposits"`
	Withdrawals float64   `json:"withdrawals"`
	Interest    float64   `json:"interest"`
}

// Service holds the single active session over the shared account store.
//
// The domain rules are single-actor, but the HTTP listener serving them is
// not; the mutex serializes access so no caller can observe a half-applied
// transfer.
type Service struct {
	mu      sync.Mutex
	store   repository.AccountStore
	logger  *slog.Logger
	current *account.Account
	sorted  bool
}

// NewService creates a session service over the given store.
func NewService(store repository.AccountStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Login authenticates against the store. Unknown username and wrong PIN are
// reported identically as ErrAuthenticationFailed; on success the session
// becomes authenticated and the fresh statement is returned.
func (s *Service) Login(username string, pin int) (*Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.store.FindByUsername(username)
	if err != nil || a.PIN != pin {
		s.logger.Warn("login rejected", "username", username)
		return nil, account.ErrAuthenticationFailed
	}
	s.current = a
	s.sorted = false
	s.logger.Info("login", "username", a.Username, "owner", a.Owner)
	return s.statement(), nil
}

// Statement returns the current account's statement, or ErrNotAuthenticated.
func (s *Service) Statement() (*Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, account.ErrNotAuthenticated
	}
	return s.statement(), nil
}

// Transfer moves amount from the current account to the named receiver.
// It succeeds only if the session is authenticated, the amount is a positive
// finite number, the receiver exists, the receiver is not the sender and the
// sender's balance covers the amount. On success `-amount` is appended to the
// sender and `+amount` to the receiver; on failure neither account changes.
func (s *Service) Transfer(toUsername string, amount float64) (*Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, account.ErrNotAuthenticated
	}
	if !positiveFinite(amount) {
		return nil, account.ErrAmountNotPositive
	}
	receiver, err := s.store.FindByUsername(toUsername)
	if err != nil {
		return nil, account.ErrReceiverNotFound
	}
	if receiver.Username == s.current.Username {
		return nil, account.ErrSameAccount
	}
	if s.current.Balance() < amount {
		return nil, account.ErrInsufficientFunds
	}

	s.current.Movements = append(s.current.Movements, -amount)
	receiver.Movements = append(receiver.Movements, amount)
	s.logger.Info("transfer",
		"from", s.current.Username,
		"to", receiver.Username,
		"amount", amount,
	)
	return s.statement(), nil
}

// RequestLoan grants a loan if the amount is a positive finite number and
// some past movement strictly exceeds 10% of it. The heuristic is loose on
// purpose; it is preserved exactly as the reference defines it. On success
// the amount is appended as a deposit.
func (s *Service) RequestLoan(amount float64) (*Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, account.ErrNotAuthenticated
	}
	if !positiveFinite(amount) {
		return nil, account.ErrAmountNotPositive
	}
	if !s.hasQualifyingMovement(amount) {
		s.logger.Warn("loan rejected", "username", s.current.Username, "amount", amount)
		return nil, account.ErrNoQualifyingDeposit
	}

	s.current.Movements = append(s.current.Movements, amount)
	s.logger.Info("loan granted", "username", s.current.Username, "amount", amount)
	return s.statement(), nil
}

// Close removes the current account from the store. Both confirmation values
// must match the current account exactly; on success the session returns to
// the unauthenticated state.
func (s *Service) Close(confirmUsername string, confirmPIN int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return account.ErrNotAuthenticated
	}
	if confirmUsername != s.current.Username || confirmPIN != s.current.PIN {
		return account.ErrClosureMismatch
	}
	if err := s.store.Remove(s.current.Username); err != nil {
		return err
	}
	s.logger.Info("account closed", "username", s.current.Username)
	s.current = nil
	s.sorted = false
	return nil
}

// ToggleSort flips the sorted display flag and returns the new value.
func (s *Service) ToggleSort() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false, account.ErrNotAuthenticated
	}
	s.sorted = !s.sorted
	return s.sorted, nil
}

// CurrentAccount returns the authenticated account, or nil.
func (s *Service) CurrentAccount() *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Sorted reports the current display-preference flag.
func (s *Service) Sorted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted
}

// statement builds the display snapshot for the current account.
// Callers must hold s.mu and guarantee s.current != nil.
func (s *Service) statement() *Statement {
	a := s.current
	var movs []float64
	if s.sorted {
		movs = account.SortedView(a.Movements)
	} else {
		movs = make([]float64, len(a.Movements))
		copy(movs, a.Movements)
	}
	return &Statement{
		Owner:       a.Owner,
		FirstName:   a.FirstName(),
		Username:    a.Username,
		Movements:   movs,
		Sorted:      s.sorted,
		Balance:     account.Balance(a.Movements),
		Deposits:    account.TotalDeposits(a.Movements),
		Withdrawals: account.TotalWithdrawals(a.Movements),
		Interest:    account.TotalInterest(a.Movements, a.InterestRate),
	}
}

func (s *Service) hasQualifyingMovement(amount float64) bool {
	for _, m := range s.current.Movements {
		if m > amount*loanThreshold {
			return true
		}
	}
	return false
}

func positiveFinite(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}
