// Package repository provides the in-memory account store. Accounts are
// seeded once at startup and only ever removed at runtime (closure); there is
// no create-at-runtime path.
package repository

import (
	"github.com/anshusinha/bankist/pkg/domain/account"
)

// AccountStore defines lookup and removal over the seeded account set.
type AccountStore interface {
	FindByUsername(username string) (*account.Account, error)
	IndexByUsername(username string) int
	Remove(username string) error
	List() []*account.Account
	Len() int
}

// InMemoryStore is an ordered, in-memory AccountStore. Order follows the seed
// data; usernames are unique after derivation (collisions in seed data are
// not detected, matching the reference behavior).
type InMemoryStore struct {
	accounts []*account.Account
}

// NewInMemoryStore creates a store over the given accounts. The slice is
// copied; the accounts themselves are shared, since the session layer borrows
// them for mutation.
func NewInMemoryStore(accounts []*account.Account) *InMemoryStore {
	s := &InMemoryStore{accounts: make([]*account.Account, len(accounts))}
	copy(s.accounts, accounts)
	return s
}

// FindByUsername returns the account with the given username, or
// ErrAccountNotFound. Linear scan; the store is small by design.
func (s *InMemoryStore) FindByUsername(username string) (*account.Account, error) {
	for _, a := range s.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

// IndexByUsername returns the position of the account with the given
// username, or -1 if absent.
func (s *InMemoryStore) IndexByUsername(username string) int {
	for i, a := range s.accounts {
		if a.Username == username {
			return i
		}
	}
	return -1
}

// Remove deletes the account with the given username, preserving the order of
// the remaining accounts. Returns ErrAccountNotFound if absent.
func (s *InMemoryStore) Remove(username string) error {
	i := s.IndexByUsername(username)
	if i < 0 {
		return account.ErrAccountNotFound
	}
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	return nil
}

// List returns the accounts in seed order. The returned slice is a copy; the
// accounts are the live instances.
func (s *InMemoryStore) List() []*account.Account {
	out := make([]*account.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Len returns the number of accounts currently in the store.
func (s *InMemoryStore) Len() int {
	return len(s.accounts)
}
