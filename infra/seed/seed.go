// Package seed loads the account seed data the store is populated from at
// startup. A default data set ships embedded in the binary; a JSON file can
// override it via configuration. Usernames are always derived from the owner
// name, never supplied.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anshusinha/bankist/pkg/domain/account"
	"github.com/go-playground/validator/v10"
)

//go:embed accounts.json
var defaultSeed []byte

// Record is one account in the seed file.
type Record struct {
	Owner        string    `json:"owner" validate:"required"`
	Movements    []float64 `json:"movements" validate:"required,min=1"`
	InterestRate float64   `json:"interest_rate" validate:"gte=0"`
	PIN          int       `json:"pin" validate:"required,gt=0"`
}

// Load returns the seeded accounts. An empty path selects the embedded
// default seed.
func Load(path string) ([]*account.Account, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates seed records, then builds the accounts in
// order.
func Parse(data []byte) ([]*account.Account, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("seed data contains no accounts")
	}

	validate := validator.New()
	accounts := make([]*account.Account, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
		a, err := account.New().
			WithOwner(rec.Owner).
			WithMovements(rec.Movements).
			WithInterestRate(rec.InterestRate).
			WithPIN(rec.PIN).
			Build()
		if err != nil {
			return nil, fmt.Errorf("seed record %d (%s): %w", i, rec.Owner, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}
