// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// LoadConfig loads the test configuration and forces the postgres driver.
func LoadConfig(t *testing.T, path string) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(path)
	if err != nil {
		t.Fatalf(`configpkg.Load(%q) returned error: %v`, path, err)
	}

	config.DBDriver = configpkg.DriverPostgres

	return config
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}

// SeedAccount creates an account with a random number and owner and the given balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, balance string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)

	arg := domain.Account{
		Number:  randompkg.AccountNumber(),
		Owner:   randompkg.Owner(),
		Balance: decimal.RequireFromString(balance),
	}

	account, err := accountRepo.Save(context.Background(), arg)
	if err != nil {
		t.Fatalf(`accountRepo.Save(context.Background(), %+v) returned error: %v`, arg, err)
	}

	return account
}
