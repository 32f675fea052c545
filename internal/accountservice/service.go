// Package accountservice manages the account ledger: the authoritative accessor and mutator of balances.
package accountservice

import (
	"context"
	"errors"
	"strings"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Save(ctx context.Context, a domain.Account) (domain.Account, error)
	Get(ctx context.Context, number string) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage the ledger.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Open creates an account with the given number, owner and initial balance.
func (s *Service) Open(ctx context.Context, arg domain.OpenAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	number := strings.TrimSpace(arg.Number)
	if number == "" {
		return domain.Account{}, domain.ErrInvalidAccountNumber
	}

	balance, err := domain.ParseBalance(arg.Balance)
	if err != nil {
		l.Info().Err(err).Str("balance", arg.Balance).Send()
		return domain.Account{}, err
	}

	account := domain.Account{
		Number:  number,
		Owner:   arg.Owner,
		Balance: balance,
	}

	return s.Save(ctx, account)
}

// Get returns the account with the given number.
func (s *Service) Get(ctx context.Context, number string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, &domain.AccountNotFoundError{AccountNumber: number}
		}

		return domain.Account{}, &domain.PersistenceError{Cause: err}
	}

	return account, nil
}

// GetByID returns the account with the given storage id.
func (s *Service) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, &domain.AccountNotFoundError{ID: id}
		}

		return domain.Account{}, &domain.PersistenceError{Cause: err}
	}

	return account, nil
}

// List returns a snapshot of all accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Cause: err}
	}

	return accounts, nil
}

// Save upserts the account and returns it as stored.
//
// Every store failure, including a duplicate account number, is a *domain.PersistenceError.
func (s *Service) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if a.Balance.IsNegative() {
		return domain.Account{}, &domain.PersistenceError{Cause: domain.ErrNegativeBalance}
	}

	saved, err := s.repo.Save(ctx, a)
	if err != nil {
		l.Error().Err(err).Str("account", a.Number).Msg("cannot save account")
		return domain.Account{}, &domain.PersistenceError{Cause: err}
	}

	return saved, nil
}
