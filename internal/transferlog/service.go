// Package transferlog manages the audit trail of transfer attempts.
package transferlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by the transfer log.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferlog
type Repo interface {
	Create(ctx context.Context, arg domain.Transfer) (domain.Transfer, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TransferStatus) error
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	List(ctx context.Context) ([]domain.Transfer, error)
}

// Service facilitates transfer log logic.
type Service struct {
	repo Repo
}

// New returns the transfer log service.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Record persists a new PENDING record of a transfer attempt.
func (s *Service) Record(ctx context.Context, from, to string, amount decimal.Decimal) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	arg := domain.Transfer{
		FromAccountNumber: from,
		ToAccountNumber:   to,
		Amount:            amount,
		Status:            domain.StatusPending,
	}

	t, err := s.repo.Create(ctx, arg)
	if err != nil {
		l.Error().Err(err).Msgf("cannot record transfer %s -> %s", from, to)
		return domain.Transfer{}, &domain.PersistenceError{Cause: err}
	}

	l.Debug().Int64("transfer_id", t.ID).Msg("transfer recorded")

	return t, nil
}

// UpdateStatus transitions the record with the given id to status.
//
// It fails with domain.ErrRecordNotFound for an unknown id and with *domain.PersistenceError
// on every other store failure.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.TransferStatus) error {
	l := zerolog.Ctx(ctx)

	if !status.Valid() {
		return fmt.Errorf("unknown transfer status %q", status)
	}

	err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrRecordNotFound
		}

		l.Error().Err(err).Int64("transfer_id", id).Str("status", string(status)).Msg("cannot update transfer status")

		return &domain.PersistenceError{Cause: err}
	}

	return nil
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Transfer{}, domain.ErrRecordNotFound
		}

		return domain.Transfer{}, &domain.PersistenceError{Cause: err}
	}

	return t, nil
}

// ListAll returns every record, the most recent first.
func (s *Service) ListAll(ctx context.Context) ([]domain.Transfer, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Cause: err}
	}

	return items, nil
}
