// Package transferservice manages the transfer orchestrator: the only entry point that moves funds.
package transferservice

import (
	"context"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/lockpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Ledger provides the account accessor and mutator needed by the orchestrator.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Ledger interface {
	Get(ctx context.Context, number string) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) (domain.Account, error)
}

// Log provides the audit trail needed by the orchestrator.
type Log interface {
	Record(ctx context.Context, from, to string, amount decimal.Decimal) (domain.Transfer, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TransferStatus) error
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	ListAll(ctx context.Context) ([]domain.Transfer, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	ledger Ledger
	log    Log
	locks  lockpkg.Keyed
}

// New returns the transfer orchestrator.
func New(ledger Ledger, log Log) *Service {
	return &Service{
		ledger: ledger,
		log:    log,
	}
}

// Transfer moves arg.Amount from one account to another.
//
// Every call with a valid amount leaves exactly one record in the log. The record is
// finalized before Transfer returns unless ctx is done first, in which case it stays PENDING.
// The accounts are locked in ascending number order from before they are loaded until
// both are saved. A transfer to the same account is checked for funds and succeeds
// without changing the balance.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	amount, err := domain.ParseAmount(arg.Amount)
	if err != nil {
		l.Info().Err(err).Str("amount", arg.Amount).Send()
		return domain.TransferTxResult{}, err
	}

	from, to := arg.FromAccountNumber, arg.ToAccountNumber

	record, err := s.log.Record(ctx, from, to, amount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	result := domain.TransferTxResult{Transfer: record}

	l = withTransfer(l, record)

	unlock, err := s.locks.Lock(ctx, from, to)
	if err != nil {
		l.Warn().Err(err).Msg("transfer left pending")
		return result, &domain.SystemError{Cause: err}
	}
	defer unlock()

	fromAccount, err := s.ledger.Get(ctx, from)
	if err != nil {
		status, cause := lookupFailure(err)
		return s.fail(ctx, result, status, cause)
	}

	toAccount := fromAccount
	if to != from {
		toAccount, err = s.ledger.Get(ctx, to)
		if err != nil {
			status, cause := lookupFailure(err)
			return s.fail(ctx, result, status, cause)
		}
	}

	if fromAccount.Balance.LessThan(amount) {
		return s.fail(ctx, result, domain.StatusFailedInsufficientFunds, &domain.InsufficientFundsError{
			AccountNumber: from,
			Requested:     amount,
			Available:     fromAccount.Balance,
		})
	}

	if from == to {
		// Debit and credit cancel out, nothing to save.
		result.FromAccount, result.ToAccount = fromAccount, fromAccount
	} else {
		fromAccount.Balance = fromAccount.Balance.Sub(amount)
		toAccount.Balance = toAccount.Balance.Add(amount)

		result.FromAccount, err = s.ledger.Save(ctx, fromAccount)
		if err != nil {
			return s.fail(ctx, result, domain.StatusFailedSystemError, &domain.SystemError{Cause: err})
		}

		result.ToAccount, err = s.ledger.Save(ctx, toAccount)
		if err != nil {
			l.Error().Err(err).Str("account", from).Msg("source debited but destination not credited")
			return s.fail(ctx, result, domain.StatusFailedSystemError, &domain.SystemError{Cause: err})
		}
	}

	if err := s.log.UpdateStatus(ctx, record.ID, domain.StatusSuccess); err != nil {
		l.Error().Err(err).Msg("balances moved but transfer not finalized")
		return result, &domain.SystemError{Cause: err}
	}

	result.Transfer.Status = domain.StatusSuccess

	l.Info().Msg("transfer succeeded")

	return result, nil
}

// Get returns the transfer record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	return s.log.Get(ctx, id)
}

// History returns every transfer record, the most recent first.
func (s *Service) History(ctx context.Context) ([]domain.Transfer, error) {
	return s.log.ListAll(ctx)
}

// fail finalizes the record with status and returns cause.
//
// When the record cannot be finalized the returned error is a *domain.SystemError
// joining cause and the log failure.
func (s *Service) fail(
	ctx context.Context, result domain.TransferTxResult, status domain.TransferStatus, cause error,
) (domain.TransferTxResult, error) {
	l := withTransfer(zerolog.Ctx(ctx), result.Transfer)

	if ctxErr := ctx.Err(); ctxErr != nil {
		l.Warn().Err(cause).Msg("transfer left pending")
		return result, escalate(cause, ctxErr)
	}

	if err := s.log.UpdateStatus(ctx, result.Transfer.ID, status); err != nil {
		l.Error().Err(err).AnErr("cause", cause).Msg("cannot finalize failed transfer")
		return result, escalate(cause, err)
	}

	result.Transfer.Status = status

	l.Info().Err(cause).Str("status", string(status)).Msg("transfer failed")

	return result, cause
}

func lookupFailure(err error) (domain.TransferStatus, error) {
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.StatusFailedAccountNotFound, err
	}

	return domain.StatusFailedSystemError, &domain.SystemError{Cause: err}
}

func escalate(cause, err error) error {
	if sysErr, ok := cause.(*domain.SystemError); ok {
		cause = sysErr.Cause
	}

	return &domain.SystemError{Cause: errors.Join(cause, err)}
}

func withTransfer(l *zerolog.Logger, t domain.Transfer) *zerolog.Logger {
	logger := l.With().
		Int64("transfer_id", t.ID).
		Str("from", t.FromAccountNumber).
		Str("to", t.ToAccountNumber).
		Str("amount", t.Amount.StringFixed(2)).
		Logger()

	return &logger
}
