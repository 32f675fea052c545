// Package main opens a few accounts in memory, runs successful and failing transfers
// between them and logs the balances and the transfer history.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/transferlog"
	"github.com/go-petr/pet-ledger/internal/transferrepo"
	"github.com/go-petr/pet-ledger/internal/transferservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func main() {
	logger := middleware.CreateLogger(configpkg.Config{Environment: "development"})
	ctx := logger.WithContext(context.Background())

	if err := run(ctx); err != nil {
		logger.Error().Err(err).Msg("demo failed")
		os.Exit(1)
	}
}

type demo struct {
	accounts  *accountservice.Service
	transfers *transferservice.Service
}

func run(ctx context.Context) error {
	l := zerolog.Ctx(ctx)

	accounts := accountservice.New(accountrepo.NewRepoMem())
	d := demo{
		accounts:  accounts,
		transfers: transferservice.New(accounts, transferlog.New(transferrepo.NewRepoMem())),
	}

	l.Info().Msg("creating sample accounts")

	for _, arg := range []domain.OpenAccountParams{
		{Number: "ACC001", Owner: "John Doe", Balance: "1000.00"},
		{Number: "ACC002", Owner: "Jane Smith", Balance: "500.00"},
		{Number: "ACC003", Owner: "Bob Johnson", Balance: "50.00"},
	} {
		if _, err := d.accounts.Open(ctx, arg); err != nil {
			return err
		}
	}

	if err := d.logAccounts(ctx, "initial account status"); err != nil {
		return err
	}

	d.transfer(ctx, "ACC001", "ACC002", "200.00")

	if err := d.logAccounts(ctx, "account status after successful transfer"); err != nil {
		return err
	}

	d.transfer(ctx, "ACC003", "ACC001", "500.00")

	if err := d.logAccounts(ctx, "account status after failed transfer"); err != nil {
		return err
	}

	d.transfer(ctx, "ACC001", "ACC999", "100.00")

	history, err := d.transfers.History(ctx)
	if err != nil {
		return err
	}

	l.Info().Int("count", len(history)).Msg("transfer history")

	for _, t := range history {
		l.Info().
			Int64("id", t.ID).
			Str("from", t.FromAccountNumber).
			Str("to", t.ToAccountNumber).
			Str("amount", t.Amount.StringFixed(2)).
			Str("status", string(t.Status)).
			Time("created_at", t.CreatedAt).
			Send()
	}

	return nil
}

// transfer logs the outcome instead of returning it, failures are part of the demo.
func (d demo) transfer(ctx context.Context, from, to, amount string) {
	l := zerolog.Ctx(ctx).With().Str("from", from).Str("to", to).Str("amount", amount).Logger()

	res, err := d.transfers.Transfer(ctx, domain.CreateTransferParams{
		FromAccountNumber: from,
		ToAccountNumber:   to,
		Amount:            amount,
	})
	if err != nil {
		l.Warn().Err(err).Str("status", string(res.Transfer.Status)).Msg("transfer failed")
		return
	}

	l.Info().Str("status", string(res.Transfer.Status)).Msg("transfer completed")
}

func (d demo) logAccounts(ctx context.Context, title string) error {
	l := zerolog.Ctx(ctx)

	accounts, err := d.accounts.List(ctx)
	if err != nil {
		return err
	}

	l.Info().Msg(title)

	for _, a := range accounts {
		l.Info().
			Str("number", a.Number).
			Str("owner", a.Owner).
			Str("balance", a.Balance.StringFixed(2)).
			Send()
	}

	return nil
}
