//go:build integration

package transferrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest"
	"github.com/go-petr/pet-ledger/internal/transferrepo"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
)

const configPath = "../../configs"

func TestCreate(t *testing.T) {
	config := integrationtest.LoadConfig(t, configPath)

	testCases := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{
			name:   "OK",
			amount: randompkg.MoneyAmountBetween(1, 1000),
		},
		{
			name:    "InvalidAmount",
			amount:  "0",
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
			transferRepo := transferrepo.NewRepoPGS(tx)

			want := domain.Transfer{
				FromAccountNumber: randompkg.AccountNumber(),
				ToAccountNumber:   randompkg.AccountNumber(),
				Amount:            decimal.RequireFromString(tc.amount),
				Status:            domain.StatusPending,
				CreatedAt:         time.Now(),
			}

			got, err := transferRepo.Create(context.Background(), want)
			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Fatalf("transferRepo.Create(ctx, %+v) returned error %v, want %v", want, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("transferRepo.Create(ctx, %+v) returned error: %v", want, err)
			}

			ignoreFields := cmpopts.IgnoreFields(domain.Transfer{}, "ID")
			compareCreatedAt := cmpopts.EquateApproxTime(time.Minute)
			if diff := cmp.Diff(want, got, ignoreFields, compareCreatedAt); diff != "" {
				t.Errorf("transferRepo.Create(ctx, %+v) returned unexpected difference (-want +got):\n%s", want, diff)
			}

			if got.ID == 0 {
				t.Error("got.ID = 0, want non-zero")
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	config := integrationtest.LoadConfig(t, configPath)
	tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
	transferRepo := transferrepo.NewRepoPGS(tx)
	ctx := context.Background()

	created, err := transferRepo.Create(ctx, domain.Transfer{
		FromAccountNumber: randompkg.AccountNumber(),
		ToAccountNumber:   randompkg.AccountNumber(),
		Amount:            decimal.RequireFromString("10"),
		Status:            domain.StatusPending,
	})
	if err != nil {
		t.Fatalf("transferRepo.Create() returned error: %v", err)
	}

	if err := transferRepo.UpdateStatus(ctx, created.ID, domain.StatusFailedInsufficientFunds); err != nil {
		t.Fatalf("transferRepo.UpdateStatus(ctx, %d) returned error: %v", created.ID, err)
	}

	got, err := transferRepo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("transferRepo.Get(ctx, %d) returned error: %v", created.ID, err)
	}

	if got.Status != domain.StatusFailedInsufficientFunds {
		t.Errorf("got.Status = %s, want %s", got.Status, domain.StatusFailedInsufficientFunds)
	}

	if err := transferRepo.UpdateStatus(ctx, -1, domain.StatusSuccess); err != domain.ErrRecordNotFound {
		t.Errorf("transferRepo.UpdateStatus(ctx, -1) returned error %v, want %v", err, domain.ErrRecordNotFound)
	}
}

func TestList(t *testing.T) {
	config := integrationtest.LoadConfig(t, configPath)
	tx := integrationtest.SetupTX(t, config.DBDriver, config.DBSource)
	transferRepo := transferrepo.NewRepoPGS(tx)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := transferRepo.Create(ctx, domain.Transfer{
			FromAccountNumber: randompkg.AccountNumber(),
			ToAccountNumber:   randompkg.AccountNumber(),
			Amount:            decimal.RequireFromString(randompkg.MoneyAmountBetween(1, 100)),
			Status:            domain.StatusPending,
		})
		if err != nil {
			t.Fatalf("transferRepo.Create() returned error: %v", err)
		}
	}

	got, err := transferRepo.List(ctx)
	if err != nil {
		t.Fatalf("transferRepo.List(ctx) returned error: %v", err)
	}

	if len(got) < 5 {
		t.Fatalf("len(got) = %d, want at least 5", len(got))
	}

	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if cur.CreatedAt.After(prev.CreatedAt) || (cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID) {
			t.Errorf("transfers %d and %d are not ordered newest first", prev.ID, cur.ID)
		}
	}
}
