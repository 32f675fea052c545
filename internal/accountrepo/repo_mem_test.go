package accountrepo

import (
	"context"
	"testing"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, r *RepoMem, number, balance string) domain.Account {
	t.Helper()

	a, err := r.Save(context.Background(), domain.Account{
		Number:  number,
		Owner:   randompkg.Owner(),
		Balance: decimal.RequireFromString(balance),
	})
	if err != nil {
		t.Fatalf("r.Save(ctx, %v) returned error: %v", number, err)
	}

	return a
}

func TestRepoMemSave(t *testing.T) {
	r := NewRepoMem()
	ctx := context.Background()

	a := seedAccount(t, r, "ACC001", "1000")
	require.Equal(t, int64(1), a.ID)
	require.False(t, a.CreatedAt.IsZero())

	t.Run("Update", func(t *testing.T) {
		a.Balance = decimal.RequireFromString("800")

		got, err := r.Save(ctx, a)
		require.NoError(t, err)

		if diff := cmp.Diff(a, got); diff != "" {
			t.Errorf("r.Save(ctx, %+v) returned unexpected difference (-want +got):\n%s", a, diff)
		}

		stored, err := r.Get(ctx, "ACC001")
		require.NoError(t, err)
		require.True(t, stored.Balance.Equal(a.Balance))
	})

	t.Run("Idempotent", func(t *testing.T) {
		_, err := r.Save(ctx, a)
		require.NoError(t, err)
		_, err = r.Save(ctx, a)
		require.NoError(t, err)

		items, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("ErrAccountExists", func(t *testing.T) {
		_, err := r.Save(ctx, domain.Account{Number: "ACC001", Owner: "dup"})
		require.ErrorIs(t, err, domain.ErrAccountExists)
	})

	t.Run("ErrAccountNotFound", func(t *testing.T) {
		_, err := r.Save(ctx, domain.Account{ID: 42, Number: "ACC042"})
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("Renumber", func(t *testing.T) {
		b := seedAccount(t, r, "ACC002", "10")
		b.Number = "ACC020"

		_, err := r.Save(ctx, b)
		require.NoError(t, err)

		_, err = r.Get(ctx, "ACC002")
		require.ErrorIs(t, err, domain.ErrAccountNotFound)

		got, err := r.Get(ctx, "ACC020")
		require.NoError(t, err)
		require.Equal(t, b.ID, got.ID)
	})
}

func TestRepoMemGet(t *testing.T) {
	r := NewRepoMem()
	ctx := context.Background()
	a := seedAccount(t, r, "ACC001", "500.50")

	got, err := r.Get(ctx, a.Number)
	require.NoError(t, err)
	require.Equal(t, a, got)

	got, err = r.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a, got)

	_, err = r.Get(ctx, "ACC999")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = r.GetByID(ctx, 999)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = r.Get(canceled, a.Number)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRepoMemList(t *testing.T) {
	r := NewRepoMem()
	ctx := context.Background()

	want := []domain.Account{
		seedAccount(t, r, "ACC003", "50"),
		seedAccount(t, r, "ACC001", "1000"),
		seedAccount(t, r, "ACC002", "500"),
	}

	got, err := r.List(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("r.List(ctx) returned unexpected difference (-want +got):\n%s", diff)
	}

	got[0].Owner = "changed"

	again, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, want[0].Owner, again[0].Owner)
}
