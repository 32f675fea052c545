// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic on PostgreSQL.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const insertQuery = `
INSERT INTO
    accounts (number, owner, balance)
VALUES
    ($1, $2, $3)
RETURNING id, number, owner, balance, created_at
`

const updateQuery = `
UPDATE accounts
SET number = $2, owner = $3, balance = $4
WHERE id = $1
RETURNING id, number, owner, balance, created_at
`

// Save inserts the account when its ID is zero and updates the stored row otherwise.
// It returns the account as stored.
func (r *RepoPGS) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var row *sql.Row
	if a.ID == 0 {
		row = r.db.QueryRowContext(ctx, insertQuery, a.Number, a.Owner, a.Balance)
	} else {
		row = r.db.QueryRowContext(ctx, updateQuery, a.ID, a.Number, a.Owner, a.Balance)
	}

	saved, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Save(ctx, %+v)", a)

		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "accounts_number_key" {
			return domain.Account{}, domain.ErrAccountExists
		}

		return domain.Account{}, errorspkg.Internal(err)
	}

	return saved, nil
}

const getQuery = `
SELECT
	id, number, owner, balance, created_at
FROM accounts
WHERE number = $1
`

// Get returns the account with the given number.
func (r *RepoPGS) Get(ctx context.Context, number string) (domain.Account, error) {
	return r.getOne(ctx, getQuery, number)
}

const getByIDQuery = `
SELECT
	id, number, owner, balance, created_at
FROM accounts
WHERE id = $1
`

// GetByID returns the account with the given storage id.
func (r *RepoPGS) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	return r.getOne(ctx, getByIDQuery, id)
}

func (r *RepoPGS) getOne(ctx context.Context, query string, key any) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Err(err).Msgf("account %v not found", key)
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.Internal(err)
	}

	return a, nil
}

const listQuery = `
SELECT
	id, number, owner, balance, created_at
FROM accounts
ORDER BY id
`

// List returns all the accounts in creation order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.Internal(err)
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Number, &a.Owner, &a.Balance, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.Internal(err)
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.Internal(err)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.Internal(err)
	}

	return items, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.Owner,
		&a.Balance,
		&a.CreatedAt,
	)

	return a, err
}
