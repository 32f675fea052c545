// Package transferrepo manages repository layer of transfer records.
package transferrepo

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

// RepoPGS facilitates transfer repository layer logic on PostgreSQL.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transfer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transfers (from_account_number, to_account_number, amount, status)
VALUES
    ($1, $2, $3, $4)
RETURNING id, from_account_number, to_account_number, amount, status, created_at
`

// Create stores a new transfer record and returns it with its ID and CreatedAt set.
func (r *RepoPGS) Create(ctx context.Context, arg domain.Transfer) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.FromAccountNumber,
		arg.ToAccountNumber,
		arg.Amount,
		arg.Status,
	)

	t, err := scanTransfer(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "transfers_amount_check" {
			return domain.Transfer{}, domain.ErrInvalidAmount
		}

		return domain.Transfer{}, errorspkg.Internal(err)
	}

	return t, nil
}

const updateStatusQuery = `
UPDATE transfers
SET status = $2
WHERE id = $1
`

// UpdateStatus sets the status of the transfer record with the given id.
func (r *RepoPGS) UpdateStatus(ctx context.Context, id int64, status domain.TransferStatus) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, updateStatusQuery, id, status)
	if err != nil {
		l.Error().Err(err).Msgf("UpdateStatus(ctx, %d, %s)", id, status)
		return errorspkg.Internal(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.Internal(err)
	}

	if n == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

const getQuery = `
SELECT
	id, from_account_number, to_account_number, amount, status, created_at
FROM transfers
WHERE id = $1
`

// Get returns the transfer record with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransfer(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, domain.ErrRecordNotFound
		}

		l.Error().Err(err).Send()

		return domain.Transfer{}, errorspkg.Internal(err)
	}

	return t, nil
}

const listQuery = `
SELECT
	id, from_account_number, to_account_number, amount, status, created_at
FROM transfers
ORDER BY created_at DESC, id DESC
`

// List returns all transfer records, the most recent first.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.Internal(err)
	}
	defer rows.Close()

	items := []domain.Transfer{}

	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(
			&t.ID,
			&t.FromAccountNumber,
			&t.ToAccountNumber,
			&t.Amount,
			&t.Status,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.Internal(err)
		}

		items = append(items, t)
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

func scanTransfer(row *sql.Row) (domain.Transfer, error) {
	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.FromAccountNumber,
		&t.ToAccountNumber,
		&t.Amount,
		&t.Status,
		&t.CreatedAt,
	)

	return t, err
}
