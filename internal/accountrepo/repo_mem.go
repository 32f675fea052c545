package accountrepo

import (
	"context"
	"sync"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// RepoMem keeps accounts in process memory. It is safe for concurrent use.
type RepoMem struct {
	mu       sync.RWMutex
	nextID   int64
	byID     map[int64]domain.Account
	byNumber map[string]int64
	order    []int64
}

// NewRepoMem returns an empty account RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		byID:     make(map[int64]domain.Account),
		byNumber: make(map[string]int64),
	}
}

// Save inserts the account when its ID is zero and replaces the stored one otherwise.
func (r *RepoMem) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byNumber[a.Number]; ok && id != a.ID {
		return domain.Account{}, domain.ErrAccountExists
	}

	if a.ID == 0 {
		r.nextID++
		a.ID = r.nextID
		a.CreatedAt = time.Now().UTC()
		r.order = append(r.order, a.ID)
	} else {
		stored, ok := r.byID[a.ID]
		if !ok {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		delete(r.byNumber, stored.Number)
		a.CreatedAt = stored.CreatedAt
	}

	r.byID[a.ID] = a
	r.byNumber[a.Number] = a.ID

	return a, nil
}

// Get returns the account with the given number.
func (r *RepoMem) Get(ctx context.Context, number string) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNumber[number]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return r.byID[id], nil
}

// GetByID returns the account with the given storage id.
func (r *RepoMem) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return a, nil
}

// List returns a snapshot of all accounts in insertion order.
func (r *RepoMem) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Account, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.byID[id])
	}

	return items, nil
}
