package transferrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// RepoMem keeps transfer records in process memory. It is safe for concurrent use.
type RepoMem struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]domain.Transfer
	now     func() time.Time
}

// NewRepoMem returns an empty transfer RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		records: make(map[int64]domain.Transfer),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new transfer record and returns it with its ID and CreatedAt set.
func (r *RepoMem) Create(ctx context.Context, arg domain.Transfer) (domain.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transfer{}, err
	}

	if !arg.Amount.IsPositive() {
		return domain.Transfer{}, domain.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	arg.ID = r.nextID
	arg.CreatedAt = r.now()
	r.records[arg.ID] = arg

	return arg, nil
}

// UpdateStatus sets the status of the transfer record with the given id.
func (r *RepoMem) UpdateStatus(ctx context.Context, id int64, status domain.TransferStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.records[id]
	if !ok {
		return domain.ErrRecordNotFound
	}

	t.Status = status
	r.records[id] = t

	return nil
}

// Get returns the transfer record with the given id.
func (r *RepoMem) Get(ctx context.Context, id int64) (domain.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transfer{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.records[id]
	if !ok {
		return domain.Transfer{}, domain.ErrRecordNotFound
	}

	return t, nil
}

// List returns all transfer records, the most recent first.
func (r *RepoMem) List(ctx context.Context) ([]domain.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	items := make([]domain.Transfer, 0, len(r.records))
	for _, t := range r.records {
		items = append(items, t)
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})

	return items, nil
}
