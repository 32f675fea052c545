// Package lockpkg provides per-key mutual exclusion.
package lockpkg

import (
	"context"
	"sort"
	"sync"
)

// Keyed hands out one exclusive lock per key. The zero value is ready to use.
//
// Entries are reference counted and removed once nobody holds or waits for them.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	sem  chan struct{}
	refs int
}

// Lock acquires the locks for all keys in ascending key order, regardless of the
// order they were passed in, so that two callers locking the same set never deadlock.
// Duplicate keys are locked once.
//
// If ctx is done before every lock is held, the locks taken so far are released
// and ctx.Err() is returned.
func (k *Keyed) Lock(ctx context.Context, keys ...string) (unlock func(), err error) {
	ordered := uniqueSorted(keys)

	held := make([]string, 0, len(ordered))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			k.unlock(held[i])
		}
	}

	for _, key := range ordered {
		if err := k.lock(ctx, key); err != nil {
			release()
			return nil, err
		}

		held = append(held, key)
	}

	var once sync.Once

	return func() { once.Do(release) }, nil
}

func (k *Keyed) lock(ctx context.Context, key string) error {
	e := k.acquireEntry(key)

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.releaseEntry(key)
		return ctx.Err()
	}
}

func (k *Keyed) unlock(key string) {
	k.mu.Lock()
	e := k.locks[key]
	k.mu.Unlock()

	<-e.sem
	k.releaseEntry(key)
}

func (k *Keyed) acquireEntry(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.locks == nil {
		k.locks = make(map[string]*entry)
	}

	e, ok := k.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		k.locks[key] = e
	}

	e.refs++

	return e
}

func (k *Keyed) releaseEntry(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e := k.locks[key]
	e.refs--

	if e.refs == 0 {
		delete(k.locks, key)
	}
}

func uniqueSorted(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))

	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	sort.Strings(out)

	return out
}
