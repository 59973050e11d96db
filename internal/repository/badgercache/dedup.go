package badgercache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/curata-io/curata/domain"
)

// DedupCache is the embedded alternative to the redis dedup cache, for
// single-node deployments without an external cache service. Badger's
// transactional conflict detection gives set-if-absent: two racing
// transactions both reading a missing key cannot both commit.
type DedupCache struct {
	db *badger.DB
}

var _ domain.DedupCache = (*DedupCache)(nil)

// NewDedupCache opens a badger store at the given path. An empty path opens
// an in-memory store, which is what tests use.
func NewDedupCache(path string) (*DedupCache, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db at %q: %w", path, err)
	}
	return &DedupCache{db: db}, nil
}

func (c *DedupCache) Close() error {
	return c.db.Close()
}

func (c *DedupCache) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	txn := c.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get([]byte(key))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return false, err
	}

	entry := badger.NewEntry([]byte(key), []byte{1}).WithTTL(ttl)
	if err := txn.SetEntry(entry); err != nil {
		return false, err
	}

	err = txn.Commit()
	if errors.Is(err, badger.ErrConflict) {
		// a concurrent caller won the race
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
