package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/mentormatch/cache"
)

// Store implements cache.Store on top of BadgerDB, using its native
// per-entry TTL support for expiry.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ cache.Store = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a Badger-backed cache store at the specified path.
// Creates the directory if it doesn't exist. With inMemory set, the store
// holds everything in memory and path is ignored.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "badger-cache"),
	}, nil
}

// Get returns the value stored under key. Expired entries are misses;
// Badger drops them at read time once the TTL has passed.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.db.IsClosed() {
		return nil, false, cache.ErrStoreClosed
	}

	var value []byte
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores value under key. A positive ttl is handed to Badger as the
// entry's expiry; zero stores without expiry.
func (s *Store) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.db.IsClosed() {
		return cache.ErrStoreClosed
	}

	return s.db.Update(func(tx *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return tx.SetEntry(entry)
	})
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	if s.db.IsClosed() {
		return cache.ErrStoreClosed
	}

	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Delete([]byte(key))
	})
}

// Close closes the underlying BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}
