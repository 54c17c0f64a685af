package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
)

// Storage keys
const (
	snapshotPrefix = "snapshot/"
	keyStats       = "stats"
)

// ErrSnapshotNotFound is returned when no snapshot is stored under a name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the stored form of a board.
type Snapshot struct {
	Placement string    `json:"placement"`
	Hash      uint64    `json:"hash"`
	SavedAt   time.Time `json:"saved_at"`
}

// Stats counts the outcomes of analysed positions.
type Stats struct {
	Analysed   int            `json:"analysed"`
	MovesMade  int            `json:"moves_made"`
	Rejected   int            `json:"rejected"`
	Checks     map[string]int `json:"checks"`
	Checkmates map[string]int `json:"checkmates"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{
		Checks:     make(map[string]int),
		Checkmates: make(map[string]int),
	}
}

// Result is the outcome of analysing one position.
type Result struct {
	MovesMade int
	Rejected  int
	InCheck   []board.Player
	Checkmate []board.Player
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database under the platform data directory.
func NewStorage(verbose bool) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir, verbose)
}

// Open opens (or creates) a database in dir. Badger's own logging is
// forwarded to the standard logger when verbose is set and discarded otherwise.
func Open(dir string, verbose bool) (*Storage, error) {
	return open(badger.DefaultOptions(dir), verbose)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), false)
}

func open(opts badger.Options, verbose bool) (*Storage, error) {
	opts.Logger = nil
	if verbose {
		opts.Logger = stdLogger{}
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores the board's placement under name, replacing any
// previous snapshot with that name.
func (s *Storage) SaveSnapshot(name string, b *board.Board) error {
	if name == "" {
		return fmt.Errorf("snapshot name must not be empty")
	}

	data, err := json.Marshal(Snapshot{
		Placement: b.Placement(),
		Hash:      b.Hash(),
		SavedAt:   time.Now(),
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotPrefix+name), data)
	})
}

// LoadSnapshot rebuilds the board stored under name.
func (s *Storage) LoadSnapshot(name string) (*board.Board, error) {
	var snap Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, err
	}

	b, err := board.ParsePlacement(snap.Placement)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	if b.Hash() != snap.Hash {
		return nil, fmt.Errorf("snapshot %s: hash mismatch: stored %016x, computed %016x", name, snap.Hash, b.Hash())
	}

	return b, nil
}

// DeleteSnapshot removes the snapshot stored under name.
func (s *Storage) DeleteSnapshot(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(snapshotPrefix + name)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		} else if err != nil {
			return err
		}
		return txn.Delete([]byte(snapshotPrefix + name))
	})
}

// ListSnapshots returns the names of all stored snapshots in key order.
func (s *Storage) ListSnapshots() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(snapshotPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, snapshotPrefix))
		}
		return nil
	})

	return names, err
}

// SaveStats saves analysis statistics
func (s *Storage) SaveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads analysis statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordResult folds the outcome of one analysis into the stored statistics.
func (s *Storage) RecordResult(result Result) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Analysed++
	stats.MovesMade += result.MovesMade
	stats.Rejected += result.Rejected
	for _, p := range result.InCheck {
		stats.Checks[p.String()]++
	}
	for _, p := range result.Checkmate {
		stats.Checkmates[p.String()]++
	}

	return s.SaveStats(stats)
}

// stdLogger forwards badger's log output to the standard logger.
type stdLogger struct{}

func (stdLogger) Errorf(format string, args ...interface{}) {
	log.Printf("badger: ERROR: "+format, args...)
}

func (stdLogger) Warningf(format string, args ...interface{}) {
	log.Printf("badger: WARNING: "+format, args...)
}

func (stdLogger) Infof(format string, args ...interface{}) {
	log.Printf("badger: INFO: "+format, args...)
}

func (stdLogger) Debugf(format string, args ...interface{}) {
	log.Printf("badger: DEBUG: "+format, args...)
}
