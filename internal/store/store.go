// Package store persists game snapshots in an embedded BadgerDB,
// grounded on hailam-chessplay's internal/storage use of
// github.com/dgraph-io/badger/v4 as an on-disk key-value store.
package store

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tether-chess/tether-chess/internal/engine"
)

// ErrNotFound is returned by Load when no snapshot exists for a game ID.
var ErrNotFound = errors.New("store: game not found")

const keyPrefix = "game:"

// Snapshot is the unit persisted per game: the move history plus the
// board it produces, so a crashed server can resume in-flight games by
// replaying History through a fresh engine.Engine (the core exposes no
// other reconstruction path).
type Snapshot struct {
	GameID  string               `json:"gameId"`
	Board   engine.BoardSnapshot `json:"board"`
	History []engine.Move        `json:"history"`
	SavedAt int64                `json:"savedAt"`
}

// Store wraps a BadgerDB opened under dataDir.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a Badger database under dataDir.
func Open(dataDir string) (*Store, error) {
	opts := badger.DefaultOptions(dataDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes snap under the game's key, stamping SavedAt with now.
func (s *Store) Save(gameID string, snap Snapshot) error {
	snap.GameID = gameID
	snap.SavedAt = time.Now().Unix()

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+gameID), data)
	})
}

// Load returns the persisted snapshot for gameID, or ErrNotFound if none
// exists.
func (s *Store) Load(gameID string) (Snapshot, error) {
	var snap Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + gameID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// List returns every persisted game ID.
func (s *Store) List() ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Replay reconstructs an engine.Engine from a snapshot's move history,
// applying each move through NewGame + Apply rather than trusting the
// persisted board directly -- this also verifies the history is still a
// legal game.
func Replay(snap Snapshot) (*engine.Engine, error) {
	eng := engine.NewGame()
	for _, mv := range snap.History {
		res := eng.Apply(mv.From, mv.To, mv.Promotion)
		if !res.OK {
			return nil, errors.New("store: persisted history is no longer a legal game: " + res.Message)
		}
	}
	return eng, nil
}
