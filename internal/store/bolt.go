package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var eventsBucket = []byte("events")

// processedEvent records when a webhook event id was first handled.
type processedEvent struct {
	ProcessedAt time.Time `json:"processed_at"`
}

// Store remembers handled webhook event ids so LINE redeliveries are answered once.
type Store interface {
	// MarkProcessed records id and reports whether this is its first sighting.
	// An empty id is never recorded and always reports true.
	MarkProcessed(id string) (bool, error)
	// Cleanup drops ids older than maxAge and returns how many were removed.
	Cleanup(maxAge time.Duration) (int, error)
	Close() error
}

type BoltStore struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(eventsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating events bucket: %w", err)
	}

	return &BoltStore{db: db, now: time.Now}, nil
}

func (s *BoltStore) MarkProcessed(id string) (bool, error) {
	if id == "" {
		return true, nil
	}

	first := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(eventsBucket)
		if b.Get([]byte(id)) != nil {
			return nil
		}
		data, err := json.Marshal(processedEvent{ProcessedAt: s.now().UTC()})
		if err != nil {
			return err
		}
		first = true
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return false, fmt.Errorf("marking event %s: %w", id, err)
	}
	return first, nil
}

func (s *BoltStore) Cleanup(maxAge time.Duration) (int, error) {
	cutoff := s.now().Add(-maxAge)
	removed := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(eventsBucket)

		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var ev processedEvent
			// unreadable entries are dropped along with stale ones
			if err := json.Unmarshal(v, &ev); err != nil || ev.ProcessedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cleaning events: %w", err)
	}
	return removed, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
