package cache

// The persistent store carries summaries between compiler processes, so an
// incremental rebuild can start warm. It holds exactly what the in-memory
// cache holds, keyed the same way; the correctness rules documented on
// CacheSet apply unchanged.

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"github.com/voltlang/voltlink/internal/ast"
	"github.com/voltlang/voltlink/internal/version"
)

var (
	bucketInfos = []byte("infos")
	bucketRuns  = []byte("runs")
)

type Store struct {
	db     *bolt.DB
	logger zerolog.Logger

	// Identifies this process's link run in the run journal
	runID string
}

type runRecord struct {
	RunID     string `json:"runId"`
	StartedAt int64  `json:"startedAt"`
}

// OpenStore opens (or creates) the store file and journals a new run id.
func OpenStore(path string, logger zerolog.Logger) (_ *Store, finalErr error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		finalErr = fmt.Errorf("opening cache store %q: %w", path, err)
		return
	}

	runID := ulid.Make().String()
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketInfos); err != nil {
			return err
		}
		runs, err := tx.CreateBucketIfNotExists(bucketRuns)
		if err != nil {
			return err
		}
		record, err := json.Marshal(runRecord{
			RunID:     runID,
			StartedAt: time.Now().UnixNano(),
		})
		if err != nil {
			return err
		}
		return runs.Put([]byte(runID), record)
	})
	if err != nil {
		db.Close()
		finalErr = fmt.Errorf("initializing cache store %q: %w", path, err)
		return
	}

	storeLogger := logger.With().Str("src", "cache-store").Str("run", runID).Logger()
	storeLogger.Debug().Str("path", path).Msg("opened cache store")

	return &Store{db: db, logger: storeLogger, runID: runID}, nil
}

func (s *Store) RunID() string {
	return s.runID
}

// PutInfo persists one summary under its combined version key. Absent keys
// are skipped, same as the in-memory cache.
func (s *Store) PutInfo(encodedName string, key version.Token, info ast.ClassInfo) error {
	if !key.OK() {
		return nil
	}
	value, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding summary for %s: %w", encodedName, err)
	}
	storeKey := encodeInfoKey(encodedName, key)

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketInfos).Put([]byte(storeKey), value)
	})
	if err != nil {
		return fmt.Errorf("storing summary for %s: %w", encodedName, err)
	}
	s.logger.Trace().Str("class", encodedName).Msg("stored summary")
	return nil
}

// GetInfo loads a summary if one was stored under the exact same combined
// version key.
func (s *Store) GetInfo(encodedName string, key version.Token) (info ast.ClassInfo, ok bool, finalErr error) {
	if !key.OK() {
		return
	}
	storeKey := encodeInfoKey(encodedName, key)

	finalErr = s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketInfos).Get([]byte(storeKey))
		if value == nil {
			return nil
		}
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("decoding summary for %s: %w", encodedName, err)
		}
		ok = true
		return nil
	})
	return
}

// ForEachInfo visits every stored summary. Iteration order is the store's
// key order, which is deterministic but not meaningful.
func (s *Store) ForEachInfo(visit func(info ast.ClassInfo) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketInfos).ForEach(func(_ []byte, value []byte) error {
			var info ast.ClassInfo
			if err := json.Unmarshal(value, &info); err != nil {
				return fmt.Errorf("decoding stored summary: %w", err)
			}
			return visit(info)
		})
	})
}

func (s *Store) Close() error {
	s.logger.Debug().Msg("closing cache store")
	return s.db.Close()
}
