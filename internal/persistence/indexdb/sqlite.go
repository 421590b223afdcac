package indexdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"minebot.ai/internal/planning/temporal"
	"minebot.ai/internal/sim/tuning"
)

// SQLiteIndex deduplicates solve attempts by bundle digest. It is a
// read-model beside the planner: nothing it stores feeds back into a digest.
type SQLiteIndex struct {
	db   *sql.DB
	once sync.Once
}

// Attempt is one indexed row.
type Attempt struct {
	AttemptID        string
	Digest           string
	CurrentBucket    int
	IsDeadlock       bool
	BlockedSlotTypes []string
	UseBatch         bool
	BatchOperatorID  string
	SeenCount        int
	RecordedAt       string
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalogs (
			name TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			attempt_id TEXT PRIMARY KEY,
			digest TEXT NOT NULL UNIQUE,
			current_bucket INTEGER NOT NULL,
			is_deadlock INTEGER NOT NULL,
			blocked_slot_types TEXT NOT NULL,
			use_batch INTEGER NOT NULL,
			batch_operator_id TEXT NOT NULL,
			seen_count INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_deadlock ON attempts(is_deadlock, current_bucket);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}

// RecordAttempt stores a under digest. When the digest is already known the
// existing attempt ID is returned with duplicate=true and its seen count is
// bumped; the stored verdict is left as first recorded.
func (s *SQLiteIndex) RecordAttempt(ctx context.Context, digest string, a temporal.Assessment) (attemptID string, duplicate bool, err error) {
	if digest == "" {
		return "", false, fmt.Errorf("empty digest")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `SELECT attempt_id FROM attempts WHERE digest=?`, digest).Scan(&attemptID)
	switch {
	case err == nil:
		if _, err = tx.ExecContext(ctx, `UPDATE attempts SET seen_count=seen_count+1 WHERE attempt_id=?`, attemptID); err != nil {
			return "", false, err
		}
		if err = tx.Commit(); err != nil {
			return "", false, err
		}
		return attemptID, true, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", false, err
	}

	attemptID = uuid.NewString()
	blocked := append([]string(nil), a.Deadlock.BlockedSlotTypes...)
	sort.Strings(blocked)
	_, err = tx.ExecContext(ctx, `INSERT INTO attempts(
			attempt_id, digest, current_bucket, is_deadlock, blocked_slot_types,
			use_batch, batch_operator_id, seen_count, recorded_at
		) VALUES(?,?,?,?,?,?,?,?,?)`,
		attemptID, digest, a.State.Time.CurrentBucket, boolInt(a.Deadlock.IsDeadlock),
		strings.Join(blocked, ","), boolInt(a.Batch.UseBatch), a.Batch.OperatorID, 1,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", false, err
	}
	if err = tx.Commit(); err != nil {
		return "", false, err
	}
	return attemptID, false, nil
}

func (s *SQLiteIndex) LookupDigest(ctx context.Context, digest string) (Attempt, bool, error) {
	var a Attempt
	var deadlock, useBatch int
	var blocked string
	err := s.db.QueryRowContext(ctx, `SELECT attempt_id, digest, current_bucket, is_deadlock,
			blocked_slot_types, use_batch, batch_operator_id, seen_count, recorded_at
		FROM attempts WHERE digest=?`, digest).Scan(
		&a.AttemptID, &a.Digest, &a.CurrentBucket, &deadlock,
		&blocked, &useBatch, &a.BatchOperatorID, &a.SeenCount, &a.RecordedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, false, nil
	}
	if err != nil {
		return Attempt{}, false, err
	}
	a.IsDeadlock = deadlock != 0
	a.UseBatch = useBatch != 0
	a.BlockedSlotTypes = []string{}
	if blocked != "" {
		a.BlockedSlotTypes = strings.Split(blocked, ",")
	}
	return a, true, nil
}

func (s *SQLiteIndex) CountAttempts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempts`).Scan(&n)
	return n, err
}

// UpsertCatalogs records which catalog files and tuning produced the
// attempts in this index.
func (s *SQLiteIndex) UpsertCatalogs(ctx context.Context, digests map[string]string, tune tuning.Tuning) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	names := make([]string, 0, len(digests))
	for n := range digests {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if _, err := tx.ExecContext(ctx, `INSERT INTO catalogs(name, digest, updated_at) VALUES(?,?,?)
			ON CONFLICT(name) DO UPDATE SET digest=excluded.digest, updated_at=excluded.updated_at`,
			n, digests[n], now); err != nil {
			return err
		}
	}
	meta := map[string]string{
		"bucket_size_ticks": fmt.Sprint(tune.BucketSizeTicks),
		"horizon_buckets":   fmt.Sprint(tune.HorizonBuckets),
		"max_wait_buckets":  fmt.Sprint(tune.MaxWaitBuckets),
		"batch_threshold":   fmt.Sprint(tune.BatchThreshold),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES(?,?)
			ON CONFLICT(key) DO UPDATE SET value=excluded.value`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
