package queue

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"desayuno/internal/pkg/errs"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const (
	StatusPending = "pending"
	StatusError   = "error"
)

// Conflict resolution actions. Resolving is idempotent: re-applying the
// same action to an already-resolved conflict is a no-op.
const (
	ResolutionAcceptServer = "accept_server"
	ResolutionRegenerate   = "regenerate"
	ResolutionDismiss      = "dismiss"
)

var ErrUnknownResolution = errs.New("unknown conflict resolution")

type Intent struct {
	LocalID        string
	VoucherCode    string
	CafeteriaID    uuid.UUID
	LocalTimestamp time.Time
	Attempts       int
	NextAttemptAt  *time.Time
	Status         string
	LastError      string
}

type Conflict struct {
	LocalID         string
	VoucherCode     string
	Reason          string
	ServerTimestamp *time.Time
	Resolution      string
	ResolvedAt      *time.Time
	CreatedAt       time.Time
}

// Store is the terminal's durable offline queue. SQLite in WAL mode with
// a single writer connection; the binary and the sync agent share it.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open queue database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.Wrap(err, "failed to connect to queue database")
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent redeem + sync.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errs.Wrap(err, "failed to apply queue schema")
	}

	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errs.Wrap(err, "failed to apply pragma")
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Enqueue records a redemption intent for later sync. Re-enqueueing the
// same local_id is a no-op so a crashed redeem flow can safely repeat.
func (s *Store) Enqueue(ctx context.Context, intent Intent) error {
	const query = `
		INSERT INTO pending_intents (local_id, voucher_code, cafeteria_id, local_ts, status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (local_id) DO NOTHING`

	_, err := s.db.ExecContext(ctx, query,
		intent.LocalID, intent.VoucherCode, intent.CafeteriaID.String(), intent.LocalTimestamp.UTC(), StatusPending)
	if err != nil {
		return errs.Wrap(err, "failed to enqueue intent")
	}
	return nil
}

// DuePending returns pending intents whose retry delay has elapsed,
// oldest first.
func (s *Store) DuePending(ctx context.Context, now time.Time, limit int) ([]Intent, error) {
	const query = `
		SELECT local_id, voucher_code, cafeteria_id, local_ts, attempts, next_attempt_at, status, COALESCE(last_error, '')
		FROM pending_intents
		WHERE status = ? AND (next_attempt_at IS NULL OR next_attempt_at <= ?)
		ORDER BY created_at
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, StatusPending, now.UTC(), limit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to query pending intents")
	}
	defer rows.Close()

	var intents []Intent
	for rows.Next() {
		intent, err := scanIntent(rows)
		if err != nil {
			return nil, err
		}
		intents = append(intents, intent)
	}
	return intents, errs.Wrap(rows.Err(), "failed to iterate pending intents")
}

func (s *Store) PendingCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pending_intents WHERE status = ?`, StatusPending).Scan(&count)
	if err != nil {
		return 0, errs.Wrap(err, "failed to count pending intents")
	}
	return count, nil
}

// MarkSynced removes a successfully replayed intent.
func (s *Store) MarkSynced(ctx context.Context, localID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pending_intents WHERE local_id = ?`, localID)
	return errs.Wrap(err, "failed to delete synced intent")
}

// RecordFailure bumps the attempt counter and schedules the next retry.
func (s *Store) RecordFailure(ctx context.Context, localID string, nextAttemptAt time.Time, lastError string) error {
	const query = `
		UPDATE pending_intents
		SET attempts = attempts + 1, next_attempt_at = ?, last_error = ?
		WHERE local_id = ?`

	_, err := s.db.ExecContext(ctx, query, nextAttemptAt.UTC(), lastError, localID)
	return errs.Wrap(err, "failed to record intent failure")
}

// Park takes an intent out of rotation after exhausting its retries.
// Parked intents stay visible for manual inspection.
func (s *Store) Park(ctx context.Context, localID, lastError string) error {
	const query = `
		UPDATE pending_intents
		SET status = ?, last_error = ?
		WHERE local_id = ?`

	_, err := s.db.ExecContext(ctx, query, StatusError, lastError, localID)
	return errs.Wrap(err, "failed to park intent")
}

// RecordConflict moves an intent into the conflicts table. The pending
// row is removed; the conflict row is never deleted.
func (s *Store) RecordConflict(ctx context.Context, c Conflict) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(err, "failed to begin conflict transaction")
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `
		INSERT INTO conflicts (local_id, voucher_code, reason, server_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (local_id) DO NOTHING`

	var serverTS any
	if c.ServerTimestamp != nil {
		serverTS = c.ServerTimestamp.UTC()
	}
	if _, err := tx.ExecContext(ctx, insert, c.LocalID, c.VoucherCode, c.Reason, serverTS); err != nil {
		return errs.Wrap(err, "failed to record conflict")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_intents WHERE local_id = ?`, c.LocalID); err != nil {
		return errs.Wrap(err, "failed to remove conflicted intent")
	}

	return errs.Wrap(tx.Commit(), "failed to commit conflict")
}

// Conflicts lists recorded conflicts, optionally including resolved ones.
func (s *Store) Conflicts(ctx context.Context, includeResolved bool) ([]Conflict, error) {
	query := `
		SELECT local_id, voucher_code, reason, server_ts, COALESCE(resolution, ''), resolved_at, created_at
		FROM conflicts`
	if !includeResolved {
		query += ` WHERE resolution IS NULL`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Wrap(err, "failed to query conflicts")
	}
	defer rows.Close()

	var conflicts []Conflict
	for rows.Next() {
		var c Conflict
		var serverTS, resolvedAt sql.NullTime
		if err := rows.Scan(&c.LocalID, &c.VoucherCode, &c.Reason, &serverTS, &c.Resolution, &resolvedAt, &c.CreatedAt); err != nil {
			return nil, errs.Wrap(err, "failed to scan conflict")
		}
		if serverTS.Valid {
			t := serverTS.Time
			c.ServerTimestamp = &t
		}
		if resolvedAt.Valid {
			t := resolvedAt.Time
			c.ResolvedAt = &t
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, errs.Wrap(rows.Err(), "failed to iterate conflicts")
}

// Resolve marks a conflict with the operator's chosen action. Conflicts
// are never deleted; an already-resolved conflict is left untouched so
// repeated resolutions are harmless.
func (s *Store) Resolve(ctx context.Context, localID, resolution string) error {
	switch resolution {
	case ResolutionAcceptServer, ResolutionRegenerate, ResolutionDismiss:
	default:
		return ErrUnknownResolution
	}

	const query = `
		UPDATE conflicts
		SET resolution = ?, resolved_at = ?
		WHERE local_id = ? AND resolution IS NULL`

	_, err := s.db.ExecContext(ctx, query, resolution, time.Now().UTC(), localID)
	return errs.Wrap(err, "failed to resolve conflict")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntent(row rowScanner) (Intent, error) {
	var intent Intent
	var cafeteriaID string
	var nextAttemptAt sql.NullTime
	if err := row.Scan(&intent.LocalID, &intent.VoucherCode, &cafeteriaID, &intent.LocalTimestamp,
		&intent.Attempts, &nextAttemptAt, &intent.Status, &intent.LastError); err != nil {
		return Intent{}, errs.Wrap(err, "failed to scan intent")
	}

	parsed, err := uuid.Parse(cafeteriaID)
	if err != nil {
		return Intent{}, errs.Wrap(err, "corrupt cafeteria id in queue")
	}
	intent.CafeteriaID = parsed

	if nextAttemptAt.Valid {
		t := nextAttemptAt.Time
		intent.NextAttemptAt = &t
	}
	return intent, nil
}
