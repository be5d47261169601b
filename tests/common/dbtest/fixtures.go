//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"desayuno/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestDeviceKey is the plaintext provisioning key every seeded device uses.
const TestDeviceKey = "terminal-secret"

var (
	deviceKeyHashOnce sync.Once
	deviceKeyHash     string
)

// testDeviceKeyHash hashes TestDeviceKey once per process; bcrypt is too
// slow to rerun for every seeded device.
func testDeviceKeyHash(t *testing.T) string {
	t.Helper()
	deviceKeyHashOnce.Do(func() {
		hash, err := password.HashKey(TestDeviceKey)
		require.NoError(t, err)
		deviceKeyHash = hash
	})
	return deviceKeyHash
}

func CreateTestStay(t *testing.T, db DBLike, guestName string, checkIn, checkOut time.Time, status string) uuid.UUID {
	t.Helper()

	stayID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO stays (id, guest_name, check_in, check_out, status) VALUES ($1, $2, $3, $4, $5)",
		stayID, guestName, checkIn, checkOut, status)
	require.NoError(t, err)

	return stayID
}

func CreateTestDevice(t *testing.T, db DBLike, name string, cafeteriaID uuid.UUID, active bool) uuid.UUID {
	t.Helper()

	deviceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO devices (id, cafeteria_id, name, key_hash, is_active) VALUES ($1, $2, $3, $4, $5)",
		deviceID, cafeteriaID, name, testDeviceKeyHash(t), active)
	require.NoError(t, err)

	return deviceID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
