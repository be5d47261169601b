//go:build unit

package infra

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	t.Run("no-rows maps to NOT_FOUND", func(t *testing.T) {
		err := WrapRepoErr("voucher lookup", pgx.ErrNoRows)
		assert.True(t, IsKind(err, KindNotFound))
	})

	t.Run("unique violation maps to DUPLICATE_KEY", func(t *testing.T) {
		err := WrapRepoErr("redemption insert", &pgconn.PgError{Code: "23505"})
		assert.True(t, IsKind(err, KindDuplicateKey))
	})

	t.Run("foreign key violation maps to FOREIGN_KEY_VIOLATED", func(t *testing.T) {
		err := WrapRepoErr("voucher insert", &pgconn.PgError{Code: "23503"})
		assert.True(t, IsKind(err, KindForeignKeyViolated))
	})

	t.Run("anything else maps to DB_FAILURE", func(t *testing.T) {
		err := WrapRepoErr("query", errors.New("connection reset"))
		assert.True(t, IsKind(err, KindDBFailure))
	})

	t.Run("explicit kind overrides classification", func(t *testing.T) {
		err := WrapRepoErr("voucher lookup", nil, KindNotFound)
		assert.True(t, IsKind(err, KindNotFound))
		assert.False(t, IsKind(err, KindDBFailure))
	})

	t.Run("wrapped classifications survive further wrapping", func(t *testing.T) {
		inner := WrapRepoErr("redemption insert", &pgconn.PgError{Code: "23505"})
		outer := WrapRepoErr("tx failed", inner)
		assert.True(t, IsKind(outer, KindDuplicateKey))
	})

	t.Run("unrelated errors report no kind", func(t *testing.T) {
		assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	})
}
