//go:build unit

package queue

import (
	"fmt"
	"testing"

	"desayuno/internal/pkg/signer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedPayload(code string) signer.Payload {
	return signer.Payload{
		Version:    1,
		Code:       code,
		StayID:     uuid.New(),
		ValidFrom:  1770000000,
		ValidUntil: 1770172800,
		Signature:  []byte{0x01, 0x02},
	}
}

func TestPayloadCache(t *testing.T) {
	cache, err := NewPayloadCache(4)
	require.NoError(t, err)

	p := cachedPayload("BRK-A1B2C3D4-001")
	cache.Put(p)

	got, ok := cache.Get(p.Code)
	assert.True(t, ok)
	assert.Equal(t, p, got)

	cache.Remove(p.Code)
	_, ok = cache.Get(p.Code)
	assert.False(t, ok)

	t.Run("evicts least recently used payloads", func(t *testing.T) {
		for i := range 6 {
			cache.Put(cachedPayload(fmt.Sprintf("BRK-A1B2C3D4-%03d", i)))
		}
		_, ok := cache.Get("BRK-A1B2C3D4-000")
		assert.False(t, ok, "oldest entry should be evicted at capacity 4")
		_, ok = cache.Get("BRK-A1B2C3D4-005")
		assert.True(t, ok)
	})
}
