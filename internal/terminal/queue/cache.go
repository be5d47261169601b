package queue

import (
	"desayuno/internal/pkg/signer"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PayloadCache keeps recently scanned voucher payloads in memory so the
// terminal can pre-validate a re-scan offline without decoding the QR
// again. It is a hint only; the server remains the redemption authority.
type PayloadCache struct {
	cache *lru.Cache[string, signer.Payload]
}

func NewPayloadCache(size int) (*PayloadCache, error) {
	cache, err := lru.New[string, signer.Payload](size)
	if err != nil {
		return nil, err
	}
	return &PayloadCache{cache: cache}, nil
}

func (c *PayloadCache) Put(p signer.Payload) {
	c.cache.Add(p.Code, p)
}

func (c *PayloadCache) Get(code string) (signer.Payload, bool) {
	return c.cache.Get(code)
}

func (c *PayloadCache) Remove(code string) {
	c.cache.Remove(code)
}
