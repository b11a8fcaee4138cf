package insighting

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"

	"github.com/vfg2006/tracionar-api/infrastructure/metrics"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type cacheEntry struct {
	payload     domain.InsightPayload
	generatedAt time.Time
}

// Cache memoriza narrativas por impressão digital da entrada.
// A expiração é verificada na leitura e contada a partir da geração.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry

	group singleflight.Group
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Fingerprint gera a chave determinística da entrada completa
func Fingerprint(input any) (string, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// GetOrGenerate devolve a entrada válida ou chama generate uma única vez por chave,
// mesmo com chamadas concorrentes. Falhas não são memorizadas.
func (c *Cache) GetOrGenerate(
	ctx context.Context,
	fingerprint string,
	generate func(ctx context.Context) (*domain.InsightPayload, error),
) (*domain.InsightPayload, error) {
	if payload, ok := c.lookup(fingerprint); ok {
		metrics.InsightCache.WithLabelValues("hit").Inc()
		return payload, nil
	}

	v, err, _ := c.group.Do(fingerprint, func() (interface{}, error) {
		// outra chamada pode ter preenchido a entrada enquanto esta aguardava
		if payload, ok := c.lookup(fingerprint); ok {
			return payload, nil
		}

		// a geração compartilhada ignora o cancelamento do primeiro chamador
		payload, err := generate(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.store(fingerprint, payload)
		return payload, nil
	})
	if err != nil {
		metrics.InsightCache.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.InsightCache.WithLabelValues("miss").Inc()

	payload := *v.(*domain.InsightPayload)
	return &payload, nil
}

func (c *Cache) lookup(fingerprint string) (*domain.InsightPayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[fingerprint]
	if !ok {
		return nil, false
	}

	if c.expired(entry) {
		return nil, false
	}

	payload := entry.payload
	return &payload, true
}

func (c *Cache) store(fingerprint string, payload *domain.InsightPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[fingerprint] = cacheEntry{
		payload:     *payload,
		generatedAt: c.now(),
	}
	metrics.InsightCacheEntries.Set(float64(len(c.entries)))
}

func (c *Cache) expired(entry cacheEntry) bool {
	return c.now().Sub(entry.generatedAt) >= c.ttl
}

// Cleanup remove as entradas expiradas e retorna quantas foram descartadas
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, key)
			removed++
		}
	}
	metrics.InsightCacheEntries.Set(float64(len(c.entries)))

	return removed
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
