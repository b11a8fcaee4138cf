package insighting

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{current: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	cache := NewCache(ttl)
	cache.now = clock.Now
	return cache, clock
}

func countingGenerator(calls *int32, content string) func(context.Context) (*domain.InsightPayload, error) {
	return func(context.Context) (*domain.InsightPayload, error) {
		atomic.AddInt32(calls, 1)
		return &domain.InsightPayload{Content: content, Type: domain.InsightTypeGeneral}, nil
	}
}

func TestCache_GetOrGenerate_TTL(t *testing.T) {
	tests := []struct {
		name          string
		advance       time.Duration
		expectedCalls int32
	}{
		{name: "dentro do TTL reaproveita a entrada", advance: 59 * time.Minute, expectedCalls: 1},
		{name: "exatamente no TTL gera novamente", advance: time.Hour, expectedCalls: 2},
		{name: "depois do TTL gera novamente", advance: 2 * time.Hour, expectedCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, clock := newTestCache(time.Hour)
			ctx := context.Background()
			var calls int32

			first, err := cache.GetOrGenerate(ctx, "abc", countingGenerator(&calls, "narrativa"))
			require.NoError(t, err)
			assert.Equal(t, "narrativa", first.Content)

			clock.Advance(tt.advance)

			second, err := cache.GetOrGenerate(ctx, "abc", countingGenerator(&calls, "narrativa"))
			require.NoError(t, err)
			assert.Equal(t, "narrativa", second.Content)

			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
			assert.Equal(t, 1, cache.Len())
		})
	}
}

func TestCache_GetOrGenerate_ExpiredEntryIsOverwritten(t *testing.T) {
	cache, clock := newTestCache(time.Hour)
	ctx := context.Background()
	var calls int32

	_, err := cache.GetOrGenerate(ctx, "abc", countingGenerator(&calls, "antiga"))
	require.NoError(t, err)

	clock.Advance(90 * time.Minute)

	fresh, err := cache.GetOrGenerate(ctx, "abc", countingGenerator(&calls, "nova"))
	require.NoError(t, err)
	assert.Equal(t, "nova", fresh.Content)

	clock.Advance(30 * time.Minute)

	cached, err := cache.GetOrGenerate(ctx, "abc", countingGenerator(&calls, "outra"))
	require.NoError(t, err)
	assert.Equal(t, "nova", cached.Content)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCache_GetOrGenerate_FailureIsNotCached(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	ctx := context.Background()
	failure := domain.NewError(domain.KindGeneration, "test", errors.New("rate limit"))

	_, err := cache.GetOrGenerate(ctx, "abc", func(context.Context) (*domain.InsightPayload, error) {
		return nil, failure
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindGeneration))
	assert.Zero(t, cache.Len())

	var calls int32
	payload, err := cache.GetOrGenerate(ctx, "abc", countingGenerator(&calls, "recuperada"))
	require.NoError(t, err)
	assert.Equal(t, "recuperada", payload.Content)
	assert.Equal(t, int32(1), calls)
}

func TestCache_GetOrGenerate_DistinctFingerprints(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	ctx := context.Background()
	var calls int32

	_, err := cache.GetOrGenerate(ctx, "a", countingGenerator(&calls, "a"))
	require.NoError(t, err)
	_, err = cache.GetOrGenerate(ctx, "b", countingGenerator(&calls, "b"))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls)
	assert.Equal(t, 2, cache.Len())
}

func TestCache_GetOrGenerate_ConcurrentCallsGenerateOnce(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	ctx := context.Background()

	var calls int32
	release := make(chan struct{})
	generate := func(context.Context) (*domain.InsightPayload, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return &domain.InsightPayload{Content: "compartilhada"}, nil
	}

	const callers = 8
	results := make([]string, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload, err := cache.GetOrGenerate(ctx, "mesma-chave", generate)
			if assert.NoError(t, err) {
				results[i] = payload.Content
			}
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, content := range results {
		assert.Equal(t, "compartilhada", content)
	}
}

func TestCache_GetOrGenerate_CanceledCallerDoesNotFailOthers(t *testing.T) {
	cache, _ := newTestCache(time.Hour)

	started := make(chan struct{})
	release := make(chan struct{})
	generate := func(ctx context.Context) (*domain.InsightPayload, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &domain.InsightPayload{Content: "compartilhada"}, nil
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := cache.GetOrGenerate(firstCtx, "mesma-chave", generate)
		firstDone <- err
	}()
	<-started

	secondDone := make(chan *domain.InsightPayload, 1)
	go func() {
		payload, err := cache.GetOrGenerate(context.Background(), "mesma-chave", generate)
		assert.NoError(t, err)
		secondDone <- payload
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	close(release)

	require.NoError(t, <-firstDone)
	payload := <-secondDone
	require.NotNil(t, payload)
	assert.Equal(t, "compartilhada", payload.Content)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_ReturnsCopies(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	ctx := context.Background()
	var calls int32

	first, err := cache.GetOrGenerate(ctx, "abc", countingGenerator(&calls, "original"))
	require.NoError(t, err)
	first.Content = "alterada"

	second, err := cache.GetOrGenerate(ctx, "abc", countingGenerator(&calls, "original"))
	require.NoError(t, err)
	assert.Equal(t, "original", second.Content)
}

func TestCache_Cleanup(t *testing.T) {
	cache, clock := newTestCache(time.Hour)
	ctx := context.Background()
	var calls int32

	_, err := cache.GetOrGenerate(ctx, "velha", countingGenerator(&calls, "velha"))
	require.NoError(t, err)

	clock.Advance(40 * time.Minute)

	_, err = cache.GetOrGenerate(ctx, "recente", countingGenerator(&calls, "recente"))
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)

	assert.Equal(t, 1, cache.Cleanup())
	assert.Equal(t, 1, cache.Len())
	assert.Zero(t, cache.Cleanup())
}

func TestFingerprint(t *testing.T) {
	base := domain.InsightRequest{
		Metrics: domain.KPISet{TotalSpend: 1500, AvgCPA: 42.1},
		Context: domain.InsightContext{Period: "7 dias", CampaignCount: 3},
	}

	same := base
	changedMetric := base
	changedMetric.Metrics.AvgCPA = 42.2
	changedContext := base
	changedContext.Context.CampaignCount = 4

	fp, err := Fingerprint(base)
	require.NoError(t, err)
	assert.Len(t, fp, 64)

	fpSame, err := Fingerprint(same)
	require.NoError(t, err)
	assert.Equal(t, fp, fpSame)

	fpMetric, err := Fingerprint(changedMetric)
	require.NoError(t, err)
	assert.NotEqual(t, fp, fpMetric)

	fpContext, err := Fingerprint(changedContext)
	require.NoError(t, err)
	assert.NotEqual(t, fp, fpContext)
}
