package usage

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/vision-analyzer/internal/domain/identity"
)

func TestTryConsumeFreeTier(t *testing.T) {
	l := NewLedger(1)

	assert.Equal(t, 0, l.Peek("user_1"))
	assert.True(t, l.TryConsume("user_1", identity.TierFree))
	assert.Equal(t, 1, l.Peek("user_1"))

	// second attempt fails and does not mutate
	assert.False(t, l.TryConsume("user_1", identity.TierFree))
	assert.Equal(t, 1, l.Peek("user_1"))

	// other users are independent
	assert.True(t, l.TryConsume("user_2", identity.TierFree))
}

func TestTryConsumePremiumUnmetered(t *testing.T) {
	l := NewLedger(1)

	for i := 0; i < 5; i++ {
		assert.True(t, l.TryConsume("user_1", identity.TierPremium))
	}
	assert.Equal(t, 0, l.Peek("user_1"), "premium never touches the ledger")
}

func TestTryConsumeConcurrent(t *testing.T) {
	l := NewLedger(1)

	var wg sync.WaitGroup
	var granted int64
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryConsume("user_1", identity.TierFree) {
				atomic.AddInt64(&granted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), granted, "exactly one concurrent request may pass")
	assert.Equal(t, 1, l.Peek("user_1"))
}
