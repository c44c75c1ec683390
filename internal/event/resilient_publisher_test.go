package event

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvinquach/fgo-planner-go/internal/testing/leaktest"
)

// flakyBus fails the first failCount publishes, then succeeds.
type flakyBus struct {
	failCount int32
	attempts  int32
}

func (b *flakyBus) Publish(ctx context.Context, event Event) error {
	n := atomic.AddInt32(&b.attempts, 1)
	if n <= atomic.LoadInt32(&b.failCount) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(eventType Type, handler Handler) {}

func TestResilientPublisher_PassThroughOnSuccess(t *testing.T) {
	bus := &flakyBus{}
	publisher := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 3, RetryDelay: time.Millisecond})

	err := publisher.Publish(context.Background(), NewAccountChangedEvent(AccountCreated, "acct-1", "user-1"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&bus.attempts))
}

func TestResilientPublisher_RetriesInBackground(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		bus := &flakyBus{failCount: 2}
		publisher := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 5, RetryDelay: time.Millisecond})

		err := publisher.Publish(context.Background(), NewAccountChangedEvent(AccountCreated, "acct-1", "user-1"))
		require.NoError(t, err, "caller is not blocked on a failed publish")

		require.NoError(t, publisher.Shutdown(context.Background()))
		assert.Equal(t, int32(3), atomic.LoadInt32(&bus.attempts), "initial attempt plus two retries")
	})
}

func TestResilientPublisher_DeadLetterAfterExhaustedRetries(t *testing.T) {
	deadLetterPath := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failCount: 100}
	publisher := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: deadLetterPath,
	})

	evt := NewPlanChangedEvent(PlanDeleted, "acct-1", 10, 20)
	require.NoError(t, publisher.Publish(context.Background(), evt))
	require.NoError(t, publisher.Shutdown(context.Background()))

	data, err := os.ReadFile(deadLetterPath)
	require.NoError(t, err)

	var entry struct {
		Timestamp time.Time `json:"timestamp"`
		Event     struct {
			Type Type `json:"type"`
		} `json:"event"`
	}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, PlanDeleted, entry.Event.Type)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestResilientPublisher_ShutdownHonorsContext(t *testing.T) {
	bus := &flakyBus{failCount: 100}
	publisher := NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     50,
		RetryDelay:     50 * time.Millisecond,
		DeadLetterPath: filepath.Join(t.TempDir(), "deadletter.jsonl"),
	})

	require.NoError(t, publisher.Publish(context.Background(), NewAccountChangedEvent(AccountCreated, "a", "u")))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := publisher.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	bus := NewMemoryBus()
	publisher := NewResilientPublisher(bus, ResilientConfig{})

	called := false
	publisher.Subscribe(AccountCreated, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	require.NoError(t, publisher.Publish(context.Background(), NewAccountChangedEvent(AccountCreated, "a", "u")))
	assert.True(t, called)
}
