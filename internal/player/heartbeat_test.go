package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type beatRecorder struct {
	mu       sync.Mutex
	fail     bool
	reports  int
	verdicts []bool
}

func (b *beatRecorder) report(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reports++
	if b.fail {
		return errors.New("heartbeat endpoint unreachable")
	}
	return nil
}

func (b *beatRecorder) notify(online bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.verdicts = append(b.verdicts, online)
}

func (b *beatRecorder) setFail(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail = fail
}

func (b *beatRecorder) snapshot() (int, []bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reports, append([]bool(nil), b.verdicts...)
}

func TestHeartbeatReportsImmediatelyThenOnCadence(t *testing.T) {
	rec := &beatRecorder{}
	h := NewHeartbeatReporter(rec.report, 10*time.Millisecond, rec.notify, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool {
		n, _ := rec.snapshot()
		return n >= 3
	}, 2*time.Second, "repeated heartbeats")
	cancel()
	<-done

	_, verdicts := rec.snapshot()
	for _, v := range verdicts {
		assert.True(t, v)
	}
}

func TestHeartbeatFailureNotifiesOfflineAndKeepsBeating(t *testing.T) {
	rec := &beatRecorder{}
	rec.setFail(true)
	h := NewHeartbeatReporter(rec.report, 10*time.Millisecond, rec.notify, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	waitFor(t, func() bool {
		n, _ := rec.snapshot()
		return n >= 3
	}, 2*time.Second, "reporter retries through failures")

	_, verdicts := rec.snapshot()
	assert.Contains(t, verdicts, false)

	// server recovers; the verdict flips back without any restart
	rec.setFail(false)
	waitFor(t, func() bool {
		_, v := rec.snapshot()
		return len(v) > 0 && v[len(v)-1]
	}, 2*time.Second, "verdict returns to online")
}

func TestHeartbeatDefaultInterval(t *testing.T) {
	h := NewHeartbeatReporter(func(ctx context.Context) error { return nil }, 0, nil, zerolog.Nop())
	assert.Equal(t, 30*time.Second, h.interval)
}
