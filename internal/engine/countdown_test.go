package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/birthday-timer/internal/engine"
)

const waitTimeout = 2 * time.Second

func TestRemainingUntil(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   engine.Remaining
	}{
		{"Zero", now, engine.Remaining{}},
		{"Past is clamped", now.Add(-time.Hour), engine.Remaining{}},
		{"Sub-second truncates", now.Add(999 * time.Millisecond), engine.Remaining{}},
		{"One second", now.Add(time.Second), engine.Remaining{Seconds: 1}},
		{"Mixed", now.Add(2*time.Hour + 3*time.Minute + 4*time.Second + 500*time.Millisecond), engine.Remaining{Hours: 2, Minutes: 3, Seconds: 4}},
		{"Hours are not capped at a day", now.Add(50*time.Hour + 59*time.Minute + 59*time.Second), engine.Remaining{Hours: 50, Minutes: 59, Seconds: 59}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.RemainingUntil(tt.target, now))
		})
	}
}

func TestRemaining_FarFuture(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	target := time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)

	r := engine.RemainingUntil(target, now)
	assert.Equal(t, target.Unix()-now.Unix(), r.TotalSeconds())
	assert.Zero(t, r.Minutes)
	assert.Zero(t, r.Seconds)
	assert.False(t, r.IsZero())

	later := engine.RemainingUntil(target, now.Add(time.Second))
	assert.Equal(t, r.TotalSeconds()-1, later.TotalSeconds(), "Far targets still count down")
	assert.Equal(t, 59, later.Seconds)

	last := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, last.Unix()-now.Unix(), engine.RemainingUntil(last, now).TotalSeconds())
}

func TestRemainingUntil_SubSecondTruncation(t *testing.T) {
	target := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	// 1.75s left shows one second.
	now := time.Date(2026, 10, 15, 23, 59, 58, 250_000_000, time.UTC)
	assert.Equal(t, engine.Remaining{Seconds: 1}, engine.RemainingUntil(target, now))

	// Target with its own fraction.
	target = target.Add(100 * time.Millisecond)
	assert.Equal(t, engine.Remaining{Seconds: 1}, engine.RemainingUntil(target, now))
}

// tickRecorder collects callbacks from a session goroutine.
type tickRecorder struct {
	ticks    chan engine.Remaining
	finished chan struct{}
}

func newTickRecorder() *tickRecorder {
	return &tickRecorder{
		ticks:    make(chan engine.Remaining, 64),
		finished: make(chan struct{}, 1),
	}
}

func (r *tickRecorder) onTick(rem engine.Remaining) { r.ticks <- rem }
func (r *tickRecorder) onFinish()                   { r.finished <- struct{}{} }

func (r *tickRecorder) next(t *testing.T) engine.Remaining {
	t.Helper()
	select {
	case rem := <-r.ticks:
		return rem
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a tick")
		return engine.Remaining{}
	}
}

func waitParked(t *testing.T, clock *FakeClock) time.Duration {
	t.Helper()
	select {
	case d := <-clock.Waiting:
		return d
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for the session to wait on the clock")
		return 0
	}
}

func TestSession_CountsDownToZero(t *testing.T) {
	start := time.Date(2026, 10, 15, 23, 59, 56, 500_000_000, time.UTC)
	clock := NewFakeClock(start)
	target := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	rec := newTickRecorder()
	sched := engine.NewScheduler(clock)
	s := sched.Start(context.Background(), target, rec.onTick, rec.onFinish)
	assert.Equal(t, target, s.Target())

	var seen []engine.Remaining
	seen = append(seen, rec.next(t))

	for finished := false; !finished; {
		select {
		case d := <-clock.Waiting:
			assert.LessOrEqual(t, d, time.Second, "Never wait longer than one tick")
			clock.Advance(d)
			seen = append(seen, rec.next(t))
		case <-rec.finished:
			finished = true
		case <-time.After(waitTimeout):
			t.Fatal("onFinish was not called")
		}
	}

	select {
	case <-s.Done():
	case <-time.After(waitTimeout):
		t.Fatal("session goroutine did not exit")
	}

	require.Equal(t, []engine.Remaining{
		{Seconds: 3},
		{Seconds: 2},
		{Seconds: 1},
		{Seconds: 0}, // 0.5s left, truncated
		{},           // exactly at target
	}, seen)

	for i := 1; i < len(seen); i++ {
		assert.LessOrEqual(t, seen[i].TotalSeconds(), seen[i-1].TotalSeconds(), "Remaining must never increase")
	}
	assert.Nil(t, sched.Active(), "A finished session is no longer active")
}

func TestSession_FarTargetKeepsTicking(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(now)
	target := time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := newTickRecorder()

	s := engine.NewScheduler(clock).Start(context.Background(), target, rec.onTick, rec.onFinish)
	defer s.Cancel()

	first := rec.next(t)
	assert.Equal(t, target.Unix()-now.Unix(), first.TotalSeconds())

	for i := int64(1); i <= 3; i++ {
		assert.Equal(t, time.Second, waitParked(t, clock))
		clock.Advance(time.Second)
		assert.Equal(t, first.TotalSeconds()-i, rec.next(t).TotalSeconds())
	}
	assert.Empty(t, rec.finished)
}

func TestSession_FirstTickIsImmediate(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(now)
	rec := newTickRecorder()

	sched := engine.NewScheduler(clock)
	s := sched.Start(context.Background(), now.Add(90*time.Minute+5*time.Second), rec.onTick, nil)
	defer s.Cancel()

	assert.Equal(t, engine.Remaining{Hours: 1, Minutes: 30, Seconds: 5}, rec.next(t))
	assert.Equal(t, time.Second, waitParked(t, clock))
	assert.Same(t, s, sched.Active())
}

func TestSession_CancelStopsCallbacks(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(now)
	rec := newTickRecorder()

	sched := engine.NewScheduler(clock)
	s := sched.Start(context.Background(), now.Add(time.Hour), rec.onTick, rec.onFinish)

	rec.next(t)
	waitParked(t, clock)

	sched.Cancel()
	clock.Advance(2 * time.Hour)

	select {
	case <-s.Done():
	case <-time.After(waitTimeout):
		t.Fatal("cancelled session did not exit")
	}
	assert.Empty(t, rec.ticks, "No tick may fire after Cancel")
	assert.Empty(t, rec.finished, "No finish may fire after Cancel")
	assert.Nil(t, sched.Active())

	// Cancelling twice is harmless.
	s.Cancel()
}

func TestSession_ContextCancellation(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(now)
	rec := newTickRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	s := engine.NewScheduler(clock).Start(ctx, now.Add(time.Hour), rec.onTick, rec.onFinish)
	rec.next(t)
	waitParked(t, clock)

	cancel()

	select {
	case <-s.Done():
	case <-time.After(waitTimeout):
		t.Fatal("session ignored context cancellation")
	}
	assert.Empty(t, rec.finished)
}

func TestScheduler_RestartReplacesSession(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(now)
	sched := engine.NewScheduler(clock)

	first := newTickRecorder()
	s1 := sched.Start(context.Background(), now.Add(time.Hour), first.onTick, first.onFinish)
	first.next(t)
	waitParked(t, clock)

	second := newTickRecorder()
	s2 := sched.Start(context.Background(), now.Add(2*time.Hour), second.onTick, second.onFinish)
	assert.Equal(t, engine.Remaining{Hours: 2}, second.next(t))
	waitParked(t, clock)

	select {
	case <-s1.Done():
	case <-time.After(waitTimeout):
		t.Fatal("previous session kept running after restart")
	}
	assert.Same(t, s2, sched.Active())

	clock.Advance(time.Second)
	assert.Equal(t, engine.Remaining{Hours: 1, Minutes: 59, Seconds: 59}, second.next(t))
	assert.Empty(t, first.ticks, "Only the latest session may tick")

	sched.Cancel()
}

func TestSession_PastTargetFinishesImmediately(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := NewFakeClock(now)
	rec := newTickRecorder()

	s := engine.NewScheduler(clock).Start(context.Background(), now.Add(-time.Minute), rec.onTick, rec.onFinish)

	assert.True(t, rec.next(t).IsZero())
	select {
	case <-rec.finished:
	case <-time.After(waitTimeout):
		t.Fatal("onFinish was not called")
	}
	<-s.Done()
}
