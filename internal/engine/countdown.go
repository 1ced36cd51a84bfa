package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/birthday-timer/internal/config"
)

// Remaining is the time left until the target, split for display.
// Hours is the total number of whole hours and is not capped at a day.
type Remaining struct {
	Hours   int
	Minutes int
	Seconds int
}

// RemainingUntil computes target - now, clamped at zero and truncated to whole seconds.
// It works on Unix seconds: a time.Duration saturates after about 292 years.
func RemainingUntil(target, now time.Time) Remaining {
	secs := target.Unix() - now.Unix()
	if target.Nanosecond() < now.Nanosecond() {
		secs--
	}
	if secs < 0 {
		secs = 0
	}
	return Remaining{
		Hours:   int(secs / config.SecondsPerHour),
		Minutes: int((secs % config.SecondsPerHour) / config.SecondsPerMinute),
		Seconds: int(secs % config.SecondsPerMinute),
	}
}

// IsZero reports whether nothing is left to count.
func (r Remaining) IsZero() bool {
	return r == Remaining{}
}

// TotalSeconds converts the remaining time back to seconds.
func (r Remaining) TotalSeconds() int64 {
	return int64(r.Hours)*config.SecondsPerHour + int64(r.Minutes)*config.SecondsPerMinute + int64(r.Seconds)
}

// Session is one running countdown. It owns a goroutine that ticks until the
// target is reached or Cancel is called.
type Session struct {
	target   time.Time
	clock    Clock
	interval time.Duration
	onTick   func(Remaining)
	onFinish func()

	// mu serializes callbacks with Cancel so that no callback starts after
	// Cancel has returned.
	mu      sync.Mutex
	stopped bool

	cancel context.CancelFunc
	done   chan struct{}
}

// Target returns the instant the session counts down to.
func (s *Session) Target() time.Time {
	return s.target
}

// Done is closed once the session goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Cancel stops the session. It is safe to call more than once and from any
// goroutine except from inside the session's own callbacks.
func (s *Session) Cancel() {
	s.mu.Lock()
	wasStopped := s.stopped
	s.stopped = true
	s.mu.Unlock()

	s.cancel()

	if !wasStopped {
		slog.Debug(config.MsgSessionStop,
			config.LogKeyComponent, config.CompCountdown,
			config.LogKeyTarget, s.target)
	}
}

// run fires an immediate tick, then one per interval. When less than an
// interval is left the wait is shortened so the last tick lands on the target.
func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	for {
		now := s.clock.Now()
		rem := RemainingUntil(s.target, now)

		if !s.fire(func() { s.onTick(rem) }) {
			return
		}

		if !s.target.After(now) {
			slog.Info(config.MsgSessionDone,
				config.LogKeyComponent, config.CompCountdown,
				config.LogKeyTarget, s.target)
			if s.onFinish != nil {
				s.fire(s.onFinish)
			}
			s.mu.Lock()
			s.stopped = true
			s.mu.Unlock()
			return
		}

		// Only a target closer than one interval can shorten the wait, and
		// only then is target.Sub(now) small enough not to saturate.
		wait := s.interval
		if rem.TotalSeconds() <= int64(s.interval/time.Second) {
			if left := s.target.Sub(now); left < wait {
				wait = left
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(wait):
		}
	}
}

// fire runs fn unless the session was stopped. It reports whether it ran.
func (s *Session) fire(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	fn()
	return true
}

// Scheduler owns at most one countdown session at a time.
type Scheduler struct {
	Clock    Clock
	Interval time.Duration

	mu      sync.Mutex
	current *Session
}

// NewScheduler creates a scheduler ticking at config.TickInterval.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		Clock:    clock,
		Interval: config.TickInterval,
	}
}

// Start cancels the running session, if any, and starts a new one towards target.
// onTick receives every recomputation, including an immediate first one.
// onFinish, if set, runs once after the zero tick. Both run on the session goroutine.
func (sc *Scheduler) Start(ctx context.Context, target time.Time, onTick func(Remaining), onFinish func()) *Session {
	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		target:   target,
		clock:    sc.Clock,
		interval: sc.Interval,
		onTick:   onTick,
		onFinish: onFinish,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	if s.interval <= 0 {
		s.interval = config.TickInterval
	}

	sc.mu.Lock()
	prev := sc.current
	sc.current = s
	sc.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}

	slog.Info(config.MsgSessionStart,
		config.LogKeyComponent, config.CompCountdown,
		config.LogKeyTarget, target,
		config.LogKeyRemaining, RemainingUntil(target, sc.Clock.Now()).TotalSeconds())

	go s.run(sctx)
	return s
}

// Cancel stops the running session, if any.
func (sc *Scheduler) Cancel() {
	sc.mu.Lock()
	prev := sc.current
	sc.current = nil
	sc.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
}

// Active returns the running session or nil when none is ticking.
func (sc *Scheduler) Active() *Session {
	sc.mu.Lock()
	s := sc.current
	sc.mu.Unlock()

	if s == nil {
		return nil
	}
	select {
	case <-s.done:
		return nil
	default:
		return s
	}
}
