package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"github.com/tartampluch/birthday-timer/internal/config"
	"github.com/tartampluch/birthday-timer/internal/engine"
)

// CountdownViewModel holds everything the countdown screen displays.
// Widgets bind to its fields; the view model never touches widgets.
type CountdownViewModel struct {
	// Input fields, bound to the three entries.
	Day   binding.String
	Month binding.String
	Year  binding.String

	// Display fields, rewritten on every tick.
	Hours   binding.String
	Minutes binding.String
	Seconds binding.String

	ErrorVisible     binding.Bool
	CountdownVisible binding.Bool

	ctx       context.Context
	clock     engine.Clock
	validator engine.Validator
	scheduler *engine.Scheduler

	mu     sync.Mutex
	state  engine.TimerState
	target time.Time
	label  string
	// gen identifies the latest submission. Ticks carrying an older
	// generation belong to a cancelled session and are dropped.
	gen uint64
}

// NewCountdownViewModel creates an idle view model. Sessions it starts are
// bound to ctx.
func NewCountdownViewModel(ctx context.Context, clock engine.Clock) *CountdownViewModel {
	return &CountdownViewModel{
		Day:              binding.NewString(),
		Month:            binding.NewString(),
		Year:             binding.NewString(),
		Hours:            binding.NewString(),
		Minutes:          binding.NewString(),
		Seconds:          binding.NewString(),
		ErrorVisible:     binding.NewBool(),
		CountdownVisible: binding.NewBool(),
		ctx:              ctx,
		clock:            clock,
		validator:        engine.Validator{Clock: clock},
		scheduler:        engine.NewScheduler(clock),
	}
}

// State returns the current timer state.
func (vm *CountdownViewModel) State() engine.TimerState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Target returns the instant being counted down to and the contact name it
// was picked from, if any. ok is false when no countdown was started.
func (vm *CountdownViewModel) Target() (target time.Time, label string, ok bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.target, vm.label, !vm.target.IsZero()
}

// Submit validates the input fields and restarts the countdown.
// Any running countdown is cancelled first, even when the new input is rejected.
func (vm *CountdownViewModel) Submit() error {
	// Cancel outside vm.mu: a session callback may be waiting for it.
	vm.scheduler.Cancel()

	day, _ := vm.Day.Get()
	month, _ := vm.Month.Get()
	year, _ := vm.Year.Get()

	log := slog.With(config.LogKeyComponent, config.CompUI)

	target, err := vm.validator.Validate(day, month, year)

	vm.mu.Lock()
	vm.gen++
	gen := vm.gen
	vm.label = ""
	if err != nil {
		vm.state = engine.Invalid
		vm.target = time.Time{}
	} else {
		vm.state = engine.Running
		vm.target = target
	}
	vm.mu.Unlock()

	if err != nil {
		log.Debug(config.MsgSubmitRejected, config.LogKeyError, err)
		_ = vm.ErrorVisible.Set(true)
		_ = vm.CountdownVisible.Set(false)
		return err
	}

	log.Info(config.MsgSubmit, config.LogKeyTarget, target)
	_ = vm.ErrorVisible.Set(false)
	vm.show(engine.RemainingUntil(target, vm.clock.Now()))
	_ = vm.CountdownVisible.Set(true)

	vm.scheduler.Start(vm.ctx, target,
		func(r engine.Remaining) { vm.onTick(gen, r) },
		func() { vm.onFinish(gen) },
	)
	return nil
}

// SubmitContact fills the fields with the contact's next birthday and submits.
func (vm *CountdownViewModel) SubmitContact(entry engine.BirthdayEntry) error {
	vm.SetDate(entry.NextOccurrence)
	if err := vm.Submit(); err != nil {
		return err
	}

	vm.mu.Lock()
	vm.label = entry.Name
	vm.mu.Unlock()
	return nil
}

// SetDate writes a date into the input fields without submitting it.
func (vm *CountdownViewModel) SetDate(t time.Time) {
	_ = vm.Day.Set(fmt.Sprintf("%02d", t.Day()))
	_ = vm.Month.Set(fmt.Sprintf("%02d", int(t.Month())))
	_ = vm.Year.Set(strconv.Itoa(t.Year()))
}

// Stop cancels the running countdown and returns to Idle.
func (vm *CountdownViewModel) Stop() {
	vm.scheduler.Cancel()

	vm.mu.Lock()
	vm.gen++
	vm.state = engine.Idle
	vm.mu.Unlock()
}

// current reports whether gen is still the latest submission.
func (vm *CountdownViewModel) current(gen uint64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.gen == gen
}

func (vm *CountdownViewModel) onTick(gen uint64, r engine.Remaining) {
	fyne.Do(func() {
		if !vm.current(gen) {
			return
		}
		vm.show(r)
	})
}

func (vm *CountdownViewModel) onFinish(gen uint64) {
	fyne.Do(func() {
		vm.mu.Lock()
		if vm.gen == gen {
			vm.state = engine.Idle
		}
		vm.mu.Unlock()
	})
}

func (vm *CountdownViewModel) show(r engine.Remaining) {
	_ = vm.Hours.Set(strconv.Itoa(r.Hours))
	_ = vm.Minutes.Set(strconv.Itoa(r.Minutes))
	_ = vm.Seconds.Set(strconv.Itoa(r.Seconds))
}
