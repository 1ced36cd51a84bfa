package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/birthday-timer/internal/config"
)

// ErrInvalidDate is returned for every rejected submission.
// The wrapped message names the field and the reason.
var ErrInvalidDate = errors.New(config.ErrInvalidDate)

// DateInput holds the validated components of a calendar date.
// Month is 1-indexed.
type DateInput struct {
	Day   int
	Month int
	Year  int
}

// Instant returns local midnight of the date in the given location.
func (d DateInput) Instant(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// ParseDateInput converts the raw text of the three fields into a DateInput.
// It rejects empty and non-numeric fields and components that do not form
// a real calendar date. It does not look at the current time.
func ParseDateInput(day, month, year string) (DateInput, error) {
	y, err := parseField(config.FieldYear, year, config.MinYear, config.MaxYear)
	if err != nil {
		return DateInput{}, err
	}
	m, err := parseField(config.FieldMonth, month, config.MinMonth, config.MaxMonth)
	if err != nil {
		return DateInput{}, err
	}
	d, err := parseField(config.FieldDay, day, config.MinDay, daysIn(time.Month(m), y))
	if err != nil {
		return DateInput{}, err
	}
	return DateInput{Day: d, Month: m, Year: y}, nil
}

// parseField accepts only ASCII digits, so signs and spaces inside the value fail.
func parseField(name, raw string, lo, hi int) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, invalid(name, config.ErrFieldEmpty)
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, invalid(name, config.ErrFieldRange)
		}
		return 0, invalid(name, config.ErrFieldNumeric)
	}
	if int(n) < lo || int(n) > hi {
		return 0, invalid(name, config.ErrFieldRange)
	}
	return int(n), nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidDate, field, reason)
}

// daysIn returns the number of days of the month, leap years included.
// Day 0 of the following month normalizes to the last day of this one.
func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Validator turns user input into a target instant strictly in the future.
type Validator struct {
	Clock Clock
}

// Validate parses the three fields and checks the date against Clock.Now().
// The target is local midnight in the clock's location.
func (v Validator) Validate(day, month, year string) (time.Time, error) {
	in, err := ParseDateInput(day, month, year)
	if err != nil {
		return time.Time{}, err
	}

	now := v.Clock.Now()
	target := in.Instant(now.Location())
	if !target.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, config.ErrNotInFuture)
	}
	return target, nil
}
