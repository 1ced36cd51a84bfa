package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/birthday-timer/internal/config"
)

// ParseBirthdays decodes a vCard stream and returns one entry per card with a
// usable BDAY, sorted by next occurrence relative to now.
// Malformed cards and unparseable dates are skipped.
func ParseBirthdays(ctx context.Context, r io.Reader, now time.Time) ([]BirthdayEntry, error) {
	start := time.Now()
	src := &trackingReader{r: r}
	decoder := vcard.NewDecoder(src)
	stats := struct{ processed, withBday int }{}
	var entries []BirthdayEntry

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if src.err != nil {
				return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, src.err)
			}
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		next, age := nextOccurrence(now, birthDate, yearKnown)
		entries = append(entries, BirthdayEntry{
			Name:           name,
			DateOfBirth:    birthDate,
			YearKnown:      yearKnown,
			NextOccurrence: next,
			AgeNext:        age,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.NextOccurrence.Equal(b.NextOccurrence) {
			return a.Name < b.Name
		}
		return a.NextOccurrence.Before(b.NextOccurrence)
	})

	slog.Info(config.MsgParseSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return entries, nil
}

// trackingReader remembers failures of the underlying reader. Unlike syntax
// errors they leave the decoder unable to make progress.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}

// nextOccurrence finds the first birthday midnight strictly after now,
// in now's location. A birthday today has already started, so it rolls
// over to next year.
func nextOccurrence(now time.Time, birthDate time.Time, yearKnown bool) (time.Time, int) {
	loc := now.Location()

	// Go's time.Date normalizes Feb 29 to March 1st if the year is not a leap year.
	candidate := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	if !candidate.After(now) {
		candidate = time.Date(now.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	ageNext := 0
	if yearKnown {
		ageNext = candidate.Year() - birthDate.Year()
	}
	return candidate, ageNext
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	// Safe leap year fallback
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
