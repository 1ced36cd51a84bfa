package engine

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/birthday-timer/internal/config"
)

// EncodeCountdownEvent writes an iCalendar document holding a single all-day
// event on the target date. The UID depends only on the target and summary,
// so exporting the same countdown twice yields the same event.
func EncodeCountdownEvent(w io.Writer, target, now time.Time, summary string) error {
	cal := ical.NewCalendar()

	// Set standard iCalendar headers
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	input := fmt.Sprintf(config.FormatHashInput, summary, target.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, hash[:config.UIDHashLength], config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())
	event.Props.Set(dtStampProp)

	// The target is local midnight, so a DATE value keeps it on the same day
	// for the calendar client.
	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(target)
	event.Props.Set(dtStartProp)

	cal.Children = append(cal.Children, event.Component)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgExportSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyTarget, target.Format(config.DateFormatFullDash))
	return nil
}
