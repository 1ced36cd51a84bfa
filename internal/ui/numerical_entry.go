package ui

import (
	"unicode/utf8"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is a custom Entry widget that only accepts numeric input.
// It embeds widget.Entry to inherit all standard behavior.
type NumericalEntry struct {
	widget.Entry

	// MaxLength caps the number of typed digits. Zero means unlimited.
	MaxLength int
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry(maxLength int) *NumericalEntry {
	entry := &NumericalEntry{MaxLength: maxLength}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune intercepts text input events.
// It filters characters to allow only digits (0-9) up to MaxLength.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxLength > 0 && utf8.RuneCountInString(e.Text) >= e.MaxLength && e.SelectedText() == "" {
		return
	}
	e.Entry.TypedRune(r)
	// Shortcuts like Ctrl+V (Paste) bypass TypedRune, so non-numeric data
	// can still be pasted. The engine's validator rejects it on submit.
}

// Keyboard overrides the default keyboard type.
// This ensures that on mobile devices, a numeric keypad is shown.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
