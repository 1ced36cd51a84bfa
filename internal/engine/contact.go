package engine

import "time"

// BirthdayEntry represents a contact imported from a vCard file.
// It decouples the UI from the vCard parsing logic.
type BirthdayEntry struct {
	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the date as parsed from the card.
	DateOfBirth time.Time

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool

	// NextOccurrence is the first local midnight of the birthday strictly
	// after the import time. It is the countdown target for this contact.
	NextOccurrence time.Time

	// AgeNext is the age the person will turn at NextOccurrence.
	// Only valid if YearKnown is true.
	AgeNext int
}
