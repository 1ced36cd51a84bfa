package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/birthday-timer/internal/config"
	"github.com/tartampluch/birthday-timer/internal/engine"
)

// ShowContactsWindow lists imported birthdays sorted by next occurrence.
// Selecting a row starts the countdown to that birthday and closes the window.
// If the window is already open, its list is reloaded and it requests focus.
func (app *BirthdayTimerApp) ShowContactsWindow() {
	if w := app.contactsWindow; w != nil {
		w.SetContent(app.contactsTable(w))
		w.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinContacts))
	app.contactsWindow = w
	w.Resize(fyne.NewSize(config.ContactsWinWidth, config.ContactsWinHeight))
	w.SetContent(app.contactsTable(w))
	w.SetOnClosed(func() {
		app.contactsWindow = nil
	})
	w.Show()
}

// contactsTable builds the sortable table over a snapshot of the current list.
func (app *BirthdayTimerApp) contactsTable(w fyne.Window) fyne.CanvasObject {
	// Local copy: a new import may replace the list while the window is open.
	app.ContactsMut.RLock()
	displayContacts := make([]engine.BirthdayEntry, len(app.Contacts))
	copy(displayContacts, app.Contacts)
	app.ContactsMut.RUnlock()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(displayContacts))

	currentSortCol := config.ColIDDate
	sortAsc := true
	sortContacts(displayContacts, currentSortCol, sortAsc)

	table := widget.NewTable(
		func() (int, int) {
			return len(displayContacts), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= len(displayContacts) {
				return
			}
			o.(*widget.Label).SetText(app.cellText(displayContacts[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.HeaderPlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		btn.SetText(app.headerText(id.Col, currentSortCol, sortAsc))
		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			sortContacts(displayContacts, currentSortCol, sortAsc)
			table.Refresh()
		}
	}

	table.OnSelected = func(id widget.TableCellID) {
		if id.Row < 0 || id.Row >= len(displayContacts) {
			return
		}
		picked := displayContacts[id.Row]
		slog.Info(config.LogMsgPicked,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyName, picked.Name,
			config.LogKeyTarget, picked.NextOccurrence)
		_ = app.Timer.SubmitContact(picked)
		w.Close()
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)

	return container.NewBorder(nil, nil, nil, nil, table)
}

// sortContacts orders the list in place by the given column.
func sortContacts(contacts []engine.BirthdayEntry, col int, asc bool) {
	less := func(a, b engine.BirthdayEntry) bool {
		switch col {
		case config.ColIDName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case config.ColIDAge:
			// Unknown birth years sink to the bottom in ascending order.
			if a.YearKnown != b.YearKnown {
				return a.YearKnown
			}
			return a.AgeNext < b.AgeNext
		default: // config.ColIDDate
			if a.NextOccurrence.Equal(b.NextOccurrence) {
				return a.Name < b.Name
			}
			return a.NextOccurrence.Before(b.NextOccurrence)
		}
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		if asc {
			return less(contacts[i], contacts[j])
		}
		return less(contacts[j], contacts[i])
	})

	slog.Debug(config.LogMsgSorted,
		config.LogKeyComponent, config.CompUI,
		config.LogKeySortCol, col,
		config.LogKeySortAsc, asc)
}

// cellText formats one table cell.
func (app *BirthdayTimerApp) cellText(c engine.BirthdayEntry, col int) string {
	switch col {
	case config.ColIDName:
		return c.Name
	case config.ColIDDate:
		format := app.GetMsg(config.TKeyFormatDate)
		if format == config.TKeyFormatDate {
			format = config.DateFormatDisplay
		}
		return c.NextOccurrence.Format(format)
	case config.ColIDAge:
		if !c.YearKnown {
			return config.AgeUnknown
		}
		return fmt.Sprintf(config.FormatAgeNext, c.AgeNext)
	}
	return ""
}

// headerText returns the localized column title with the sort indicator.
func (app *BirthdayTimerApp) headerText(col, sortCol int, asc bool) string {
	var titleKey string
	switch col {
	case config.ColIDName:
		titleKey = config.TKeyColName
	case config.ColIDDate:
		titleKey = config.TKeyColDate
	case config.ColIDAge:
		titleKey = config.TKeyColAge
	}

	text := app.GetMsg(titleKey)
	if col == sortCol {
		if asc {
			text += config.SortIconAsc
		} else {
			text += config.SortIconDesc
		}
	}
	return text
}
