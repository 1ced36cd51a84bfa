package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/birthday-timer/internal/config"
	"github.com/tartampluch/birthday-timer/internal/engine"
)

// BirthdayTimerApp encapsulates the UI, preferences and the countdown view model.
type BirthdayTimerApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Clock engine.Clock // Injected clock for testability
	Timer *CountdownViewModel

	SupportedLanguages []string

	// Contacts State
	ContactsMut    sync.RWMutex
	Contacts       []engine.BirthdayEntry
	contactsWindow fyne.Window
	settingsWindow fyne.Window

	// Widgets of the main window, rebuilt when the language changes.
	dayEntry     *NumericalEntry
	monthEntry   *NumericalEntry
	yearEntry    *NumericalEntry
	errorLabel   *widget.Label
	startButton  *widget.Button
	countdownBox *fyne.Container
	unbinders    []func()
}

// NewBirthdayTimerApp constructs the application and wires dependencies.
func NewBirthdayTimerApp(a fyne.App, ctx context.Context, clock engine.Clock) *BirthdayTimerApp {
	a.SetIcon(theme.HistoryIcon())

	return &BirthdayTimerApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Clock:              clock,
		Timer:              NewCountdownViewModel(ctx, clock),
		SupportedLanguages: config.SupportedLanguages,
		Contacts:           make([]engine.BirthdayEntry, 0),
	}
}

// Run builds the main window and blocks in the UI loop until it closes.
func (app *BirthdayTimerApp) Run() {
	app.SetupI18n()
	app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.buildMainWindow()
	app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))

	app.Window.ShowAndRun()
	app.Timer.Stop()
}

// buildMainWindow (re)creates the localized content of the main window.
// The view model survives, so a running countdown keeps ticking.
func (app *BirthdayTimerApp) buildMainWindow() {
	for _, unbind := range app.unbinders {
		unbind()
	}
	app.unbinders = nil

	vm := app.Timer

	prompt := widget.NewLabel(app.GetMsg(config.TKeyLblPrompt))

	app.dayEntry = app.boundEntry(config.MaxLenDay, vm.Day)
	app.monthEntry = app.boundEntry(config.MaxLenMonth, vm.Month)
	app.yearEntry = app.boundEntry(config.MaxLenYear, vm.Year)

	inputs := container.NewGridWithColumns(config.LayoutColumnsTriple,
		inputColumn(app.GetMsg(config.TKeyLblDay), app.dayEntry),
		inputColumn(app.GetMsg(config.TKeyLblMonth), app.monthEntry),
		inputColumn(app.GetMsg(config.TKeyLblYear), app.yearEntry),
	)

	app.errorLabel = widget.NewLabel(app.GetMsg(config.TKeyErrDateFuture))
	app.errorLabel.Importance = widget.DangerImportance
	app.errorLabel.Hide()
	app.bindVisibility(vm.ErrorVisible, app.errorLabel)

	app.startButton = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnStart), theme.MediaPlayIcon(), func() {
		_ = vm.Submit()
	})
	app.startButton.Importance = widget.HighImportance

	app.countdownBox = container.NewCenter(container.NewHBox(
		app.countdownColumn(app.GetMsg(config.TKeyLblHours), vm.Hours),
		app.countdownColumn(app.GetMsg(config.TKeyLblMinutes), vm.Minutes),
		app.countdownColumn(app.GetMsg(config.TKeyLblSeconds), vm.Seconds),
	))
	app.countdownBox.Hide()
	app.bindVisibility(vm.CountdownVisible, app.countdownBox)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.AccountIcon(), app.ShowImportDialog),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), app.ShowExportDialog),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), app.ShowSettingsWindow),
	)

	content := container.NewBorder(toolbar, nil, nil, nil, container.NewPadded(container.NewVBox(
		prompt,
		inputs,
		app.errorLabel,
		container.NewCenter(app.startButton),
		app.countdownBox,
	)))

	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu(app.GetMsg(config.TKeyMenuFile),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuImport), app.ShowImportDialog),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuExport), app.ShowExportDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow),
	)))
	app.Window.SetContent(content)
}

// boundEntry creates a digit-only entry bound to a view model field.
func (app *BirthdayTimerApp) boundEntry(maxLength int, data binding.String) *NumericalEntry {
	e := NewNumericalEntry(maxLength)
	e.Bind(data)
	app.unbinders = append(app.unbinders, e.Unbind)
	return e
}

// bindVisibility shows obj while the flag is true.
func (app *BirthdayTimerApp) bindVisibility(flag binding.Bool, obj fyne.CanvasObject) {
	l := binding.NewDataListener(func() {
		if v, _ := flag.Get(); v {
			obj.Show()
		} else {
			obj.Hide()
		}
	})
	flag.AddListener(l)
	app.unbinders = append(app.unbinders, func() { flag.RemoveListener(l) })
}

func (app *BirthdayTimerApp) countdownColumn(title string, value binding.String) fyne.CanvasObject {
	header := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	digits := widget.NewLabelWithData(value)
	digits.Alignment = fyne.TextAlignCenter
	digits.TextStyle = fyne.TextStyle{Bold: true}
	digits.SizeName = theme.SizeNameHeadingText
	app.unbinders = append(app.unbinders, digits.Unbind)

	return container.NewVBox(header, digits)
}

func inputColumn(label string, entry *NumericalEntry) fyne.CanvasObject {
	entry.PlaceHolder = label
	return container.NewVBox(widget.NewLabel(label), entry)
}

// ShowImportDialog lets the user pick a vCard file and then a contact.
func (app *BirthdayTimerApp) ShowImportDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if r == nil {
			return // cancelled
		}
		defer func() { _ = r.Close() }()

		if err := app.importContacts(r); err != nil {
			slog.Error(config.ErrImportFile,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, r.URI().Name(),
				config.LogKeyError, err)
			dialog.ShowError(err, app.Window)
			return
		}
		app.ShowContactsWindow()
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// importContacts parses a vCard stream and replaces the contact list.
func (app *BirthdayTimerApp) importContacts(r io.Reader) error {
	entries, err := engine.ParseBirthdays(app.Ctx, r, app.Clock.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrImportFile, err)
	}
	if len(entries) == 0 {
		return errors.New(app.GetMsg(config.TKeyErrNoContacts))
	}

	app.ContactsMut.Lock()
	app.Contacts = entries
	app.ContactsMut.Unlock()
	return nil
}

// ShowExportDialog saves the current countdown target as an .ics file.
func (app *BirthdayTimerApp) ShowExportDialog() {
	if _, _, ok := app.Timer.Target(); !ok {
		dialog.ShowInformation(app.GetMsg(config.TKeyMenuExport), app.GetMsg(config.TKeyErrNoTarget), app.Window)
		return
	}

	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if w == nil {
			return // cancelled
		}

		err = app.exportCountdown(w)
		if closeErr := w.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("%s: %w", config.ErrExportFile, closeErr)
		}
		if err != nil {
			slog.Error(config.ErrExportFile,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, w.URI().Name(),
				config.LogKeyError, err)
			dialog.ShowError(err, app.Window)
		}
	}, app.Window)
	d.SetFileName(config.ExportFileName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
	d.Show()
}

// exportCountdown writes the current target as an iCalendar event.
func (app *BirthdayTimerApp) exportCountdown(w io.Writer) error {
	target, name, ok := app.Timer.Target()
	if !ok {
		return errors.New(config.ErrNoTarget)
	}
	if err := engine.EncodeCountdownEvent(w, target, app.Clock.Now(), app.eventSummary(name)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportFile, err)
	}
	return nil
}

// eventSummary returns the localized event title, naming the contact if known.
func (app *BirthdayTimerApp) eventSummary(name string) string {
	if name == "" {
		return app.GetMsgData(config.TKeyEvtSummary, nil, config.FallbackSummary)
	}
	return app.GetMsgData(config.TKeyEvtSummaryFor,
		map[string]interface{}{"Name": name},
		fmt.Sprintf(config.FallbackSummaryFor, name))
}
