package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/birthday-timer/internal/config"
)

// ShowSettingsWindow displays the preferences dialog.
// Only one instance is open at a time.
func (app *BirthdayTimerApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	langSelect := widget.NewSelect(app.SupportedLanguages, nil)
	langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang))

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		app.saveSettings(langSelect.Selected)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// saveSettings persists the language and re-localizes the open windows.
func (app *BirthdayTimerApp) saveSettings(lang string) {
	slog.Info(config.MsgSettingsSave,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyLang, lang)

	if lang == "" {
		lang = config.DefaultLanguage
	}
	app.Preferences.SetString(config.PrefLanguage, lang)
	app.UpdateLocalizer()

	if app.Window != nil {
		slog.Debug(config.MsgLanguageApply, config.LogKeyComponent, config.CompUISet, config.LogKeyLang, lang)
		app.buildMainWindow()
	}
}
