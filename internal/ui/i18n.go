package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/birthday-timer/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n loads locales/active.<lang>.json for every supported language.
// A language whose file fails to load is dropped from the settings list.
func (app *BirthdayTimerApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	loaded := make([]string, 0, len(config.SupportedLanguages))
	for _, lang := range config.SupportedLanguages {
		path := fmt.Sprintf(config.LocaleFilePattern, lang)
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, path,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang)
		loaded = append(loaded, lang)
	}

	app.SupportedLanguages = loaded
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer switches to the language stored in preferences.
func (app *BirthdayTimerApp) UpdateLocalizer() {
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang, config.DefaultLanguage)
}

// GetMsg translates key, or returns the key itself when it has no translation.
func (app *BirthdayTimerApp) GetMsg(key string) string {
	return app.GetMsgData(key, nil, key)
}

// GetMsgData translates a templated key. fallback is returned as is when the
// key has no translation.
func (app *BirthdayTimerApp) GetMsgData(key string, data map[string]interface{}, fallback string) string {
	if app.Localizer == nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, config.ErrLocNotInit)
		return fallback
	}

	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return fallback
	}
	return msg
}
