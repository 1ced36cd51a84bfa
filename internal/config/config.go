package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Birthday Timer"
	AppID       = "com.github.tartampluch.birthday-timer"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Countdown
// -----------------------------------------------------------------------------

const (
	// TickInterval is the period between two recomputations of the remaining time.
	TickInterval = 1 * time.Second

	SecondsPerMinute = 60
	SecondsPerHour   = 3600

	// Input bounds. Months are 1-indexed.
	MinDay   = 1
	MinMonth = 1
	MaxMonth = 12
	MinYear  = 1
	MaxYear  = 9999

	// Maximum number of digits accepted by the input fields.
	MaxLenDay   = 2
	MaxLenMonth = 2
	MaxLenYear  = 4

	// Field names used in validation errors and logs.
	FieldDay   = "day"
	FieldMonth = "month"
	FieldYear  = "year"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 420
	MainWindowHeight    = 360
	SettingsWindowWidth = 400

	// Preference Keys
	PrefLanguage = "language"
	PrefLastRun  = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
// Each needs an embedded locale file matching LocaleFilePattern.
var SupportedLanguages = []string{"en", "fr"}

// LocaleFilePattern locates a language's messages in the embedded locales.
const LocaleFilePattern = "locales/active.%s.json"

// -----------------------------------------------------------------------------
// UI Contacts Window Constants
// -----------------------------------------------------------------------------

const (
	// Window Dimensions
	ContactsWinWidth  = 550
	ContactsWinHeight = 400

	// Table Column IDs
	ColIDName = 0
	ColIDDate = 1
	ColIDAge  = 2
	ColCount  = 3

	// Table Layout
	ColWidthName = 250
	ColWidthDate = 120
	ColWidthAge  = 120

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	HeaderPlaceholder = "Header"
	AgeUnknown        = "-"
	FormatAgeNext     = "%d"
	LogMsgOpenWin     = "Opening Contacts Window"
	LogMsgSorted      = "Contacts sorted"
	LogMsgPicked      = "Contact selected"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinSettings   = "win_settings_title"
	TKeyWinContacts   = "win_contacts_title"
	TKeyMenuFile      = "menu_file"
	TKeyMenuImport    = "menu_import"
	TKeyMenuExport    = "menu_export"
	TKeyMenuSettings  = "menu_settings"
	TKeyLblPrompt     = "lbl_prompt"
	TKeyLblDay        = "lbl_day"
	TKeyLblMonth      = "lbl_month"
	TKeyLblYear       = "lbl_year"
	TKeyErrDateFuture = "err_date_future"
	TKeyBtnStart      = "btn_start"
	TKeyLblHours      = "lbl_hours"
	TKeyLblMinutes    = "lbl_minutes"
	TKeyLblSeconds    = "lbl_seconds"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblGeneral    = "lbl_general"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyEvtSummary    = "event_summary"      // No name known
	TKeyEvtSummaryFor = "event_summary_name" // Requires Name
	TKeyErrNoContacts = "err_no_contacts"
	TKeyErrNoTarget   = "err_no_target"

	// Column Headers & Formats
	TKeyColName    = "col_name"
	TKeyColDate    = "col_date"
	TKeyColAge     = "col_age"
	TKeyFormatDate = "format_date_short" // Date format pattern (e.g., "2006-01-02")
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"
	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
	UIDSalt         = "birthday-timer-v1-"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Birthday Timer//Countdown//EN"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "birthdaytimer"

	// iCal/vCard Fields
	PropUID      = "UID"
	PropSummary  = "SUMMARY"
	PropDTStart  = "DTSTART"
	PropDTStamp  = "DTSTAMP"
	PropVersion  = "VERSION"
	PropProdid   = "PRODID"
	PropCalScale = "CALSCALE"
	PropMethod   = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%x@%s"

	// File Extensions
	ExtVCF         = ".vcf"
	ExtVCard       = ".vcard"
	ExtICS         = ".ics"
	ExportFileName = "birthday-timer" + ExtICS
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate  = "invalid date"
	ErrFieldEmpty   = "field is empty"
	ErrFieldNumeric = "field is not numeric"
	ErrFieldRange   = "field is out of range"
	ErrNotInFuture  = "date is not in the future"
	ErrVCardParse   = "failed to parse vCard stream"
	ErrICalEncode   = "failed to encode iCalendar data"
	ErrDateParse    = "unable to parse date"
	ErrLogFile      = "failed to open log file"
	ErrCacheDir     = "could not determine user cache dir"
	ErrCreateDir    = "could not create app cache dir"
	ErrAppFailed    = "application failed unexpectedly"
	ErrLocaleLoad   = "failed to load locale file"
	ErrLocNotInit   = "localizer not initialized"
	ErrImportFile   = "failed to read contacts file"
	ErrExportFile   = "failed to write calendar file"
	ErrNoTarget     = "no countdown target to export"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary    = "Birthday"
	FallbackSummaryFor = "Birthday: %s"
	FallbackName       = "Unknown"

	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgParseSuccess   = "vCard parsing successful"
	MsgExportSuccess  = "Calendar export successful"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSubmit         = "Countdown submitted"
	MsgSubmitRejected = "Countdown rejected"
	MsgSessionStart   = "Countdown session started"
	MsgSessionStop    = "Countdown session cancelled"
	MsgSessionDone    = "Countdown reached zero"
	MsgSettingsOpen   = "Opening settings window"
	MsgSettingsFocus  = "Settings window already open, requesting focus"
	MsgSettingsSave   = "Saving preferences"
	MsgLanguageApply  = "Applying language"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyTarget    = "target"
	LogKeyRemaining = "remaining"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompEngine    = "engine"
	CompCountdown = "countdown"
	CompMain      = "main"
	CompI18n      = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
