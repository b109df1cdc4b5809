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
	AppName           = "Go Companion"
	AppID             = "com.github.tartampluch.go-companion"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.yaml"
	StoreFileName     = "state.json"
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
	// Used for sensitive files like logs and the local state store.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure data directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags, Commands & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagContacts     = "contacts"
	FlagPort         = "port"
	FlagDescDebug    = "enable debug logging to stdout"
	FlagDescConfig   = "path to the settings file"
	FlagDescContacts = "path to the contacts vCard file"
	FlagDescPort     = "port for the local calendar feed"

	CmdCheckin           = "checkin"
	CmdStatus            = "status"
	CmdNotifications     = "notifications"
	CmdServe             = "serve"
	CmdDescCheckin       = "Record today's check-in and report the streak"
	CmdDescStatus        = "Show the current streak counters"
	CmdDescNotifications = "Derive and list today's notifications"
	CmdDescServe         = "Serve the birthday/reminder calendar feed on localhost"
	UsageText            = "go-companion [global options] command [command options]"
	UsageShort           = "Personal companion core: notifications, reminders and check-in streaks"
)

// -----------------------------------------------------------------------------
// Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultTimezone = "UTC"
	DefaultLanguage = "en"
	DefaultPort     = "18080"
	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
	FallbackName    = "Unknown"
	UIDSalt         = "go-companion-v1-" // Salt for deterministic contact UID generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
)

// SupportedLanguages defines the list of available languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Notification Rules
// -----------------------------------------------------------------------------

const (
	// Deterministic notification IDs, one per rule per contact.
	FormatBirthdayID = "birthday-%s"
	FormatReminderID = "reminder-%s"

	// Birthday rule window: medium priority up to this many days ahead.
	BirthdayWindowDays = 3

	// Reminder rule windows, in whole days relative to today.
	ReminderMediumMaxDays = 3 // 2..3 days out: medium
	ReminderLowMaxDays    = 7 // 4..7 days out: low; beyond: silence

	// Titles.
	TitleBirthdayToday    = "Birthday Today"
	TitleBirthdayUpcoming = "Upcoming Birthday"
	TitleContactReminder  = "Time to Reach Out"

	// English subtitle formats. The i18n layer may override these via the
	// engine's injectable formatters; these are the canonical fallbacks.
	FormatBirthdayToday    = "%s is celebrating today!"
	FormatBirthdayTomorrow = "%s's birthday is tomorrow"
	FormatBirthdayInDays   = "%s's birthday is in %d days"
	FormatOverduePlural    = "Reach out %d days overdue"
	FormatOverdueSingular  = "Reach out %d day overdue"
	SubtitleDueToday       = "Reach out today"
	SubtitleDueTomorrow    = "Due tomorrow"
	FormatDueInDays        = "Due in %d days"
)

// Metadata keys carried on derived notifications for display back-references.
const (
	MetaContactID   = "contactId"
	MetaContactName = "contactName"
	MetaIsOverdue   = "isOverdue"
	MetaDaysUntil   = "daysUntil"
)

// -----------------------------------------------------------------------------
// Snooze Options
// -----------------------------------------------------------------------------

const (
	SnoozeOptionLater    = "later"
	SnoozeOptionTomorrow = "tomorrow"
	SnoozeOptionWeek     = "week"

	SnoozeLaterDuration = 3 * time.Hour
	SnoozeWeekDuration  = 7 * 24 * time.Hour
	SnoozeTomorrowHour  = 9 // 09:00 reference-zone wall clock
)

// -----------------------------------------------------------------------------
// Persistence
// -----------------------------------------------------------------------------

const (
	// StorageKeyStreak is the single key under which the streak record lives
	// in the local key-value store.
	StorageKeyStreak = "streak_data"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Companion//Feed//EN"
	ICalCalName   = "Companion"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gocompanion"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// vCard Fields
	VCardBDAY         = "BDAY"
	VCardFN           = "FN"
	VCardN            = "N"
	VCardUID          = "UID"
	VCardContactAgain = "X-CONTACT-AGAIN"

	DefaultICalRefresh = 1 * time.Hour

	FormatUID = "%s-%d@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no events
	// are found, so that feed clients never see an invalid body.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Date Layouts
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	AddrSeparator      = ":"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrDateParse       = "unable to parse date"
	ErrTimezoneLoad    = "failed to load reference timezone"
	ErrSettingsRead    = "failed to read settings file"
	ErrSettingsParse   = "failed to parse settings file"
	ErrSettingsInvalid = "invalid settings"
	ErrPortRange       = "feed port must be between 1 and 65535"
	ErrPortRequired    = "feed port is required"
	ErrContactsOpen    = "failed to open contacts file"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrStoreRead       = "failed to read state store"
	ErrStoreWrite      = "failed to write state store"
	ErrStoreDecode     = "failed to decode stored value"
	ErrKeyMissing      = "key not found in store"
	ErrServerStartup   = "feed server startup failed"
	ErrServerShutdown  = "feed server shutdown failed"
	ErrWriteResp       = "failed to write response body"
	ErrLogFile         = "failed to open log file"
	ErrDataDir         = "could not determine user data dir"
	ErrCreateDir       = "could not create app data dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgVersionOutput   = "%s version %s (%s/%s)\n"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgDeriveDone      = "Notification derivation complete"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date value"
	MsgContactsLoaded  = "Contacts loaded"
	MsgStateLoaded     = "Streak state loaded"
	MsgStateMissing    = "No streak state found, starting fresh"
	MsgStateLoadFailed = "Streak state load failed, using defaults"
	MsgStateSaveFailed = "Streak state save failed, keeping in-memory record"
	MsgStreakBroken    = "Streak broken by gap, counter reset"
	MsgCheckInDone     = "Check-in recorded"
	MsgCheckInRepeat   = "Check-in already recorded today"
	MsgSnoozeUnknown   = "Unknown snooze option, defaulting to later"
	MsgFeedGenerated   = "Calendar feed generated"
	MsgServerListen    = "Feed server listening"
	MsgServerStop      = "Shutting down feed server..."
	MsgCacheUpdated    = "Feed cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
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
	LogKeyPort      = "port"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyContactID = "contact_id"
	LogKeyDaysUntil = "days_until"
	LogKeyPriority  = "priority"
	LogKeyStreak    = "streak"
	LogKeyLongest   = "longest_streak"
	LogKeyCheckIns  = "total_check_ins"
	LogKeyLastDate  = "last_check_in"
	LogKeyGapDays   = "gap_days"
	LogKeyOption    = "option"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "with_dates"
	LogKeyToday     = "birthdays_today"
	LogKeyPath      = "path"
	LogKeyTimezone  = "timezone"

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
	CompCalendar = "calendar"
	CompNotify   = "notify"
	CompStreak   = "streak"
	CompStore    = "store"
	CompContacts = "contacts"
	CompFeed     = "feed"
	CompServer   = "server"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyBirthdayToday     = "notif_birthday_today"
	TKeyBirthdayTomorrow  = "notif_birthday_tomorrow"
	TKeyBirthdayInDays    = "notif_birthday_in_days"
	TKeyOverdueSingular   = "notif_overdue_one"
	TKeyOverduePlural     = "notif_overdue_many"
	TKeyDueToday          = "notif_due_today"
	TKeyDueTomorrow       = "notif_due_tomorrow"
	TKeyDueInDays         = "notif_due_in_days"
	TKeyTitleBdayToday    = "title_birthday_today"
	TKeyTitleBdayUpcoming = "title_birthday_upcoming"
	TKeyTitleReachOut     = "title_reach_out"
	TKeyLblStreak         = "lbl_current_streak"
	TKeyLblLongest        = "lbl_longest_streak"
	TKeyLblCheckIns       = "lbl_total_check_ins"
	TKeyLblNoBanner       = "lbl_no_banner"
	TKeyMsgCheckedIn      = "msg_checked_in"
	TKeyMsgAlreadyIn      = "msg_already_checked_in"
)
