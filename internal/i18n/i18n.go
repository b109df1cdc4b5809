// Package i18n provides localized display strings for notifications and the
// CLI. Locale files are embedded so the binary stays self-contained.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-companion/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator wraps a go-i18n bundle with a current-language localizer.
type Translator struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer

	// SupportedLanguages lists the locale codes detected in the embedded files.
	SupportedLanguages []string
}

// New loads the embedded locale bundle and selects the given language.
func New(lang string) *Translator {
	t := &Translator{}

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	log := slog.With(config.LogKeyComponent, config.CompI18n)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		log.Error(config.ErrLocalesAccess, config.LogKeyError, err)
		t.bundle = bundle
		t.SetLanguage(lang)
		return t
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, name)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			log.Warn(config.MsgLocaleBadName, config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			log.Error(config.ErrLocaleLoad,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		t.SupportedLanguages = append(t.SupportedLanguages, langCode)
		log.Debug(config.MsgLocaleLoaded,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	t.bundle = bundle
	t.SetLanguage(lang)
	return t
}

// SetLanguage switches the active localizer.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	t.localizer = goi18n.NewLocalizer(t.bundle, lang)
}

// Msg translates a key without template data. Missing keys return the key
// itself so the UI never shows an empty string.
func (t *Translator) Msg(key string) string {
	return t.MsgData(key, nil)
}

// MsgData translates a key with template data.
func (t *Translator) MsgData(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// BirthdayFormatter adapts the translator to the notification engine's
// injectable birthday subtitle hook.
func (t *Translator) BirthdayFormatter() func(name string, days int) string {
	return func(name string, days int) string {
		switch days {
		case 0:
			return t.MsgData(config.TKeyBirthdayToday, map[string]any{"Name": name})
		case 1:
			return t.MsgData(config.TKeyBirthdayTomorrow, map[string]any{"Name": name})
		default:
			return t.MsgData(config.TKeyBirthdayInDays, map[string]any{"Name": name, "Days": days})
		}
	}
}

// ReminderFormatter adapts the translator to the engine's reminder subtitle hook.
func (t *Translator) ReminderFormatter() func(days int) string {
	return func(days int) string {
		switch {
		case days < 0:
			overdue := -days
			key := config.TKeyOverduePlural
			if overdue == 1 {
				key = config.TKeyOverdueSingular
			}
			return t.MsgData(key, map[string]any{"Days": overdue})
		case days == 0:
			return t.Msg(config.TKeyDueToday)
		case days == 1:
			return t.Msg(config.TKeyDueTomorrow)
		default:
			return t.MsgData(config.TKeyDueInDays, map[string]any{"Days": days})
		}
	}
}
