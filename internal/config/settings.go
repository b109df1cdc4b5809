package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Settings holds the user-editable configuration, loaded from a YAML file.
// Missing file or missing fields fall back to defaults; a malformed file is an
// error because silently ignoring a typo would be worse than failing loudly.
type Settings struct {
	// Timezone is the IANA name of the reference zone for all day-boundary
	// decisions (e.g. "Europe/Paris"). All streak and notification dates are
	// computed in this zone regardless of the device-local zone.
	Timezone string `yaml:"timezone"`

	// Language selects the locale for display strings (ISO 639-1).
	Language string `yaml:"language"`

	// ContactsPath points to the vCard file to import contacts from.
	ContactsPath string `yaml:"contacts_path"`

	// FeedPort is the localhost port for the calendar feed server.
	FeedPort string `yaml:"feed_port"`

	// DataDir overrides the state-store location. Empty means the
	// platform-specific user data directory.
	DataDir string `yaml:"data_dir"`
}

// DefaultSettings returns a Settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		Timezone: DefaultTimezone,
		Language: DefaultLanguage,
		FeedPort: DefaultPort,
	}
}

// LoadSettings reads and validates the settings file at path.
// A missing file is not an error: defaults are returned.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// applyDefaults fills empty fields so a partial file still yields a usable config.
func (s *Settings) applyDefaults() {
	if s.Timezone == "" {
		s.Timezone = DefaultTimezone
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.FeedPort == "" {
		s.FeedPort = DefaultPort
	}
}

// Validate checks ranges and formats that the YAML decoder cannot.
func (s Settings) Validate() error {
	port, err := strconv.Atoi(s.FeedPort)
	if err != nil {
		return fmt.Errorf("%s: %s: %q", ErrSettingsInvalid, ErrPortRange, s.FeedPort)
	}
	if port < MinPort || port > MaxPort {
		return fmt.Errorf("%s: %s: %d", ErrSettingsInvalid, ErrPortRange, port)
	}
	return nil
}
