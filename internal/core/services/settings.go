package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driven"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
	"github.com/custodia-labs/ragdesk/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyEmbedURL      = "api.embed_url"
	KeyLLMURL        = "api.llm_url"
	KeyTimeout       = "api.timeout"
	KeyPageLimit     = "paging.limit"
	KeyTopK          = "chat.top_k"
	KeyToastDuration = "toast.duration"
	KeyLogFile       = "log.file"
)

// Environment variables that override stored settings.
const (
	EnvEmbedURL  = "EMBED_API_URL"
	EnvLLMURL    = "LLM_API_URL"
	EnvPageLimit = "RAGDESK_PAGE_LIMIT"
	EnvTopK      = "RAGDESK_TOP_K"
)

// MaxTopK bounds the number of contexts requested per question.
const MaxTopK = 50

// DefaultLogFileName is the log file created next to the config file.
const DefaultLogFileName = "ragdesk.log"

var settingKeys = []string{
	KeyEmbedURL,
	KeyLLMURL,
	KeyTimeout,
	KeyPageLimit,
	KeyTopK,
	KeyToastDuration,
	KeyLogFile,
}

// SettingsService manages application settings. Stored values are layered
// over the defaults, and environment variables are layered over both.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves the effective application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.GetDefaults()

	settings.API.EmbedURL = s.getString(KeyEmbedURL, settings.API.EmbedURL)
	settings.API.LLMURL = s.getString(KeyLLMURL, settings.API.LLMURL)
	settings.Paging.Limit = s.getInt(KeyPageLimit, settings.Paging.Limit)
	settings.Chat.TopK = s.getInt(KeyTopK, settings.Chat.TopK)
	settings.Log.File = s.getString(KeyLogFile, settings.Log.File)

	var err error
	if settings.API.Timeout, err = s.getDuration(KeyTimeout, settings.API.Timeout); err != nil {
		return nil, err
	}
	if settings.Toast.Duration, err = s.getDuration(KeyToastDuration, settings.Toast.Duration); err != nil {
		return nil, err
	}

	s.applyEnv(&settings)
	return &settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	values := map[string]any{
		KeyEmbedURL:      settings.API.EmbedURL,
		KeyLLMURL:        settings.API.LLMURL,
		KeyTimeout:       settings.API.Timeout.String(),
		KeyPageLimit:     settings.Paging.Limit,
		KeyTopK:          settings.Chat.TopK,
		KeyToastDuration: settings.Toast.Duration.String(),
		KeyLogFile:       settings.Log.File,
	}
	for _, key := range settingKeys {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set parses value for key, validates the result and persists that key only.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	var stored any
	switch key {
	case KeyEmbedURL:
		settings.API.EmbedURL = value
		stored = value
	case KeyLLMURL:
		settings.API.LLMURL = value
		stored = value
	case KeyLogFile:
		settings.Log.File = value
		stored = value
	case KeyTimeout, KeyToastDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		if key == KeyTimeout {
			settings.API.Timeout = d
		} else {
			settings.Toast.Duration = d
		}
		stored = d.String()
	case KeyPageLimit, KeyTopK:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		if key == KeyPageLimit {
			settings.Paging.Limit = n
		} else {
			settings.Chat.TopK = n
		}
		stored = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.Validate(settings); err != nil {
		return err
	}
	return s.configStore.Set(key, stored)
}

// Validate checks settings against the accepted ranges.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	err := validation.Errors{
		KeyEmbedURL: validation.Validate(settings.API.EmbedURL, validation.Required, is.URL),
		KeyLLMURL:   validation.Validate(settings.API.LLMURL, validation.Required, is.URL),
		KeyTimeout:  validation.Validate(settings.API.Timeout, validation.Min(time.Duration(0))),
		KeyPageLimit: validation.Validate(settings.Paging.Limit,
			validation.Required, validation.Min(domain.MinPageLimit), validation.Max(domain.MaxPageLimit)),
		KeyTopK: validation.Validate(settings.Chat.TopK,
			validation.Required, validation.Min(1), validation.Max(MaxTopK)),
		KeyToastDuration: validation.Validate(settings.Toast.Duration,
			validation.Required, validation.Min(time.Millisecond)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// Keys returns the supported setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings. The log file lives next to the
// config file unless the store is not file backed.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	if path := s.configStore.Path(); filepath.IsAbs(path) {
		defaults.Log.File = filepath.Join(filepath.Dir(path), DefaultLogFileName)
	}
	return defaults
}

// applyEnv layers environment overrides onto settings. Unparseable numbers
// are ignored with a warning.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if v, ok := s.lookupEnv(EnvEmbedURL); ok && v != "" {
		settings.API.EmbedURL = v
	}
	if v, ok := s.lookupEnv(EnvLLMURL); ok && v != "" {
		settings.API.LLMURL = v
	}
	if v, ok := s.lookupEnv(EnvPageLimit); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			settings.Paging.Limit = n
		} else {
			logger.Warn("Ignoring %s=%q: not an integer", EnvPageLimit, v)
		}
	}
	if v, ok := s.lookupEnv(EnvTopK); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			settings.Chat.TopK = n
		} else {
			logger.Warn("Ignoring %s=%q: not an integer", EnvTopK, v)
		}
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return d, nil
}
