package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ragdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragdesk/internal/core/domain"
)

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func newTestSettings(vars map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)
	svc.lookupEnv = envFrom(vars)
	return svc, store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	svc, _ := newTestSettings(nil)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.NoError(t, svc.Validate(settings))
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	svc, store := newTestSettings(nil)
	_ = store.Set(KeyEmbedURL, "http://embed:9000")
	_ = store.Set(KeyLLMURL, "http://llm:9001")
	_ = store.Set(KeyTimeout, "15s")
	_ = store.Set(KeyPageLimit, int64(50))
	_ = store.Set(KeyTopK, 8)
	_ = store.Set(KeyToastDuration, "3s")
	_ = store.Set(KeyLogFile, "/var/log/ragdesk.log")

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, "http://embed:9000", settings.API.EmbedURL)
	assert.Equal(t, "http://llm:9001", settings.API.LLMURL)
	assert.Equal(t, 15*time.Second, settings.API.Timeout)
	assert.Equal(t, 50, settings.Paging.Limit)
	assert.Equal(t, 8, settings.Chat.TopK)
	assert.Equal(t, 3*time.Second, settings.Toast.Duration)
	assert.Equal(t, "/var/log/ragdesk.log", settings.Log.File)
}

func TestSettingsService_Get_InvalidDuration(t *testing.T) {
	svc, store := newTestSettings(nil)
	_ = store.Set(KeyTimeout, "soon")

	_, err := svc.Get()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Get_EnvOverrides(t *testing.T) {
	svc, store := newTestSettings(map[string]string{
		EnvEmbedURL:  "http://env-embed",
		EnvLLMURL:    "http://env-llm",
		EnvPageLimit: "75",
		EnvTopK:      "not-a-number",
	})
	_ = store.Set(KeyEmbedURL, "http://stored")
	_ = store.Set(KeyTopK, 9)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, "http://env-embed", settings.API.EmbedURL)
	assert.Equal(t, "http://env-llm", settings.API.LLMURL)
	assert.Equal(t, 75, settings.Paging.Limit)
	assert.Equal(t, 9, settings.Chat.TopK, "unparseable override is ignored")
}

func TestSettingsService_Save(t *testing.T) {
	svc, store := newTestSettings(nil)
	settings := domain.DefaultAppSettings()
	settings.Paging.Limit = 100
	settings.API.Timeout = 30 * time.Second

	require.NoError(t, svc.Save(&settings))

	assert.Equal(t, 100, store.GetInt(KeyPageLimit))
	assert.Equal(t, "30s", store.GetString(KeyTimeout))
	assert.Equal(t, "2.4s", store.GetString(KeyToastDuration))

	loaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *loaded)
}

func TestSettingsService_Save_RejectsInvalid(t *testing.T) {
	svc, store := newTestSettings(nil)
	settings := domain.DefaultAppSettings()
	settings.Paging.Limit = 500

	err := svc.Save(&settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Keys())
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{KeyEmbedURL, "http://e:1", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "http://e:1", s.API.EmbedURL)
		}},
		{KeyLLMURL, "http://l:2", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "http://l:2", s.API.LLMURL)
		}},
		{KeyTimeout, "5s", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 5*time.Second, s.API.Timeout)
		}},
		{KeyPageLimit, "200", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 200, s.Paging.Limit)
		}},
		{KeyTopK, " 4 ", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 4, s.Chat.TopK)
		}},
		{KeyToastDuration, "1500ms", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 1500*time.Millisecond, s.Toast.Duration)
		}},
		{KeyLogFile, "/tmp/x.log", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/tmp/x.log", s.Log.File)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			svc, store := newTestSettings(nil)

			require.NoError(t, svc.Set(tt.key, tt.value))

			assert.Equal(t, []string{tt.key}, store.Keys(), "only the given key is stored")
			settings, err := svc.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.mode", "hybrid"},
		{"limit too large", KeyPageLimit, "201"},
		{"limit zero", KeyPageLimit, "0"},
		{"limit not a number", KeyPageLimit, "many"},
		{"top_k too large", KeyTopK, "51"},
		{"bad url", KeyEmbedURL, "not a url"},
		{"empty url", KeyLLMURL, ""},
		{"bad duration", KeyTimeout, "forever"},
		{"negative timeout", KeyTimeout, "-1s"},
		{"zero toast", KeyToastDuration, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestSettings(nil)

			err := svc.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_Validate_Nil(t *testing.T) {
	svc, _ := newTestSettings(nil)

	assert.ErrorIs(t, svc.Validate(nil), domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	svc, _ := newTestSettings(nil)

	keys := svc.Keys()
	assert.Equal(t, []string{
		KeyEmbedURL, KeyLLMURL, KeyTimeout, KeyPageLimit, KeyTopK, KeyToastDuration, KeyLogFile,
	}, keys)

	keys[0] = "mutated"
	assert.Equal(t, KeyEmbedURL, svc.Keys()[0])
}

func TestSettingsService_GetDefaults_LogNextToConfigFile(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	svc := NewSettingsService(store)

	defaults := svc.GetDefaults()

	assert.Equal(t, filepath.Join(dir, DefaultLogFileName), defaults.Log.File)
}
