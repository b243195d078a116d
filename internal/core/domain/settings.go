package domain

import (
	"time"
)

// Default backend endpoints.
const (
	DefaultEmbedAPIURL = "http://localhost:8000"
	DefaultLLMAPIURL   = "http://localhost:8001"
)

// APISettings configures the backend endpoints.
type APISettings struct {
	// EmbedURL is the document store and search service base URL.
	EmbedURL string

	// LLMURL is the answering service base URL.
	LLMURL string

	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout time.Duration
}

// PagingSettings configures the document list.
type PagingSettings struct {
	// Limit is the initial page size.
	Limit int
}

// ChatSettings configures the chat workflow.
type ChatSettings struct {
	// TopK is the number of contexts requested per question.
	TopK int
}

// ToastSettings configures notifications.
type ToastSettings struct {
	// Duration is how long a toast stays visible.
	Duration time.Duration
}

// LogSettings configures the log sink.
type LogSettings struct {
	// File is the rotating log file path. Empty logs to stderr.
	File string
}

// AppSettings holds all application settings.
type AppSettings struct {
	API    APISettings
	Paging PagingSettings
	Chat   ChatSettings
	Toast  ToastSettings
	Log    LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			EmbedURL: DefaultEmbedAPIURL,
			LLMURL:   DefaultLLMAPIURL,
		},
		Paging: PagingSettings{Limit: DefaultPageLimit},
		Chat:   ChatSettings{TopK: DefaultTopK},
		Toast:  ToastSettings{Duration: DefaultToastDuration},
	}
}
