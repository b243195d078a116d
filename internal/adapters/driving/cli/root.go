// Package cli provides the cobra command tree for ragdesk.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ragdesk/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/ragdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ragdesk/internal/adapters/driven/ragapi"
	"github.com/custodia-labs/ragdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driven"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
	"github.com/custodia-labs/ragdesk/internal/core/services"
	"github.com/custodia-labs/ragdesk/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// GlobalFlags holds flags shared across all commands.
type GlobalFlags struct {
	ConfigDir string
	Verbose   bool
	Offline   bool
}

var globalFlags GlobalFlags

// Services holds the wired core services shared by every command.
type Services struct {
	Settings  driving.SettingsService
	Documents driving.DocumentCoordinator
	Chat      driving.ChatCoordinator

	// NewChat builds a chat coordinator requesting topK contexts.
	NewChat func(topK int) driving.ChatCoordinator
}

// appServices is set by the pre-run hook, or directly by tests.
var appServices *Services

var rootCmd = &cobra.Command{
	Use:   "ragdesk",
	Short: "Terminal console for a retrieval-augmented document store",
	Long: `ragdesk manages the documents behind a retrieval-augmented answering
service and lets you ask questions against them.

Run without a subcommand to open the interactive terminal UI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization cycle.
	rootCmd.PersistentPreRunE = setupServices
	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigDir, "config", "", "config directory (default: ~/.ragdesk)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Offline, "offline", false, "use an in-memory document store instead of the services")
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// SetServices injects pre-built services, bypassing the pre-run wiring.
func SetServices(s *Services) {
	appServices = s
}

// usesTerminalUI reports whether cmd takes over the terminal.
func usesTerminalUI(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == tuiCmd
}

func setupServices(cmd *cobra.Command, _ []string) error {
	if cmd == versionCmd || appServices != nil {
		return nil
	}

	configDir := globalFlags.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		configDir = dir
	}
	loadDotEnv(".env", filepath.Join(configDir, ".env"))

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if err := settingsService.Validate(settings); err != nil {
		return fmt.Errorf("invalid settings in %s: %w", store.Path(), err)
	}

	opts := logger.Options{Verbose: globalFlags.Verbose}
	if usesTerminalUI(cmd) {
		opts.File = settings.Log.File
	}
	if err := logger.Init(opts); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Debug("Config loaded from %s", store.Path())

	appServices = buildServices(settingsService, settings, globalFlags.Offline)
	return nil
}

// buildServices wires the coordinators over the HTTP gateway, or over an
// in-memory store when offline.
func buildServices(settingsService driving.SettingsService, settings *domain.AppSettings, offline bool) *Services {
	var docs driven.DocumentGateway
	var answers driven.AnswerGateway
	if offline {
		store := memory.NewDocumentStore()
		store.Seed(sampleDocuments...)
		docs, answers = store, store
		logger.Info("Offline mode: using in-memory document store")
	} else {
		client := ragapi.NewClient(ragapi.Config{
			EmbedURL: settings.API.EmbedURL,
			LLMURL:   settings.API.LLMURL,
			Timeout:  settings.API.Timeout,
		})
		docs, answers = client, client
		logger.Debug("Using embed api %s and llm api %s", settings.API.EmbedURL, settings.API.LLMURL)
	}

	toasts := services.NewToastQueue(settings.Toast.Duration)
	newChat := func(topK int) driving.ChatCoordinator {
		return services.NewChatService(answers, toasts, topK)
	}

	return &Services{
		Settings:  settingsService,
		Documents: services.NewDocumentCoordinator(docs, clipboard.New(), toasts, settings.Paging.Limit),
		Chat:      newChat(settings.Chat.TopK),
		NewChat:   newChat,
	}
}

// loadDotEnv loads each existing file. Variables already set win.
func loadDotEnv(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("Ignoring %s: %v", path, err)
		}
	}
}

// requireServices returns the wired services or an error when unset.
func requireServices() (*Services, error) {
	if appServices == nil {
		return nil, errors.New("services not configured")
	}
	return appServices, nil
}

// sampleDocuments seed the offline store.
var sampleDocuments = []string{
	"ragdesk lists stored documents page by page with an offset and a limit.",
	"Each upserted line becomes one document with a server-assigned id.",
	"Deleting every document requires typing the confirmation phrase DELETE.",
	"Ask questions in the chat screen; answers cite the closest documents.",
}
