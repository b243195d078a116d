package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragdesk/internal/core/domain"
	"github.com/custodia-labs/ragdesk/internal/core/ports/driving"
	"github.com/custodia-labs/ragdesk/internal/core/services"
)

// setupTestServices wires the commands to a seeded in-memory store and
// returns a cleanup that restores the package state.
func setupTestServices(texts ...string) (*memory.DocumentStore, func()) {
	store := memory.NewDocumentStore()
	store.Seed(texts...)
	toasts := services.NewToastQueue(time.Minute)
	newChat := func(topK int) driving.ChatCoordinator {
		return services.NewChatService(store, toasts, topK)
	}

	SetServices(&Services{
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		Documents: services.NewDocumentCoordinator(store, nil, toasts, domain.DefaultPageLimit),
		Chat:      newChat(domain.DefaultTopK),
		NewChat:   newChat,
	})

	return store, func() {
		appServices = nil
		docsOffset, docsLimit, docsFilter, docsJSON = 0, 0, "", false
		upsertFile, assumeYes, phraseFlag = "", false, ""
		searchTopK, searchJSON = domain.DefaultTopK, false
		askTopK, askJSON = 0, false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

// run executes the root command with args and optional stdin, returning
// stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	var in io.Reader = strings.NewReader(stdin)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func count(t *testing.T, store *memory.DocumentStore) int64 {
	t.Helper()
	stats, err := store.Stats(t.Context())
	require.NoError(t, err)
	return stats.NumEntities
}
