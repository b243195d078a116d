package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragdesk/internal/core/services"
)

// newTestPorts wires both coordinators to one memory store and toast slot.
func newTestPorts(texts ...string) (*Ports, *services.ToastQueue) {
	store := memory.NewDocumentStore()
	store.Seed(texts...)
	toasts := services.NewToastQueue(time.Minute)
	return NewPorts(
		services.NewDocumentCoordinator(store, nil, toasts, 2),
		services.NewChatService(store, toasts, 3),
	), toasts
}

func TestNewPorts(t *testing.T) {
	ports, _ := newTestPorts()

	require.NotNil(t, ports)
	assert.NotNil(t, ports.Documents)
	assert.NotNil(t, ports.Chat)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingDocuments(t *testing.T) {
	ports, _ := newTestPorts()
	ports.Documents = nil

	assert.ErrorIs(t, ports.Validate(), ErrMissingDocumentCoordinator)
}

func TestPorts_Validate_MissingChat(t *testing.T) {
	ports, _ := newTestPorts()
	ports.Chat = nil

	assert.ErrorIs(t, ports.Validate(), ErrMissingChatCoordinator)
}
