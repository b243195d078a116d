package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ragdesk/internal/core/services"
)

func TestBox_ViewEmpty(t *testing.T) {
	box := NewBox(nil, services.NewToastQueue(time.Minute))

	assert.Equal(t, "", box.View())
	assert.Nil(t, box.Sync())
}

func TestBox_NilSource(t *testing.T) {
	box := NewBox(nil, nil)

	assert.Equal(t, "", box.View())
	assert.Nil(t, box.Sync())
}

func TestBox_ViewKinds(t *testing.T) {
	queue := services.NewToastQueue(time.Minute)
	box := NewBox(nil, queue)

	queue.OK("upserted: 2")
	assert.Contains(t, box.View(), "✓ upserted: 2")

	queue.Error("list failed: boom")
	assert.Contains(t, box.View(), "✗ list failed: boom")
}

func TestBox_SyncSchedulesOncePerToast(t *testing.T) {
	queue := services.NewToastQueue(time.Minute)
	box := NewBox(nil, queue)

	queue.OK("first")
	assert.NotNil(t, box.Sync())
	assert.Nil(t, box.Sync())

	queue.OK("second")
	assert.NotNil(t, box.Sync())
}

func TestExpire_ReportsToastID(t *testing.T) {
	queue := services.NewToastQueue(5 * time.Millisecond)
	posted := queue.OK("short")

	cmd := Expire(posted)
	require.NotNil(t, cmd)

	msg := cmd()
	expired, ok := msg.(messages.ToastExpired)
	require.True(t, ok)
	assert.Equal(t, posted.ID, expired.ID)

	_, live := queue.Current()
	assert.False(t, live)
}
