package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"propositosAPI/internal/types/notification"
)

func TestDispatcherDrainsQueueOnStop(t *testing.T) {
	// No push provider configured: jobs are cheap no-ops, so anything left
	// in the queue after Stop would be a real leak.
	d := NewNotificationDispatcher(nil)

	for i := 0; i < 50; i++ {
		d.Dispatch(&notification.Notification{ID: uuid.New()})
	}

	d.Stop()

	assert.Empty(t, d.jobQueue)
}

func TestDispatchAfterStopDoesNotBlockForever(t *testing.T) {
	d := NewNotificationDispatcher(nil)
	d.Stop()

	// Queue has capacity, so a late Dispatch just enqueues and is dropped
	// with the process; it must not deadlock the caller.
	d.Dispatch(&notification.Notification{ID: uuid.New()})
}
