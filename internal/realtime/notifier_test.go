package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotifier_DisabledWithoutKeys(t *testing.T) {
	n := NewNotifier("", "", "")

	// publishes on a disabled notifier are silent no-ops
	assert.NotPanics(t, func() {
		n.EventChanged("event_created", "e1")
		n.EventsReset()
	})
}

func TestNewNotifier_EnabledWithKeys(t *testing.T) {
	n := NewNotifier("pub-key", "sub-key", "")

	assert.NotNil(t, n.pubnub)
}
