package entitlements

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedirectTaskFiresOnce(t *testing.T) {
	var fired atomic.Int32
	task := NewRedirectTask(10*time.Millisecond, func() { fired.Add(1) })

	assert.Eventually(t, func() bool { return task.Fired() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	// Canceling after the fact changes nothing.
	task.Cancel()
	assert.Equal(t, int32(1), fired.Load())
	assert.False(t, task.Canceled())
}

func TestRedirectTaskCancelPreventsFire(t *testing.T) {
	var fired atomic.Int32
	task := NewRedirectTask(30*time.Millisecond, func() { fired.Add(1) })

	task.Cancel()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), fired.Load())
	assert.True(t, task.Canceled())
	assert.False(t, task.Fired())
}

func TestRedirectTaskCancelIsIdempotent(t *testing.T) {
	task := NewRedirectTask(30*time.Millisecond, func() {})

	task.Cancel()
	task.Cancel()
	task.Cancel()

	assert.True(t, task.Canceled())
}
