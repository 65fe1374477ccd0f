package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var s Status
	assert.False(t, s.Visible())

	s.Set("saved", false, now, time.Second)
	assert.True(t, s.Visible())

	s.ClearExpired(now.Add(500 * time.Millisecond))
	assert.True(t, s.Visible())

	s.ClearExpired(now.Add(2 * time.Second))
	assert.False(t, s.Visible())

	s.Set("sticky", true, now, 0)
	s.ClearExpired(now.Add(time.Hour))
	assert.True(t, s.Visible())
	assert.True(t, s.IsError)
}
