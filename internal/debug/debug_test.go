package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "FPS: 60", FormatFPS(60))
	assert.Equal(t, "Mem: 1.50 MiB", FormatMem(3*512*1024))
}

func TestDefaultsHidden(t *testing.T) {
	d := New()
	assert.False(t, d.ShowFPS)
	assert.False(t, d.ShowMemAlloc)
	d.SetShowFPS(true)
	d.SetShowMemAlloc(true)
	assert.True(t, d.ShowFPS)
	assert.True(t, d.ShowMemAlloc)
}
