package terminal

import (
	"errors"
	"strings"
	"testing"

	"gravity/internal/commands"
	"gravity/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	log := logger.New("")
	reg := commands.NewRegistry()
	ran := 0
	reg.Register("pause", "pause", nil, func() error {
		ran++
		return nil
	})
	reg.Register("boom", "fails", nil, func() error { return errors.New("boom failed") })
	term := New(log, reg)
	assert.False(t, term.IsOpen())

	term.Submit("cmd pause")
	assert.Equal(t, 1, ran)

	term.Submit("cmd boom")
	term.Submit("hello")
	term.Submit("cmd nope")

	lines := log.Lines()
	require.Len(t, lines, 7)
	assert.True(t, strings.HasSuffix(lines[0], "cmd pause"))
	assert.True(t, strings.HasSuffix(lines[2], "boom failed"))
	assert.Contains(t, lines[4], "not a command")
	assert.Contains(t, lines[6], "unknown command: nope")
}
