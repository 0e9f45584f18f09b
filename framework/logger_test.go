package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerRecordsMessages(t *testing.T) {
	l := &CapturingLogger{}
	l.Println("first message")
	l.Printf("formatted %d", 2)

	output := l.Output()
	require.Len(t, output, 2)
	assert.Equal(t, "first message", output[0].Message)
	assert.Equal(t, "formatted 2", output[1].Message)
	assert.False(t, output[0].Time.IsZero())
}

func TestCapturedOutputToString(t *testing.T) {
	l := &CapturingLogger{}
	l.Println("a")
	l.Println("b")

	s := l.Output().ToString("  DEBUG ")
	lines := strings.Split(s, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  DEBUG ["))
	assert.True(t, strings.HasSuffix(lines[0], "] a"))
}

func TestLoggerWithPrefix(t *testing.T) {
	base := &CapturingLogger{}
	prefixed := LoggerWithPrefix(base, "step: ")
	prefixed.Printf("did %s", "something")

	output := base.Output()
	require.Len(t, output, 1)
	assert.Equal(t, "step: did something", output[0].Message)
}

func TestNullLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		NullLogger().Println("x")
		NullLogger().Printf("%d", 1)
	})
}
