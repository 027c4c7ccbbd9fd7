package reveal_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patter/pkg/reveal"
)

func runChar(t *testing.T, appends ...string) *collector {
	t.Helper()

	engine := reveal.NewCharEngine(fastOptions())
	var c collector
	engine.Start(c.sink)
	for _, text := range appends {
		engine.Append(text)
	}
	engine.CloseSource()
	engine.Settle(context.Background())
	return &c
}

func TestCharEngine_NoLossNoDuplication(t *testing.T) {
	input := "Hello world. How are you?\nSecond line with **markdown** left alone."
	c := runChar(t, input)

	assert.Equal(t, input, c.joined())
}

func TestCharEngine_ChunkShapes(t *testing.T) {
	c := runChar(t, "Hi there.")

	require.Equal(t, []string{"Hi", " ", "there", "."}, c.chunks)
}

func TestCharEngine_LongRunsSliced(t *testing.T) {
	c := runChar(t, "abcdefghijklmnopqr")

	// 18 runes exceed the word bound, so slices come off the front
	// until the remainder fits the bound
	require.Equal(t, []string{"abc", "def", "ghijklmnopqr"}, c.chunks)
}

func TestCharEngine_ShortWordWhole(t *testing.T) {
	c := runChar(t, "hello")

	require.Equal(t, []string{"hello"}, c.chunks)
}

func TestCharEngine_WhitespaceRevealedAlone(t *testing.T) {
	c := runChar(t, "a b\nc")

	require.Equal(t, []string{"a", " ", "b", "\n", "c"}, c.chunks)
}

func TestCharEngine_MultibyteSafe(t *testing.T) {
	input := "héllo wörld ünïcode"
	c := runChar(t, input)

	assert.Equal(t, input, c.joined())
	for _, chunk := range c.chunks {
		assert.True(t, strings.ToValidUTF8(chunk, "") == chunk, "chunk %q split a rune", chunk)
	}
}
