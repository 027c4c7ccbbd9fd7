package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"patter/pkg/markdown"
)

func TestFormat_StripsEmphasisMarkers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{"bold asterisks", "some **bold** text", "bold", "**"},
		{"bold underscores", "some __bold__ text", "bold", "__"},
		{"italic asterisks", "some *italic* text", "italic", "*"},
		{"italic underscores", "some _italic_ text", "italic", "_italic_"},
		{"inline code", "run `go version` now", "go version", "`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markdown.Format(tt.input)
			assert.Contains(t, got, tt.contains)
			assert.NotContains(t, got, tt.excludes)
		})
	}
}

func TestFormat_BoldBeforeItalic(t *testing.T) {
	// A double marker must not be consumed as two italic markers
	got := markdown.Format("**strong**")
	assert.Contains(t, got, "strong")
	assert.NotContains(t, got, "*")
}

func TestFormat_ParagraphBreaks(t *testing.T) {
	got := markdown.Format("first paragraph\n\n\n\nsecond paragraph")
	assert.Equal(t, "first paragraph\n\nsecond paragraph", got)
}

func TestFormat_SingleParagraph(t *testing.T) {
	got := markdown.Format("Hello world. How are you?")
	assert.Equal(t, "Hello world. How are you?", got)
}

func TestFormat_LineBreaksPreserved(t *testing.T) {
	got := markdown.Format("line one\nline two")
	assert.Equal(t, "line one\nline two", got)
}

func TestFormat_NumberedListMarkers(t *testing.T) {
	got := markdown.Format("1. first\n2. second")
	assert.Contains(t, got, "1.")
	assert.Contains(t, got, "first")
	assert.Contains(t, got, "2.")
}

func TestFormat_TrimsTrailingWhitespace(t *testing.T) {
	got := markdown.Format("done.  \n\n")
	assert.Equal(t, "done.", got)
}
