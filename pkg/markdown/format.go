// Package markdown applies the fixed formatting rule set used when an
// assistant turn is finalized: bold, italic, inline code, paragraph
// breaks on blank lines, and numbered list markers. There is no
// nested or recursive parsing; each rule is a single substitution
// pass, applied in a fixed order so output is deterministic.
package markdown

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boldStarRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderRe  = regexp.MustCompile(`__(.+?)__`)
	italicStarRe = regexp.MustCompile(`\*(.+?)\*`)
	italicUndRe  = regexp.MustCompile(`_(.+?)_`)
	codeRe       = regexp.MustCompile("`([^`]+)`")
	paragraphRe  = regexp.MustCompile(`\n{2,}`)
	numberedRe   = regexp.MustCompile(`(?m)^(\d+)\. `)
)

var (
	boldStyle   = lipgloss.NewStyle().Bold(true)
	italicStyle = lipgloss.NewStyle().Italic(true)
	codeStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f5b761")).
			Background(lipgloss.Color("#282420"))
	markerStyle = lipgloss.NewStyle().Bold(true)
)

// Format renders the complete response text for the terminal. The
// rules run in a fixed order: bold before italic so `**` is never
// consumed as two italic markers, then inline code, paragraph
// normalization, and numbered list markers.
func Format(text string) string {
	out := strings.TrimRight(text, " \t\n")

	out = replaceInner(boldStarRe, out, 2, boldStyle)
	out = replaceInner(boldUnderRe, out, 2, boldStyle)
	out = replaceInner(italicStarRe, out, 1, italicStyle)
	out = replaceInner(italicUndRe, out, 1, italicStyle)
	out = replaceInner(codeRe, out, 1, codeStyle)

	// Blank lines collapse to a single paragraph break; single
	// newlines remain literal line breaks
	out = paragraphRe.ReplaceAllString(out, "\n\n")

	out = numberedRe.ReplaceAllStringFunc(out, func(m string) string {
		return markerStyle.Render(strings.TrimSuffix(m, " ")) + " "
	})

	return out
}

// replaceInner styles the text between markerLen-wide delimiters
func replaceInner(re *regexp.Regexp, text string, markerLen int, style lipgloss.Style) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return style.Render(m[markerLen : len(m)-markerLen])
	})
}
