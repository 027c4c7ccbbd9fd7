package display

import "github.com/charmbracelet/lipgloss"

// Warm base16 palette shared by the console surface and the markdown
// finalization styles
var (
	ColorOrange = lipgloss.Color("#eb8755")
	ColorYellow = lipgloss.Color("#f5b761")
	ColorGreen  = lipgloss.Color("#93b56b")
	ColorCyan   = lipgloss.Color("#61afaf")
	ColorBlue   = lipgloss.Color("#6b93b5")
	ColorRed    = lipgloss.Color("#d95f5f")
	ColorMuted  = lipgloss.Color("#5c5044")
)

// Styles defines the lipgloss styles for console output
type Styles struct {
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	ToolCard         lipgloss.Style
	ToolArgs         lipgloss.Style
	Discovery        lipgloss.Style
	Citation         lipgloss.Style
	ErrorMessage     lipgloss.Style
	Prompt           lipgloss.Style
}

// DefaultStyles returns the default console styles
func DefaultStyles() *Styles {
	return &Styles{
		UserMessage: lipgloss.NewStyle().
			Foreground(ColorGreen),

		AssistantMessage: lipgloss.NewStyle().
			Foreground(ColorBlue),

		ToolCard: lipgloss.NewStyle().
			Foreground(ColorYellow),

		ToolArgs: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Discovery: lipgloss.NewStyle().
			Foreground(ColorCyan).
			Italic(true),

		Citation: lipgloss.NewStyle().
			Foreground(ColorCyan),

		ErrorMessage: lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(ColorOrange).
			Bold(true),
	}
}
