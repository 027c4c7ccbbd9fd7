package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"patter/pkg/events"
)

// Console is a line-oriented Surface for plain terminals. Incremental
// chunks are written as they are revealed; finalization erases the
// revealed tail of the turn with ANSI escapes and reprints the fully
// formatted text so the end state is the same whichever reveal
// strategy produced it. Tool cards and citations are append-only and
// are never rewritten once printed.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	styles *Styles

	current Handle
	// Terminal lines written by RevealChunk since the last
	// non-reveal output, used to erase the region on finalize
	revealLines   int
	revealPartial bool
}

// NewConsole creates a console surface writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		styles: DefaultStyles(),
	}
}

// RenderUserTurn displays a submitted user message
func (c *Console) RenderUserTurn(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "%s %s\n", c.styles.Prompt.Render(">"), c.styles.UserMessage.Render(text))
}

// CreateAssistantTurn opens a new assistant turn
func (c *Console) CreateAssistantTurn() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = NewHandle()
	c.resetRegionLocked()
	return c.current
}

// RevealChunk appends incremental text to the current turn. Chunks
// for stale handles are dropped.
func (c *Console) RevealChunk(handle Handle, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if handle != c.current {
		return
	}

	fmt.Fprint(c.out, c.styles.AssistantMessage.Render(text))
	for _, r := range text {
		if r == '\n' {
			c.revealLines++
			c.revealPartial = false
		} else {
			c.revealPartial = true
		}
	}
}

// CreateToolCard renders a new running tool card
func (c *Console) CreateToolCard(handle Handle, id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if handle != c.current {
		return
	}
	c.breakRevealRegionLocked()
	fmt.Fprintln(c.out, c.styles.ToolCard.Render(fmt.Sprintf("⚙ %s …", name)))
}

// UpdateToolCard prints the tool card's argument body
func (c *Console) UpdateToolCard(id, argsText string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.breakRevealRegionLocked()
	for _, line := range strings.Split(strings.TrimRight(argsText, "\n"), "\n") {
		fmt.Fprintln(c.out, c.styles.ToolArgs.Render("    "+line))
	}
}

// CompleteToolCard marks a tool card finished
func (c *Console) CompleteToolCard(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.breakRevealRegionLocked()
	fmt.Fprintln(c.out, c.styles.ToolCard.Render("⚙ done"))
}

// ShowDiscoveryCard renders the tool discovery pseudo-card
func (c *Console) ShowDiscoveryCard(handle Handle, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if handle != c.current {
		return
	}
	c.breakRevealRegionLocked()
	fmt.Fprintln(c.out, c.styles.Discovery.Render(fmt.Sprintf("⌕ searching %s…", source)))
}

// CompleteDiscoveryCard marks the discovery pseudo-card ready
func (c *Console) CompleteDiscoveryCard(handle Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if handle != c.current {
		return
	}
	c.breakRevealRegionLocked()
	fmt.Fprintln(c.out, c.styles.Discovery.Render("⌕ tools ready"))
}

// ShowCitations renders the citation list for a turn
func (c *Console) ShowCitations(handle Handle, items []events.Citation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if handle != c.current || len(items) == 0 {
		return
	}
	c.breakRevealRegionLocked()
	for _, item := range items {
		marker := "🔗"
		if item.Kind == events.CitationFile {
			marker = "📄"
		}
		fmt.Fprintln(c.out, c.styles.Citation.Render(fmt.Sprintf("%s %s", marker, item.Value)))
	}
}

// FinalizeTurn erases the revealed tail of the turn and reprints the
// formatted text. Only text revealed since the last card or citation
// is erased; text revealed above an interleaved card stays where it
// was rendered, so scrollback repeats it under the final output. Cards
// themselves are never erased.
func (c *Console) FinalizeTurn(handle Handle, fullFormattedText string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if handle != c.current {
		return
	}

	c.eraseRevealRegionLocked()
	fmt.Fprintln(c.out, fullFormattedText)
	fmt.Fprintln(c.out)
	c.current = Zero
	c.resetRegionLocked()
}

// ShowError puts the turn into a terminal error state
func (c *Console) ShowError(handle Handle, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.breakRevealRegionLocked()
	fmt.Fprintln(c.out, c.styles.ErrorMessage.Render("✗ "+message))
	if handle == c.current {
		c.current = Zero
	}
}

// eraseRevealRegionLocked clears the terminal lines written by
// RevealChunk since the last non-reveal output
func (c *Console) eraseRevealRegionLocked() {
	if c.revealPartial {
		fmt.Fprint(c.out, "\r\033[K")
	}
	for i := 0; i < c.revealLines; i++ {
		fmt.Fprint(c.out, "\033[1A\033[K")
	}
	c.resetRegionLocked()
}

// breakRevealRegionLocked ends any partial revealed line so the next
// output starts on a fresh line, and gives up erase tracking for the
// text above it
func (c *Console) breakRevealRegionLocked() {
	if c.revealPartial {
		fmt.Fprintln(c.out)
	}
	c.resetRegionLocked()
}

func (c *Console) resetRegionLocked() {
	c.revealLines = 0
	c.revealPartial = false
}
