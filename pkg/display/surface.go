package display

import (
	"github.com/google/uuid"

	"patter/pkg/events"
)

// Handle identifies one assistant turn on the display surface.
// Reveal loops hold the handle they were started against and check it
// is still live before rendering, so a loop outlasting its turn exits
// quietly instead of writing into a discarded view.
type Handle string

// NewHandle creates a unique turn handle
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// Zero is the null handle
const Zero Handle = ""

// Surface is the rendering collaborator for the chat core. It accepts
// render instructions and must not impose timing constraints back on
// the caller. Implementations are free to buffer; the core never
// reads back from the surface.
type Surface interface {
	// RenderUserTurn displays a submitted user message
	RenderUserTurn(text string)

	// CreateAssistantTurn opens a new assistant turn and returns its handle
	CreateAssistantTurn() Handle

	// RevealChunk appends incremental text to an assistant turn
	RevealChunk(handle Handle, text string)

	// CreateToolCard renders a new running tool card under the turn
	CreateToolCard(handle Handle, id, name string)

	// UpdateToolCard replaces a tool card's argument body
	UpdateToolCard(id, argsText string)

	// CompleteToolCard marks a tool card finished
	CompleteToolCard(id string)

	// ShowDiscoveryCard renders the tool discovery pseudo-card
	ShowDiscoveryCard(handle Handle, source string)

	// CompleteDiscoveryCard marks the discovery pseudo-card ready
	CompleteDiscoveryCard(handle Handle)

	// ShowCitations renders the citation list for a turn
	ShowCitations(handle Handle, items []events.Citation)

	// FinalizeTurn replaces the incrementally revealed content with
	// the fully formatted text
	FinalizeTurn(handle Handle, fullFormattedText string)

	// ShowError puts the turn into a terminal error state
	ShowError(handle Handle, message string)
}
