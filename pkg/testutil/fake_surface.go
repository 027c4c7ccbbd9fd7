package testutil

import (
	"strings"
	"sync"

	"patter/pkg/display"
	"patter/pkg/events"
)

// SurfaceCall records one render instruction sent to the fake surface
type SurfaceCall struct {
	Method string
	Handle display.Handle
	ID     string
	Text   string
	Items  []events.Citation
}

// FakeSurface implements display.Surface and records every call for
// assertions. It imposes no timing constraints on the caller.
type FakeSurface struct {
	mu    sync.Mutex
	calls []SurfaceCall
}

// NewFakeSurface creates a new recording surface
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{}
}

func (f *FakeSurface) record(c SurfaceCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeSurface) RenderUserTurn(text string) {
	f.record(SurfaceCall{Method: "RenderUserTurn", Text: text})
}

func (f *FakeSurface) CreateAssistantTurn() display.Handle {
	handle := display.NewHandle()
	f.record(SurfaceCall{Method: "CreateAssistantTurn", Handle: handle})
	return handle
}

func (f *FakeSurface) RevealChunk(handle display.Handle, text string) {
	f.record(SurfaceCall{Method: "RevealChunk", Handle: handle, Text: text})
}

func (f *FakeSurface) CreateToolCard(handle display.Handle, id, name string) {
	f.record(SurfaceCall{Method: "CreateToolCard", Handle: handle, ID: id, Text: name})
}

func (f *FakeSurface) UpdateToolCard(id, argsText string) {
	f.record(SurfaceCall{Method: "UpdateToolCard", ID: id, Text: argsText})
}

func (f *FakeSurface) CompleteToolCard(id string) {
	f.record(SurfaceCall{Method: "CompleteToolCard", ID: id})
}

func (f *FakeSurface) ShowDiscoveryCard(handle display.Handle, source string) {
	f.record(SurfaceCall{Method: "ShowDiscoveryCard", Handle: handle, Text: source})
}

func (f *FakeSurface) CompleteDiscoveryCard(handle display.Handle) {
	f.record(SurfaceCall{Method: "CompleteDiscoveryCard", Handle: handle})
}

func (f *FakeSurface) ShowCitations(handle display.Handle, items []events.Citation) {
	f.record(SurfaceCall{Method: "ShowCitations", Handle: handle, Items: items})
}

func (f *FakeSurface) FinalizeTurn(handle display.Handle, fullFormattedText string) {
	f.record(SurfaceCall{Method: "FinalizeTurn", Handle: handle, Text: fullFormattedText})
}

func (f *FakeSurface) ShowError(handle display.Handle, message string) {
	f.record(SurfaceCall{Method: "ShowError", Handle: handle, Text: message})
}

// Calls returns a snapshot of all recorded calls
func (f *FakeSurface) Calls() []SurfaceCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SurfaceCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns all recorded calls for one method
func (f *FakeSurface) CallsTo(method string) []SurfaceCall {
	var out []SurfaceCall
	for _, c := range f.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// RevealedText concatenates every chunk passed to RevealChunk
func (f *FakeSurface) RevealedText() string {
	var sb strings.Builder
	for _, c := range f.CallsTo("RevealChunk") {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

var _ display.Surface = (*FakeSurface)(nil)
