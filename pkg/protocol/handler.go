// Package protocol maps decoded stream events onto the tool call
// registry, the reveal engine, and the display surface. Dispatch is
// synchronous and in frame order: each handler either mutates state
// or enqueues work, never blocks.
package protocol

import (
	"encoding/json"
	"strings"

	"patter/pkg/display"
	"patter/pkg/events"
	"patter/pkg/logger"
	"patter/pkg/reveal"
	"patter/pkg/tools"
)

// BackendError is an error event received mid-stream from a
// well-formed frame
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return "backend error: " + e.Message
}

// Handler dispatches events for one assistant turn
type Handler struct {
	registry *tools.Registry
	engine   reveal.Engine
	surface  display.Surface
	handle   display.Handle

	full       strings.Builder
	terminated bool
	doneSeen   bool
}

// NewHandler creates a dispatcher for one assistant turn
func NewHandler(registry *tools.Registry, engine reveal.Engine, surface display.Surface, handle display.Handle) *Handler {
	return &Handler{
		registry: registry,
		engine:   engine,
		surface:  surface,
		handle:   handle,
	}
}

// Handle applies exactly one state transition for the event. Events
// after a terminal frame are ignored. A BackendError return aborts
// the turn.
func (h *Handler) Handle(ev events.Event) error {
	if h.terminated {
		logger.Debug("Ignoring %s event after stream termination", ev.Kind)
		return nil
	}

	switch ev.Kind {
	case events.KindTextDelta:
		h.full.WriteString(ev.Content)
		h.engine.Append(ev.Content)

	case events.KindToolStart:
		if h.registry.Create(ev.ID, ev.Name) {
			h.surface.CreateToolCard(h.handle, ev.ID, ev.Name)
		}

	case events.KindToolArgs:
		argsText := prettyArguments(ev.Arguments)
		if h.registry.SetArguments(ev.ID, argsText) {
			h.surface.UpdateToolCard(ev.ID, argsText)
		}

	case events.KindToolDone:
		if _, ok := h.registry.Complete(ev.ID); ok {
			h.surface.CompleteToolCard(ev.ID)
		}

	case events.KindToolDiscovery:
		if h.registry.OpenDiscovery() {
			h.surface.ShowDiscoveryCard(h.handle, ev.Source)
		}

	case events.KindToolDiscoveryDone:
		if h.registry.CloseDiscovery() {
			h.surface.CompleteDiscoveryCard(h.handle)
		}

	case events.KindCitations:
		if len(ev.Citations) > 0 {
			h.surface.ShowCitations(h.handle, ev.Citations)
		}

	case events.KindError:
		h.terminated = true
		return &BackendError{Message: ev.Message}

	case events.KindDone:
		h.terminated = true
		h.doneSeen = true
		h.engine.CloseSource()
	}

	return nil
}

// FullText returns the accumulated response text
func (h *Handler) FullText() string {
	return h.full.String()
}

// Done reports whether a done frame terminated the stream
func (h *Handler) Done() bool {
	return h.doneSeen
}

// prettyArguments renders a tool_args payload for the card body.
// Structured JSON is indented; anything else passes through as raw
// text.
func prettyArguments(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return string(raw)
	}
	if s, ok := parsed.(string); ok {
		return s
	}

	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(pretty)
}
