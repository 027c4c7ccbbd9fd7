package events

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the type of a stream event
type Kind string

const (
	KindTextDelta         Kind = "text_delta"
	KindToolStart         Kind = "tool_start"
	KindToolArgs          Kind = "tool_args"
	KindToolDone          Kind = "tool_done"
	KindToolDiscovery     Kind = "tool_discovery"
	KindToolDiscoveryDone Kind = "tool_discovery_done"
	KindCitations         Kind = "citations"
	KindError             Kind = "error"
	KindDone              Kind = "done"
)

// IsTerminal reports whether the kind ends a response stream
func (k Kind) IsTerminal() bool {
	return k == KindDone || k == KindError
}

// Event is one decoded protocol record. Only the fields relevant to
// its Kind are populated.
type Event struct {
	Kind      Kind
	Content   string          // text_delta
	ID        string          // tool_start, tool_args, tool_done
	Name      string          // tool_start, tool_done
	Arguments json.RawMessage // tool_args, unparsed payload
	Source    string          // tool_discovery
	Citations []Citation      // citations
	Message   string          // error
}

// CitationKind distinguishes url citations from file citations
type CitationKind string

const (
	CitationURL  CitationKind = "url"
	CitationFile CitationKind = "file"
)

// Citation is a single reference attached to an assistant turn
type Citation struct {
	Kind  CitationKind
	Value string
}

// wireEvent mirrors the JSON frame payload sent by the backend
type wireEvent struct {
	Type      string          `json:"type"`
	Content   string          `json:"content"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Source    string          `json:"source"`
	Citations []wireCitation  `json:"citations"`
	Error     string          `json:"error"`
}

type wireCitation struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	FileID string `json:"file_id"`
}

// Parse decodes a single frame payload into an Event.
// Unknown event types are returned with their raw kind so callers can
// skip them without treating the frame as malformed.
func Parse(payload []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(payload, &w); err != nil {
		return Event{}, fmt.Errorf("failed to parse event payload: %w", err)
	}
	if w.Type == "" {
		return Event{}, fmt.Errorf("event payload missing type field")
	}

	ev := Event{
		Kind:      Kind(w.Type),
		Content:   w.Content,
		ID:        w.ID,
		Name:      w.Name,
		Arguments: w.Arguments,
		Source:    w.Source,
		Message:   w.Error,
	}

	for _, c := range w.Citations {
		switch c.Type {
		case "url":
			ev.Citations = append(ev.Citations, Citation{Kind: CitationURL, Value: c.URL})
		case "file":
			ev.Citations = append(ev.Citations, Citation{Kind: CitationFile, Value: c.FileID})
		}
	}

	return ev, nil
}

// Known reports whether the event kind is part of the protocol.
// Unknown kinds are skipped for forward compatibility.
func (e Event) Known() bool {
	switch e.Kind {
	case KindTextDelta, KindToolStart, KindToolArgs, KindToolDone,
		KindToolDiscovery, KindToolDiscoveryDone, KindCitations,
		KindError, KindDone:
		return true
	}
	return false
}
