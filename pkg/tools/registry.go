package tools

import "sync"

// Status represents the lifecycle state of a tool call
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ToolCall tracks one backend-reported tool invocation for the
// duration of an assistant turn
type ToolCall struct {
	ID            string
	Name          string
	ArgumentsText string
	Status        Status
}

// Registry owns the active tool calls for one assistant turn.
// Entries are created on tool_start, updated on tool_args, and
// removed on tool_done; their rendered cards live on in the display
// surface. Updates against unknown ids are no-ops so duplicate or
// out-of-order frames cannot fault the turn.
type Registry struct {
	mu             sync.Mutex
	active         map[string]*ToolCall
	discoveryOpen  bool
	discoverySeen  bool
	completedCount int
}

// NewRegistry creates an empty tool call registry
func NewRegistry() *Registry {
	return &Registry{
		active: make(map[string]*ToolCall),
	}
}

// Create registers a new running tool call. Returns false if the id
// is already registered.
func (r *Registry) Create(id, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.active[id]; exists {
		return false
	}
	r.active[id] = &ToolCall{ID: id, Name: name, Status: StatusRunning}
	return true
}

// SetArguments records the pretty-printed arguments for a running
// tool call. Returns false if the id is unknown.
func (r *Registry) SetArguments(id, argsText string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	call, exists := r.active[id]
	if !exists {
		return false
	}
	call.ArgumentsText = argsText
	return true
}

// Complete marks a tool call completed and removes it from the
// active map. Returns the final record and false if the id is
// unknown.
func (r *Registry) Complete(id string) (ToolCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call, exists := r.active[id]
	if !exists {
		return ToolCall{}, false
	}
	call.Status = StatusCompleted
	delete(r.active, id)
	r.completedCount++
	return *call, true
}

// Get returns a copy of an active tool call
func (r *Registry) Get(id string) (ToolCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call, exists := r.active[id]
	if !exists {
		return ToolCall{}, false
	}
	return *call, true
}

// ActiveCount returns the number of tool calls still running
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// CompletedCount returns how many tool calls finished this turn
func (r *Registry) CompletedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completedCount
}

// OpenDiscovery opens the discovery pseudo-card. At most one exists
// per turn, so repeat calls return false.
func (r *Registry) OpenDiscovery() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.discoverySeen {
		return false
	}
	r.discoverySeen = true
	r.discoveryOpen = true
	return true
}

// CloseDiscovery closes the discovery pseudo-card. Returns false if
// none is open.
func (r *Registry) CloseDiscovery() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.discoveryOpen {
		return false
	}
	r.discoveryOpen = false
	return true
}

// DiscoveryOpen reports whether the discovery pseudo-card is active
func (r *Registry) DiscoveryOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.discoveryOpen
}

// Reset clears all state for a new turn
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = make(map[string]*ToolCall)
	r.discoveryOpen = false
	r.discoverySeen = false
	r.completedCount = 0
}
