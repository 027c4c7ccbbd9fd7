// Package reveal decouples the arrival rate of streamed response text
// from the rate at which it is exposed to the display surface. Text is
// appended to a pending buffer by the stream pump; a reveal loop pulls
// display-ready chunks out at a paced cadence and hands them to a
// Sink. Two interchangeable strategies exist: line-grouped and
// character-grouped. Both converge to the same end state once the
// source closes.
package reveal

import (
	"context"
	"strings"
	"sync"
	"time"

	"patter/pkg/logger"
)

// Sink receives one display-ready chunk of text. The session wires it
// to the display surface together with a liveness check, so a loop
// that outlives its turn renders nothing.
type Sink func(text string)

// Options control reveal pacing. Zero values fall back to defaults.
type Options struct {
	// LineBase is the per-line delay for the line strategy
	LineBase time.Duration
	// LinePerChar is the per-character surcharge for the line
	// strategy, so long lines are not revealed implausibly fast
	LinePerChar time.Duration
	// CharBase is the per-chunk delay for the char strategy
	CharBase time.Duration
	// Poll is the wait between queue checks while the source is open
	Poll time.Duration
	// SettleTimeout bounds Settle. On expiry the engine force-clears
	// its active state so it can never hang the session. This is a
	// recovery mechanism, not a deadline contract.
	SettleTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.LineBase == 0 {
		o.LineBase = 150 * time.Millisecond
	}
	if o.LinePerChar == 0 {
		o.LinePerChar = 2 * time.Millisecond
	}
	if o.CharBase == 0 {
		o.CharBase = 18 * time.Millisecond
	}
	if o.Poll == 0 {
		o.Poll = 80 * time.Millisecond
	}
	if o.SettleTimeout == 0 {
		o.SettleTimeout = 5 * time.Second
	}
	return o
}

// Engine is the reveal contract shared by both strategies.
//
// The lifecycle for one turn is Start, any number of Append calls,
// CloseSource once the producer is known-closed, then Settle. Reset
// tears the engine down without needing to observe stream completion.
type Engine interface {
	// Start begins the reveal loop for one turn
	Start(sink Sink)

	// Append adds raw text to the pending buffer
	Append(text string)

	// CloseSource signals that no further text will arrive. Buffered
	// content is still revealed progressively before the loop exits.
	CloseSource()

	// Settle blocks until nothing further will be revealed
	// incrementally. It always returns, bounded by the safety
	// timeout.
	Settle(ctx context.Context)

	// Reset clears all buffers and stops any running loop
	Reset()
}

// Strategy names accepted by New
const (
	StrategyLine = "line"
	StrategyChar = "char"
)

// New creates an engine for the named strategy, defaulting to
// line-grouped reveal for unrecognized names.
func New(strategy string, opts Options) Engine {
	switch strategy {
	case StrategyChar:
		return NewCharEngine(opts)
	default:
		return NewLineEngine(opts)
	}
}

// state holds the buffer shared by both strategies. Each Start
// increments gen; a loop carries the gen it was started under and must
// stand down once a newer turn owns the state, so a loop that is still
// mid-sleep when the state is reset or force-cleared can neither
// reveal stale text nor touch the newer turn's completion channel.
type state struct {
	mu         sync.Mutex
	pending    string   // raw text not yet cut into chunks
	queue      []string // display-ready chunks awaiting reveal
	sourceOpen bool
	draining   bool // a reveal loop is active
	aborted    bool
	gen        uint64
	done       chan struct{} // closed when the current loop exits
}

// begin arms the state for a new turn, superseding a loop that was
// aborted but has not yet woken from its pacing sleep. Returns false
// only while a live loop is still draining.
func (s *state) begin() (uint64, chan struct{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draining && !s.aborted {
		return 0, nil, false
	}
	s.gen++
	s.pending = ""
	s.queue = nil
	s.sourceOpen = true
	s.aborted = false
	s.draining = true
	s.done = make(chan struct{})
	return s.gen, s.done, true
}

// finish marks the loop identified by gen exited. A superseded loop
// closes only the channel it was started with and leaves the newer
// turn's state alone.
func (s *state) finish(gen uint64, done chan struct{}) {
	s.mu.Lock()
	if s.gen == gen {
		s.draining = false
	}
	s.mu.Unlock()

	close(done)
}

// staleLocked reports whether the loop identified by gen must exit.
// Callers hold mu.
func (s *state) staleLocked(gen uint64) bool {
	return s.aborted || s.gen != gen
}

func (s *state) closeSource() {
	s.mu.Lock()
	s.sourceOpen = false
	s.mu.Unlock()
}

func (s *state) reset() {
	s.mu.Lock()
	s.aborted = true
	s.sourceOpen = false
	s.pending = ""
	s.queue = nil
	s.mu.Unlock()
}

// settle waits for the loop to exit, bounded by the safety timeout.
// On timeout the active state is force-cleared so the surrounding
// session cannot hang; this is logged, never surfaced.
func (s *state) settle(ctx context.Context, timeout time.Duration) {
	s.mu.Lock()
	if !s.draining || s.done == nil {
		s.mu.Unlock()
		return
	}
	done := s.done
	s.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-ctx.Done():
		s.reset()
	case <-timer.C:
		logger.Warn("Reveal settle exceeded %s, forcing completion", timeout)
		s.mu.Lock()
		s.aborted = true
		s.pending = ""
		s.queue = nil
		s.draining = false
		s.mu.Unlock()
	}
}

// whitespaceOnly reports whether text contains nothing displayable
func whitespaceOnly(text string) bool {
	return strings.TrimSpace(text) == ""
}
