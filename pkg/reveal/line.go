package reveal

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// sentenceBreak matches sentence-ending punctuation followed by
// whitespace
var sentenceBreak = regexp.MustCompile(`[.!?]\s`)

// LineEngine reveals text one natural line at a time. Incoming text
// accumulates in the pending buffer; whenever the buffer contains a
// newline or a sentence end, the text through that break is cut into
// a discrete line and queued. The loop renders one queued line, then
// waits a base delay plus a per-character surcharge before the next.
type LineEngine struct {
	st   state
	opts Options
}

// NewLineEngine creates a line-grouped reveal engine
func NewLineEngine(opts Options) *LineEngine {
	return &LineEngine{opts: opts.withDefaults()}
}

// Start begins the reveal loop for one turn
func (e *LineEngine) Start(sink Sink) {
	gen, done, ok := e.st.begin()
	if !ok {
		return
	}
	go e.loop(sink, gen, done)
}

// Append adds raw text to the pending buffer and cuts any complete
// lines into the queue
func (e *LineEngine) Append(text string) {
	e.st.mu.Lock()
	defer e.st.mu.Unlock()

	if e.st.aborted {
		return
	}
	e.st.pending += text
	e.cutLocked()
}

// CloseSource signals that no further text will arrive
func (e *LineEngine) CloseSource() { e.st.closeSource() }

// Settle blocks until the queue and buffer have drained
func (e *LineEngine) Settle(ctx context.Context) { e.st.settle(ctx, e.opts.SettleTimeout) }

// Reset clears all buffers and stops any running loop
func (e *LineEngine) Reset() { e.st.reset() }

// cutLocked moves complete lines from pending into the queue. A line
// ends at a newline or at sentence-ending punctuation followed by
// whitespace, whichever occurs earlier. Whitespace-only lines are
// consumed but not queued.
func (e *LineEngine) cutLocked() {
	for {
		cut := -1

		nl := strings.IndexByte(e.st.pending, '\n')
		if nl >= 0 {
			cut = nl + 1
		}

		if loc := sentenceBreak.FindStringIndex(e.st.pending); loc != nil {
			if cut < 0 || loc[0] < nl {
				cut = loc[1]
			}
		}

		if cut < 0 {
			return
		}

		line := e.st.pending[:cut]
		e.st.pending = e.st.pending[cut:]
		if !whitespaceOnly(line) {
			e.st.queue = append(e.st.queue, line)
		}
	}
}

func (e *LineEngine) loop(sink Sink, gen uint64, done chan struct{}) {
	defer e.st.finish(gen, done)

	for {
		e.st.mu.Lock()
		if e.st.staleLocked(gen) {
			e.st.mu.Unlock()
			return
		}

		var line string
		ok := false
		if len(e.st.queue) > 0 {
			line = e.st.queue[0]
			e.st.queue = e.st.queue[1:]
			ok = true
		}
		open := e.st.sourceOpen

		// Source closed with no complete break left: flush the
		// remainder as one final line
		if !ok && !open && !whitespaceOnly(e.st.pending) {
			line = e.st.pending
			e.st.pending = ""
			ok = true
		}
		e.st.mu.Unlock()

		switch {
		case ok:
			sink(line)
			time.Sleep(e.opts.LineBase + time.Duration(len(line))*e.opts.LinePerChar)
		case open:
			// More text may still arrive, keep polling
			time.Sleep(e.opts.Poll)
		default:
			return
		}
	}
}

var _ Engine = (*LineEngine)(nil)
