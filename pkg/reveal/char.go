package reveal

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// wordBound is the longest run revealed as a single chunk
	wordBound = 12
	// sliceWidth is the chunk width for runs past the word bound
	sliceWidth = 3
)

// CharEngine reveals text in small variable-width chunks: a single
// whitespace rune alone, a short word whole, and longer runs in fixed
// slices. Chunks containing a newline pause longest, sentence-ending
// punctuation pauses a bit less, so pacing tracks the shape of the
// prose rather than raw length.
type CharEngine struct {
	st   state
	opts Options
}

// NewCharEngine creates a character-grouped reveal engine
func NewCharEngine(opts Options) *CharEngine {
	return &CharEngine{opts: opts.withDefaults()}
}

// Start begins the reveal loop for one turn
func (e *CharEngine) Start(sink Sink) {
	gen, done, ok := e.st.begin()
	if !ok {
		return
	}
	go e.loop(sink, gen, done)
}

// Append adds raw text to the pending buffer
func (e *CharEngine) Append(text string) {
	e.st.mu.Lock()
	defer e.st.mu.Unlock()

	if e.st.aborted {
		return
	}
	e.st.pending += text
}

// CloseSource signals that no further text will arrive
func (e *CharEngine) CloseSource() { e.st.closeSource() }

// Settle blocks until the pending buffer has drained
func (e *CharEngine) Settle(ctx context.Context) { e.st.settle(ctx, e.opts.SettleTimeout) }

// Reset clears all buffers and stops any running loop
func (e *CharEngine) Reset() { e.st.reset() }

// boundary reports whether r ends a word run
func boundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(".,!?;:", r)
}

// nextChunkLocked cuts the next chunk off the front of pending
func (e *CharEngine) nextChunkLocked() (string, bool) {
	if e.st.pending == "" {
		return "", false
	}

	// Whitespace and punctuation are revealed one rune at a time
	r, size := utf8.DecodeRuneInString(e.st.pending)
	if boundary(r) {
		chunk := e.st.pending[:size]
		e.st.pending = e.st.pending[size:]
		return chunk, true
	}

	// Measure the word run at the front
	end := 0
	runes := 0
	for i, rr := range e.st.pending {
		if boundary(rr) {
			break
		}
		end = i + utf8.RuneLen(rr)
		runes++
		if runes > wordBound {
			break
		}
	}

	if runes > wordBound {
		// Long run: reveal a fixed-width slice
		end = 0
		count := 0
		for i, rr := range e.st.pending {
			if count == sliceWidth {
				break
			}
			end = i + utf8.RuneLen(rr)
			count++
		}
		chunk := e.st.pending[:end]
		e.st.pending = e.st.pending[end:]
		return chunk, true
	}

	chunk := e.st.pending[:end]
	e.st.pending = e.st.pending[end:]
	return chunk, true
}

// chunkDelay returns the pause after revealing chunk
func (e *CharEngine) chunkDelay(chunk string) time.Duration {
	switch {
	case strings.ContainsRune(chunk, '\n'):
		return e.opts.CharBase * 4
	case strings.ContainsAny(chunk, ".!?"):
		return e.opts.CharBase * 2
	default:
		return e.opts.CharBase
	}
}

func (e *CharEngine) loop(sink Sink, gen uint64, done chan struct{}) {
	defer e.st.finish(gen, done)

	for {
		e.st.mu.Lock()
		if e.st.staleLocked(gen) {
			e.st.mu.Unlock()
			return
		}
		chunk, ok := e.nextChunkLocked()
		open := e.st.sourceOpen
		e.st.mu.Unlock()

		switch {
		case ok:
			sink(chunk)
			time.Sleep(e.chunkDelay(chunk))
		case open:
			time.Sleep(e.opts.Poll)
		default:
			return
		}
	}
}

var _ Engine = (*CharEngine)(nil)
