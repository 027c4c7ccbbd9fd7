package events

import (
	"bufio"
	"io"
	"strings"

	"patter/pkg/logger"
)

// framePrefix marks a line carrying an event payload
const framePrefix = "data: "

// Decoder reads `data: `-framed event records from a byte stream.
// Chunk boundaries in the underlying reader carry no meaning: a frame
// split across two reads is reassembled before parsing. Lines that do
// not carry the frame prefix (SSE keep-alive blanks, comments) are
// skipped silently; lines that carry the prefix but fail to parse are
// logged as protocol warnings and skipped without aborting the stream.
type Decoder struct {
	scanner  *bufio.Scanner
	finished bool
}

// NewDecoder creates a Decoder over a raw event stream
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	// Frames are single lines but tool argument payloads can be large
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Decoder{scanner: scanner}
}

// Next returns the next event record in arrival order. It returns
// io.EOF once the source closes or a terminal record has been
// returned. Unknown event kinds are skipped here so callers only see
// protocol events.
func (d *Decoder) Next() (Event, error) {
	if d.finished {
		return Event{}, io.EOF
	}

	for d.scanner.Scan() {
		line := d.scanner.Text()
		if !strings.HasPrefix(line, framePrefix) {
			continue
		}

		payload := strings.TrimPrefix(line, framePrefix)
		ev, err := Parse([]byte(payload))
		if err != nil {
			logger.Warn("Dropping malformed frame: %v", err)
			continue
		}
		if !ev.Known() {
			logger.Debug("Skipping unknown event kind %q", ev.Kind)
			continue
		}

		if ev.Kind.IsTerminal() {
			d.finished = true
		}
		return ev, nil
	}

	d.finished = true
	if err := d.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}
