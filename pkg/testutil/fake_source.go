package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"patter/pkg/chat"
)

// FakeSource implements chat.Source with a scripted frame stream
type FakeSource struct {
	mu       sync.Mutex
	frames   []string
	openErr  error
	requests [][]chat.Message
}

// NewFakeSource creates a source that streams the given raw frame
// payloads, each emitted as one `data: ` line
func NewFakeSource(framePayloads ...string) *FakeSource {
	return &FakeSource{frames: framePayloads}
}

// FailWith makes Open return err instead of a stream
func (f *FakeSource) FailWith(err error) *FakeSource {
	f.openErr = err
	return f
}

// Open returns the scripted stream and records the request
func (f *FakeSource) Open(ctx context.Context, messages []chat.Message) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := make([]chat.Message, len(messages))
	copy(snapshot, messages)
	f.requests = append(f.requests, snapshot)

	if f.openErr != nil {
		return nil, f.openErr
	}

	var sb strings.Builder
	for _, payload := range f.frames {
		fmt.Fprintf(&sb, "data: %s\n\n", payload)
	}
	return io.NopCloser(strings.NewReader(sb.String())), nil
}

// Requests returns the message histories passed to Open
func (f *FakeSource) Requests() [][]chat.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

var _ chat.Source = (*FakeSource)(nil)
