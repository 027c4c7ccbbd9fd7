package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"patter/pkg/display"
	"patter/pkg/events"
	"patter/pkg/logger"
	"patter/pkg/markdown"
	"patter/pkg/protocol"
	"patter/pkg/reveal"
	"patter/pkg/tools"
)

// ErrTurnInFlight is returned when Send is called while a previous
// send has not finished. One send is in flight at a time.
var ErrTurnInFlight = errors.New("a send is already in flight")

// errTurnSuperseded aborts a pump whose turn was discarded by
// StartNewChat. It is swallowed by Send: a superseded turn is a
// cancellation, not a failure.
var errTurnSuperseded = errors.New("turn superseded by new chat")

// Session owns the conversation history and drives one
// request/response exchange at a time. The tool call registry and
// reveal engine are exclusively owned by the session; StartNewChat
// resets them atomically together with the history.
type Session struct {
	source   Source
	surface  display.Surface
	registry *tools.Registry
	engine   reveal.Engine

	mu         sync.Mutex
	history    Conversation
	inFlight   bool
	generation uint64
}

// NewSession creates a session with an empty history
func NewSession(source Source, surface display.Surface, registry *tools.Registry, engine reveal.Engine) *Session {
	return &Session{
		source:   source,
		surface:  surface,
		registry: registry,
		engine:   engine,
		history:  NewConversation(),
	}
}

// History returns a snapshot of the conversation history
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return GetMessages(s.history)
}

// Send runs one exchange: issue the history plus the new user message
// to the stream source, pump events until termination, settle the
// reveal engine, and append the assistant turn. On any failure the
// history gains no assistant entry and the surface shows a terminal
// error state. The in-flight guard is released on every exit path.
func (s *Session) Send(ctx context.Context, text string) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrTurnInFlight
	}
	s.inFlight = true
	gen := s.generation
	s.history = AddMessage(s.history, NewUserMessage(text))
	snapshot := GetMessages(s.history)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	s.surface.RenderUserTurn(text)

	body, err := s.source.Open(ctx, snapshot)
	if err != nil {
		s.surface.ShowError(display.Zero, err.Error())
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer body.Close()

	handle := s.surface.CreateAssistantTurn()
	s.engine.Start(s.revealSink(gen, handle))

	handler := protocol.NewHandler(s.registry, s.engine, s.surface, handle)
	if err := s.pump(ctx, gen, body, handler); err != nil {
		if errors.Is(err, errTurnSuperseded) {
			// StartNewChat reset the registry; reset the engine again
			// in case this turn's reveal loop started after that reset
			s.engine.Reset()
			return nil
		}
		s.engine.Reset()
		s.registry.Reset()
		if !errors.Is(err, context.Canceled) {
			s.surface.ShowError(handle, err.Error())
		}
		return err
	}

	// Buffered text keeps revealing after done; wait for the drain
	s.engine.Settle(ctx)

	if !s.liveGeneration(gen) {
		// Discarded between done and settle; the turn is never
		// finalized or recorded
		return nil
	}

	full := handler.FullText()
	s.surface.FinalizeTurn(handle, markdown.Format(full))

	s.mu.Lock()
	if s.generation == gen {
		s.history = AddMessage(s.history, NewAssistantMessage(full))
	}
	s.registry.Reset()
	s.mu.Unlock()

	return nil
}

// pump feeds decoded frames to the handler until a terminal frame or
// source close. A close without a done frame is a transport error.
// Each frame re-checks the session generation, so a StartNewChat
// issued mid-stream cancels the pump before any in-flight event can
// mutate the freshly reset registry or surface.
func (s *Session) pump(ctx context.Context, gen uint64, body io.Reader, handler *protocol.Handler) error {
	decoder := events.NewDecoder(body)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, err := decoder.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("stream transport failed: %w", err)
		}

		if !s.liveGeneration(gen) {
			return errTurnSuperseded
		}
		if err := handler.Handle(ev); err != nil {
			return err
		}
	}

	if !s.liveGeneration(gen) {
		return errTurnSuperseded
	}
	if !handler.Done() {
		return errors.New("stream closed before completion")
	}
	return nil
}

// liveGeneration reports whether the turn started under gen is still
// the current one
func (s *Session) liveGeneration(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == gen
}

// revealSink routes revealed chunks to the surface while the turn is
// still live. A loop outlasting its turn exits through the engine;
// this check only keeps stale chunks off the surface.
func (s *Session) revealSink(gen uint64, handle display.Handle) reveal.Sink {
	return func(text string) {
		if s.liveGeneration(gen) {
			s.surface.RevealChunk(handle, text)
		}
	}
}

// StartNewChat is a hard reset: history, tool call registry, and
// reveal buffers are cleared together. A reveal loop still running
// against the previous turn notices the generation change and stops
// rendering within one polling interval.
func (s *Session) StartNewChat() {
	s.mu.Lock()
	s.generation++
	s.history = NewConversation()
	s.mu.Unlock()

	s.engine.Reset()
	s.registry.Reset()
	logger.Info("Started new chat")
}
