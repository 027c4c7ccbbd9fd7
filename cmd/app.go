package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"patter/pkg/chat"
	"patter/pkg/config"
	"patter/pkg/display"
	"patter/pkg/logger"
	"patter/pkg/reveal"
	"patter/pkg/tools"
)

// App wires the backend client, reveal engine, registry, and console
// surface into one session
type App struct {
	cfg     *config.Config
	session *chat.Session
	client  *chat.Client
}

// NewApp builds the application from loaded configuration
func NewApp(cfg *config.Config) *App {
	client := chat.NewClientWithTimeout(cfg.Backend.URL, cfg.Backend.Timeout)
	surface := display.NewConsole(os.Stdout)
	registry := tools.NewRegistry()

	engine := reveal.New(cfg.Reveal.Strategy, reveal.Options{
		LineBase:      time.Duration(cfg.Reveal.LineBaseMs) * time.Millisecond,
		LinePerChar:   time.Duration(cfg.Reveal.LinePerCharMs) * time.Millisecond,
		CharBase:      time.Duration(cfg.Reveal.CharBaseMs) * time.Millisecond,
		Poll:          time.Duration(cfg.Reveal.PollMs) * time.Millisecond,
		SettleTimeout: time.Duration(cfg.Reveal.SettleTimeoutSec) * time.Second,
	})

	return &App{
		cfg:     cfg,
		session: chat.NewSession(client, surface, registry, engine),
		client:  client,
	}
}

// RunOnce sends a single prompt and exits
func (a *App) RunOnce(ctx context.Context, prompt string) error {
	return a.session.Send(ctx, prompt)
}

// RunInteractive reads prompts from stdin until EOF or /quit.
// /new starts a fresh conversation.
func (a *App) RunInteractive(ctx context.Context) error {
	a.checkBackend(ctx)

	fmt.Println("Connected to", a.cfg.Backend.URL)
	fmt.Println("Type a message, /new for a fresh chat, /quit to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit":
			return nil
		case line == "/new":
			a.session.StartNewChat()
			fmt.Println("Started a new chat.")
			continue
		}

		if err := a.session.Send(ctx, line); err != nil {
			if errors.Is(err, chat.ErrTurnInFlight) {
				fmt.Println("Still responding, hold on.")
				continue
			}
			logger.Error("Send failed: %v", err)
		}
	}

	return scanner.Err()
}

// checkBackend reports reachability without blocking startup on
// failure
func (a *App) checkBackend(ctx context.Context) {
	healthCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Health(healthCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: backend not reachable: %v\n", err)
		logger.Warn("Backend health check failed: %v", err)
	}
}
