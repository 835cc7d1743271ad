// Package handlers implements the Telnet console: it turns player commands
// into calls on the headless game and renders the game's events.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgame/internal/frontend/telnet"
	"github.com/cory-johannsen/lootgame/internal/game/combat"
	"github.com/cory-johannsen/lootgame/internal/game/command"
	"github.com/cory-johannsen/lootgame/internal/gameserver"
)

const prompt = "> "

// ConsoleHandler is a telnet.SessionHandler that plays one shared Game.
// Every connected session sees the same character.
type ConsoleHandler struct {
	game     *gameserver.Game
	registry *command.Registry
	buffer   int
	logger   *zap.Logger
}

// NewConsoleHandler creates a console for game. buffer is the per-session
// event subscription capacity.
//
// Precondition: game and logger are non-nil; buffer >= 1.
func NewConsoleHandler(game *gameserver.Game, buffer int, logger *zap.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		game:     game,
		registry: command.DefaultRegistry(),
		buffer:   buffer,
		logger:   logger,
	}
}

// HandleSession runs the command loop for one connection while forwarding
// game events to it.
//
// Postcondition: Returns nil on quit, ctx.Err() on cancellation, or a wrapped
// I/O error.
func (h *ConsoleHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	events, unsubscribe := h.game.Subscribe(h.buffer)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	welcome := []string{
		telnet.Colorize(telnet.BrightYellow, "Welcome to Loot Game!"),
		telnet.Colorize(telnet.Dim, "Type 'help' for a list of commands."),
	}
	if err := conn.WriteLines(welcome...); err != nil {
		return fmt.Errorf("writing welcome: %w", err)
	}
	if err := conn.WritePrompt(prompt); err != nil {
		return fmt.Errorf("writing prompt: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		forwardEvents(ctx, events, conn)
	}()

	h.logger.Debug("console session started", zap.Stringer("remote_addr", conn.RemoteAddr()))
	err := h.commandLoop(ctx, conn, newSession(h.game, h.registry))

	cancel()
	unsubscribe()
	wg.Wait()
	return err
}

// forwardEvents renders events until ctx is done or the subscription closes.
func forwardEvents(ctx context.Context, events <-chan gameserver.Event, conn *telnet.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			text := RenderEvent(e)
			if text == "" {
				continue
			}
			_ = conn.WriteLines("", text)
			_ = conn.WritePrompt(prompt)
		}
	}
}

func (h *ConsoleHandler) commandLoop(ctx context.Context, conn *telnet.Conn, s *session) error {
	for {
		line, err := conn.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading input: %w", err)
		}

		lines, quit := s.execute(line)
		if len(lines) > 0 {
			if err := conn.WriteLines(lines...); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		if quit {
			return nil
		}
		if err := conn.WritePrompt(prompt); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}
	}
}

// describe turns a rejected game command into a player-facing message.
func describe(err error) string {
	switch {
	case errors.Is(err, gameserver.ErrInsufficientFunds):
		return RenderError("Not enough coins! " + detail(err))
	case errors.Is(err, gameserver.ErrInsufficientKeys):
		return RenderError("Not enough keys! " + detail(err))
	case errors.Is(err, combat.ErrConcurrencyCapReached):
		return RenderError("All adventure slots are busy! Upgrade to run more at once.")
	case errors.Is(err, command.ErrBadArgument):
		return RenderError(titleCase(detail(err)) + ".")
	}
	return RenderError(titleCase(err.Error()) + ".")
}

// detail drops the sentinel prefix from a wrapped error message.
func detail(err error) string {
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, ": "); ok {
		return rest
	}
	return msg
}
