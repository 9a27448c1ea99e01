// Package loop runs a mode on a terminal with the standard
// Input → Update → Draw cycle at a fixed frame rate.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bonk/internal/draw"
	"github.com/tomz197/bonk/internal/input"
	"github.com/tomz197/bonk/internal/mode"
)

// Screen is the terminal surface a mode draws on.
type Screen interface {
	// Resize sets the render area and reports whether it changed.
	Resize(cols, rows, offsetCol, offsetRow int) bool
	// Drawable is the render area in pixels.
	Drawable() (w, h int)
	Begin()
	Notice(lines ...string)
	Flush() error
}

// Options configures a Client. Zero values pick the defaults from config.go.
// A negative IdleDisconnect turns inactivity handling off.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Hub          *Hub
	Username     string

	IdleWarn        time.Duration
	IdleDisconnect  time.Duration
	ShutdownDisplay time.Duration
}

// Client drives one mode on one terminal connection.
type Client struct {
	mode        mode.Mode
	screen      Screen
	writer      io.Writer
	inputStream *input.Stream
	opts        Options
	logger      *log.Logger
	handle      *Handle

	window       mode.Size // render area in cells
	running      bool
	lastInput    time.Time
	isInactive   bool
	shuttingDown bool
	shutdownLeft time.Duration
}

// NewClient prepares m to run on scr, reading keys from r and writing terminal
// control sequences to w.
func NewClient(m mode.Mode, scr Screen, r *bufio.Reader, w io.Writer, opts Options) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.IdleWarn == 0 {
		opts.IdleWarn = seconds(InactivityWarnUser)
	}
	if opts.IdleDisconnect == 0 {
		opts.IdleDisconnect = seconds(InactivityDisconnectUser)
	}
	if opts.ShutdownDisplay == 0 {
		opts.ShutdownDisplay = seconds(ShutdownDisplaySeconds)
	}

	c := &Client{
		mode:        m,
		screen:      scr,
		writer:      w,
		inputStream: input.StartStream(r),
		opts:        opts,
		logger:      opts.Logger,
		running:     true,
		lastInput:   time.Now(),
	}
	if opts.Hub != nil {
		c.handle = opts.Hub.Register(opts.Username)
	}
	return c
}

// Run starts the client loop. Blocks until the player quits, idles out, the
// hub shuts down or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	if c.handle != nil {
		defer c.opts.Hub.Unregister(c.handle.ID)
	}
	c.logger.Info("session started", "user", c.opts.Username)
	defer c.logger.Info("session ended", "user", c.opts.Username)

	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
		draw.ClearScreen(c.writer)
	}()
	draw.ClearScreen(c.writer)
	c.updateScreen()

	lastTime := time.Now()

	for c.running {
		if err := ctx.Err(); err != nil {
			return err
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(frameStart)
		c.processHubEvents(delta)
		c.updateScreen()

		c.mode.Update(float32(delta.Seconds()))

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput hands pending input events to the mode and tracks inactivity.
func (c *Client) processInput(now time.Time) {
	for _, evt := range input.ReadEvents(c.inputStream, now) {
		if evt.Type == input.EventQuit {
			c.running = false
			continue
		}
		c.lastInput = now
		c.isInactive = false
		c.mode.HandleEvent(evt, c.window)
	}

	if c.opts.IdleDisconnect < 0 {
		return
	}
	idle := now.Sub(c.lastInput)
	switch {
	case idle > c.opts.IdleDisconnect:
		c.logger.Info("disconnecting idle session", "user", c.opts.Username, "idle", idle.Round(time.Second))
		c.running = false
	case idle > c.opts.IdleWarn:
		c.isInactive = true
	}
}

// processHubEvents handles events from the hub and runs the shutdown countdown.
func (c *Client) processHubEvents(delta time.Duration) {
	if c.shuttingDown {
		c.shutdownLeft -= delta
		if c.shutdownLeft <= 0 {
			c.running = false
		}
	}
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.running = false
				return
			}
			if event.Type == EventServerShutdown && !c.shuttingDown {
				c.shuttingDown = true
				c.shutdownLeft = c.opts.ShutdownDisplay
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new render area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	if c.screen.Resize(renderWidth, renderHeight, offsetCol, offsetRow) {
		draw.ClearScreen(c.writer)
	}
	c.window = mode.Size{W: renderWidth, H: renderHeight}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 0), MaxTermWidth)
	renderHeight = min(max(termHeight, 0), MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// drawFrame draws the mode, then any notice over it.
func (c *Client) drawFrame() error {
	c.screen.Begin()
	w, h := c.screen.Drawable()
	c.mode.Draw(mode.Size{W: w, H: h})

	switch {
	case c.shuttingDown:
		c.screen.Notice(
			"SERVER SHUTTING DOWN",
			"",
			"The server is restarting for maintenance.",
			"Please reconnect in a moment.",
			"",
			fmt.Sprintf("Disconnecting in %d seconds...", int(c.shutdownLeft.Seconds())+1),
			"Press Q to disconnect now",
		)
	case c.isInactive:
		left := c.opts.IdleDisconnect - time.Since(c.lastInput)
		c.screen.Notice(
			"INACTIVITY WARNING",
			"",
			fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds())),
			"Press any key to continue",
		)
	}

	return c.screen.Flush()
}
