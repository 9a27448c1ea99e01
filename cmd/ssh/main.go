package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/bonk/internal/config"
	"github.com/tomz197/bonk/internal/draw"
	"github.com/tomz197/bonk/internal/game"
	"github.com/tomz197/bonk/internal/loop"
	"github.com/tomz197/bonk/internal/scene"
	"github.com/tomz197/bonk/internal/sound"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// arena is what every session is started from.
type arena struct {
	playarea *scene.Scene
	tuning   config.Tuning
	hub      *loop.Hub
	logger   *log.Logger
}

func main() {
	logger := config.NewLogger(os.Stderr, "bonk-ssh", log.InfoLevel)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	tun, err := config.LoadTuning(config.GetEnv("BONK_TUNING", ""))
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}
	playarea, err := scene.LoadFileOrDefault(config.GetEnv("BONK_SCENE", ""))
	if err != nil {
		logger.Fatal("failed to load scene", "err", err)
	}
	a := &arena{playarea: playarea, tuning: tun, hub: loop.NewHub(), logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server...")

	// Notify players and wait for them to disconnect
	logger.Info("notifying connected players about shutdown", "players", a.hub.Players())
	if !a.hub.Shutdown(loop.ShutdownWait) {
		logger.Warn("players still connected at shutdown", "players", a.hub.Players())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one independent game per SSH session.
func (a *arena) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		radar := draw.NewRadar(sess, pty.Window.Width, pty.Window.Height)
		// Sessions have no audio device.
		m, err := game.NewPlayMode(a.playarea, sound.Silent{}, radar, game.Options{Tuning: a.tuning, Logger: logger})
		if err != nil {
			logger.Error("failed to start game", "err", err)
			fmt.Fprintln(sess, "Error: could not start the game.")
			return
		}
		defer m.Close()

		c := loop.NewClient(m, radar, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			Hub:          a.hub,
			Username:     sess.User(),
		})
		if err := c.Run(sess.Context()); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("game error", "err", err)
		}

		_, best := m.Score()
		fmt.Fprintf(sess, "Best: %d\r\n", best)
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
