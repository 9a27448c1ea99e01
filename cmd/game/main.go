package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/bonk/internal/config"
	"github.com/tomz197/bonk/internal/draw"
	"github.com/tomz197/bonk/internal/game"
	"github.com/tomz197/bonk/internal/loop"
	"github.com/tomz197/bonk/internal/scene"
	"github.com/tomz197/bonk/internal/sound"
)

func main() {
	// The game owns stdout; logs go to stderr, quiet unless asked for.
	logger := config.NewLogger(os.Stderr, "bonk", log.WarnLevel)

	best, err := run(logger)
	if err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Best: %d\n", best)
}

func run(logger *log.Logger) (uint32, error) {
	tun, err := config.LoadTuning(config.GetEnv("BONK_TUNING", ""))
	if err != nil {
		return 0, err
	}
	playarea, err := scene.LoadFileOrDefault(config.GetEnv("BONK_SCENE", ""))
	if err != nil {
		return 0, err
	}

	var mixer sound.Mixer = sound.Silent{}
	if !config.GetEnvBool("BONK_MUTE", false) {
		sp, err := sound.NewSpeaker()
		if err != nil {
			logger.Warn("audio unavailable, playing muted", "err", err)
		} else {
			defer sp.Close()
			mixer = sp
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	cols, rows, err := draw.DefaultTermSizeFunc()
	if err != nil {
		return 0, fmt.Errorf("terminal size: %w", err)
	}
	radar := draw.NewRadar(os.Stdout, cols, rows)

	m, err := game.NewPlayMode(playarea, mixer, radar, game.Options{Tuning: tun, Logger: logger})
	if err != nil {
		return 0, err
	}
	defer m.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := loop.NewClient(m, radar, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Logger:         logger,
		Username:       config.GetEnv("USER", ""),
		IdleDisconnect: -1,
	})
	if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return 0, err
	}

	_, best := m.Score()
	return best, nil
}
