// cmd/game/main.go
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"herbicide/internal/config"
	"herbicide/internal/state"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settingsPath := flag.String("config", "settings.yaml", "YAML settings file (empty for defaults)")
	levelPath := flag.String("level", "", "level file (overrides settings)")
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		slog.Error("loading settings", "err", err)
		os.Exit(1)
	}
	if *levelPath != "" {
		settings.Level = *levelPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: settings.SlogLevel(),
	}))
	slog.SetDefault(logger)

	sm := state.NewStateMachine() // Создаём машину состояний
	levelState, err := state.NewLevelState(sm, settings, logger)
	if err != nil {
		logger.Error("opening level", "level", settings.Level, "err", err)
		os.Exit(1)
	}
	defer levelState.Close()
	sm.SetState(levelState)

	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Herbicide: " + settings.Level)
	if err := ebiten.RunGame(app); err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
