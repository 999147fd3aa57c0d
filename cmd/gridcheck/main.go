// cmd/gridcheck/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"

	"herbicide/internal/app"
	"herbicide/internal/ascii"
	"herbicide/internal/config"
	"herbicide/internal/defs"
	"herbicide/pkg/tilegrid"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	settingsPath := flag.String("config", "", "YAML settings file")
	defsPath := flag.String("defs", "", "model definitions JSON (overrides settings)")
	jobs := flag.Int("j", 4, "levels checked in parallel (0 = unbounded)")
	dump := flag.Bool("dump", false, "print each level with its routes")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: settings.SlogLevel(),
	})))
	if *defsPath != "" {
		settings.Definitions = *defsPath
	}

	files := flag.Args()
	if len(files) == 0 {
		files = []string{settings.Level}
	}

	lib, err := defs.LoadModelDefinitions(settings.Definitions)
	if err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}

	reports, err := app.CheckLevels(ctx, files, lib, *jobs,
		tilegrid.WithMaxIterations(settings.MaxPathIterations))
	if err != nil {
		return err
	}

	disconnected := 0
	for _, r := range reports {
		fmt.Printf("%s: %d cells, %d grass, %d edges, %d goals\n", r.File, r.Cells, r.Grass, r.Edges, r.Goals)
		var paths []tilegrid.Coord
		for _, route := range r.Routes {
			if !route.Reachable {
				fmt.Printf("  %s %s: %s\n", route.Spawn.Name, route.Spawn.Coord, color.Red.Sprint("unreachable"))
				continue
			}
			fmt.Printf("  %s %s -> %s: %d cells\n", route.Spawn.Name, route.Spawn.Coord, route.Goal, route.Length)
			paths = append(paths, route.Path...)
		}
		if !r.Connected() {
			disconnected++
		}
		if *dump {
			fmt.Print(ascii.Dump(r.Grid, ascii.Options{Path: paths, Color: !*noColor}))
		}
	}
	if disconnected > 0 {
		return fmt.Errorf("%d of %d levels have unreachable spawns", disconnected, len(reports))
	}
	return nil
}
