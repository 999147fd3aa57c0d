// internal/app/level.go
package app

import (
	"fmt"
	"log/slog"

	"herbicide/internal/config"
	"herbicide/internal/defs"
	"herbicide/internal/event"
	"herbicide/internal/level"
	"herbicide/pkg/tilegrid"
)

// Level owns one generated grid and everything acting on it during a session.
// Like the grid itself it expects a single caller at a time.
type Level struct {
	Grid       *tilegrid.Grid
	Pathfinder *tilegrid.Pathfinder
	Events     *event.Dispatcher
	Library    *defs.Library

	logger       *slog.Logger
	keepPathOpen bool
	pathOpts     []tilegrid.PathOption

	agents    []*Agent
	nextAgent tilegrid.AgentID
}

// Option configures a Level.
type Option func(*Level)

// WithLogger sets the logger; slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(lv *Level) { lv.logger = l }
}

// WithKeepPathOpen refuses placements that leave some spawn with no path to any goal.
func WithKeepPathOpen(on bool) Option {
	return func(lv *Level) { lv.keepPathOpen = on }
}

// WithPathOptions forwards options to the pathfinder.
func WithPathOptions(opts ...tilegrid.PathOption) Option {
	return func(lv *Level) { lv.pathOpts = append(lv.pathOpts, opts...) }
}

// NewLevel wires a pathfinder and an event dispatcher around grid.
func NewLevel(grid *tilegrid.Grid, lib *defs.Library, opts ...Option) *Level {
	lv := &Level{
		Grid:    grid,
		Events:  event.NewDispatcher(),
		Library: lib,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(lv)
	}
	lv.Pathfinder = tilegrid.NewPathfinder(grid, lv.pathOpts...)
	return lv
}

// Open loads definitions and the tile map named in settings and generates the level.
func Open(s config.Settings, logger *slog.Logger) (*Level, error) {
	if logger == nil {
		logger = slog.Default()
	}
	lib, err := defs.LoadModelDefinitions(s.Definitions)
	if err != nil {
		return nil, err
	}
	data, err := level.Load(s.Level)
	if err != nil {
		return nil, err
	}
	grid, err := tilegrid.Generate(data, lib)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", s.Level, err)
	}

	pathOpts := []tilegrid.PathOption{tilegrid.WithMaxIterations(s.MaxPathIterations)}
	if s.PathCacheSize > 0 {
		pathOpts = append(pathOpts, tilegrid.WithPathCache(tilegrid.NewPathCache(s.PathCacheSize)))
	}
	lv := NewLevel(grid, lib,
		WithLogger(logger),
		WithKeepPathOpen(s.KeepPathOpen),
		WithPathOptions(pathOpts...),
	)
	logger.Info("level generated",
		"file", s.Level,
		"cells", grid.Len(),
		"grass", grid.GrassCount(),
		"edges", len(grid.EdgeCells()),
		"spawns", len(grid.SpawnMarkers()),
		"goals", len(grid.GoalMarkers()),
	)
	return lv, nil
}

// NearestGoal returns the goal with the shortest path from c.
func (lv *Level) NearestGoal(c tilegrid.Coord) (tilegrid.Coord, int, bool) {
	var (
		best    tilegrid.Coord
		bestLen int
		found   bool
	)
	for _, goal := range lv.Grid.GoalMarkers() {
		n, ok := lv.Pathfinder.PathLength(c, goal.Coord)
		if !ok {
			continue
		}
		if !found || n < bestLen {
			best, bestLen, found = goal.Coord, n, true
		}
	}
	return best, bestLen, found
}

// spawnsConnected reports whether every spawn marker reaches at least one goal.
// A level without goals is trivially connected.
func (lv *Level) spawnsConnected() bool {
	if len(lv.Grid.GoalMarkers()) == 0 {
		return true
	}
	for _, spawn := range lv.Grid.SpawnMarkers() {
		if _, _, ok := lv.NearestGoal(spawn.Coord); !ok {
			return false
		}
	}
	return true
}
