// internal/app/check.go
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"herbicide/internal/defs"
	"herbicide/internal/level"
	"herbicide/pkg/tilegrid"
)

// Route is the shortest spawn-to-goal connection found for one spawn marker.
type Route struct {
	Spawn     tilegrid.Marker
	Goal      tilegrid.Coord
	Length    int
	Path      []tilegrid.Coord
	Reachable bool
}

// Report summarizes one checked level file.
type Report struct {
	File   string
	Cells  int
	Grass  int
	Edges  int
	Goals  int
	Routes []Route
	Grid   *tilegrid.Grid
}

// Connected reports whether every spawn reaches a goal.
func (r Report) Connected() bool {
	for _, route := range r.Routes {
		if !route.Reachable {
			return false
		}
	}
	return true
}

// CheckLevel generates the level at path and routes every spawn to its nearest goal.
func CheckLevel(path string, lib *defs.Library, opts ...tilegrid.PathOption) (Report, error) {
	data, err := level.Load(path)
	if err != nil {
		return Report{}, err
	}
	grid, err := tilegrid.Generate(data, lib)
	if err != nil {
		return Report{}, fmt.Errorf("generate %s: %w", path, err)
	}
	lv := NewLevel(grid, lib, WithPathOptions(opts...))

	report := Report{
		File:  path,
		Cells: grid.Len(),
		Grass: grid.GrassCount(),
		Edges: len(grid.EdgeCells()),
		Goals: len(grid.GoalMarkers()),
		Grid:  grid,
	}
	for _, spawn := range grid.SpawnMarkers() {
		route := Route{Spawn: spawn}
		if goal, n, ok := lv.NearestGoal(spawn.Coord); ok {
			route.Goal, route.Length, route.Reachable = goal, n, true
			route.Path, _ = lv.Pathfinder.FindPath(spawn.Coord, goal)
		}
		report.Routes = append(report.Routes, route)
	}
	return report, nil
}

// CheckLevels runs CheckLevel over files with at most limit in flight
// (limit <= 0 means unbounded). Reports come back in the order of files.
// The first failing file cancels the rest.
func CheckLevels(ctx context.Context, files []string, lib *defs.Library, limit int, opts ...tilegrid.PathOption) ([]Report, error) {
	reports := make([]Report, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := CheckLevel(file, lib, opts...)
			if err != nil {
				return err
			}
			slog.Debug("level checked", "file", file, "routes", len(report.Routes), "connected", report.Connected())
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
