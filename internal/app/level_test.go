package app

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbicide/internal/config"
	"herbicide/internal/defs"
	"herbicide/internal/event"
	"herbicide/pkg/tilegrid"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLibrary(t *testing.T) *defs.Library {
	t.Helper()
	lib, err := defs.NewLibrary([]defs.ModelDefinition{
		{ID: "nexus", Category: defs.CategoryNexus, Width: 1, Height: 1},
		{ID: "stone_wall", Category: defs.CategoryStructure},
		{ID: "boulder", Category: defs.CategoryStructure, Width: 2, Height: 2},
	})
	require.NoError(t, err)
	return lib
}

// corridorLevel is a w×3 grass strip with a spawn at (0,1) and a goal at (w-1,1).
func corridorLevel(t *testing.T, w int, opts ...Option) *Level {
	t.Helper()
	g := tilegrid.NewGrid()
	for y := 0; y < 3; y++ {
		for x := 0; x < w; x++ {
			_, err := g.PutCell(tilegrid.Coord{X: x, Y: y}, tilegrid.CellGrass)
			require.NoError(t, err)
		}
	}
	require.NoError(t, g.AddSpawnMarker(tilegrid.Marker{Coord: tilegrid.Coord{X: 0, Y: 1}, Name: "west", Payload: "enemy=Knotwood;count=2"}))
	require.NoError(t, g.AddGoalMarker(tilegrid.Marker{Coord: tilegrid.Coord{X: w - 1, Y: 1}, Name: "nexus"}))
	g.MarkGenerated()

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewLevel(g, testLibrary(t), opts...)
}

func TestOpenMeadow(t *testing.T) {
	s := config.Default()
	s.Level = filepath.Join("..", "..", "assets", "levels", "meadow.json")
	s.Definitions = filepath.Join("..", "..", "assets", "defs", "models.json")
	s.PathCacheSize = 16

	lv, err := Open(s, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 70, lv.Grid.Len())

	goal, n, ok := lv.NearestGoal(tilegrid.Coord{X: 2, Y: 3})
	require.True(t, ok)
	assert.Equal(t, tilegrid.Coord{X: 6, Y: 3}, goal)
	assert.Equal(t, 7, n)
}

func TestOpenMissingFiles(t *testing.T) {
	s := config.Default()
	s.Definitions = filepath.Join(t.TempDir(), "none.json")
	_, err := Open(s, quietLogger())
	assert.Error(t, err)
}

func TestPlaceDispatchesEvent(t *testing.T) {
	lv := corridorLevel(t, 5)
	var got []PlacementData
	lv.Events.SubscribeFunc(event.ModelPlaced, func(e event.Event) {
		got = append(got, e.Data.(PlacementData))
	})

	require.NoError(t, lv.Place(tilegrid.Coord{X: 2, Y: 0}, "stone_wall"))
	require.Len(t, got, 1)
	assert.Equal(t, tilegrid.Coord{X: 2, Y: 0}, got[0].Coord)
	assert.Equal(t, tilegrid.Kind("stone_wall"), got[0].Model.Kind())

	err := lv.Place(tilegrid.Coord{X: 2, Y: 0}, "stone_wall")
	assert.ErrorIs(t, err, ErrRejected)
	err = lv.Place(tilegrid.Coord{X: 1, Y: 1}, "castle")
	assert.ErrorIs(t, err, defs.ErrUnknownModel)
	assert.Len(t, got, 1)
}

func TestPlaceKeepsPathOpen(t *testing.T) {
	lv := corridorLevel(t, 5, WithKeepPathOpen(true))
	require.NoError(t, lv.Place(tilegrid.Coord{X: 2, Y: 0}, "stone_wall"))
	require.NoError(t, lv.Place(tilegrid.Coord{X: 2, Y: 1}, "stone_wall"))
	before := lv.Grid.Version()

	err := lv.Place(tilegrid.Coord{X: 2, Y: 2}, "stone_wall")
	assert.ErrorIs(t, err, ErrPathBlocked)
	cell, _ := lv.Grid.Cell(tilegrid.Coord{X: 2, Y: 2})
	assert.False(t, cell.Occupied())
	assert.NotEqual(t, before, lv.Grid.Version(), "rollback is a mutation too")

	_, _, ok := lv.NearestGoal(tilegrid.Coord{X: 0, Y: 1})
	assert.True(t, ok)
}

func TestPlaceWithoutPathRule(t *testing.T) {
	lv := corridorLevel(t, 5)
	for y := 0; y < 3; y++ {
		require.NoError(t, lv.Place(tilegrid.Coord{X: 2, Y: y}, "stone_wall"))
	}
	_, _, ok := lv.NearestGoal(tilegrid.Coord{X: 0, Y: 1})
	assert.False(t, ok)
}

func TestCanPlace(t *testing.T) {
	lv := corridorLevel(t, 4)
	assert.True(t, lv.CanPlace(tilegrid.Coord{X: 0, Y: 0}, "boulder"))
	assert.False(t, lv.CanPlace(tilegrid.Coord{X: 3, Y: 2}, "boulder"))
	assert.False(t, lv.CanPlace(tilegrid.Coord{X: 0, Y: 0}, "castle"))
}

func TestRemoveAndFlooring(t *testing.T) {
	lv := corridorLevel(t, 4)
	var types []event.EventType
	record := func(e event.Event) { types = append(types, e.Type) }
	for _, et := range []event.EventType{event.ModelRemoved, event.CellFloored, event.FlooringRemoved} {
		lv.Events.SubscribeFunc(et, record)
	}

	_, err := lv.Remove(tilegrid.Coord{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrNothingToRemove)

	require.NoError(t, lv.Place(tilegrid.Coord{X: 1, Y: 1}, "boulder"))
	m, err := lv.Remove(tilegrid.Coord{X: 2, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, tilegrid.Kind("boulder"), m.Kind())

	require.NoError(t, lv.Floor(tilegrid.Coord{X: 1, Y: 1}, tilegrid.Soil))
	assert.ErrorIs(t, lv.Floor(tilegrid.Coord{X: 1, Y: 1}, tilegrid.Soil), ErrRejected)
	require.NoError(t, lv.Unfloor(tilegrid.Coord{X: 1, Y: 1}))
	assert.ErrorIs(t, lv.Unfloor(tilegrid.Coord{X: 1, Y: 1}), ErrNothingToRemove)

	assert.Equal(t, []event.EventType{event.ModelRemoved, event.CellFloored, event.FlooringRemoved}, types)
}
