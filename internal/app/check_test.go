package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbicide/internal/defs"
	"herbicide/pkg/tilegrid"
)

var meadowPath = filepath.Join("..", "..", "assets", "levels", "meadow.json")

func meadowLibrary(t *testing.T) *defs.Library {
	t.Helper()
	lib, err := defs.LoadModelDefinitions(filepath.Join("..", "..", "assets", "defs", "models.json"))
	require.NoError(t, err)
	return lib
}

func TestCheckLevel(t *testing.T) {
	report, err := CheckLevel(meadowPath, meadowLibrary(t))
	require.NoError(t, err)

	assert.Equal(t, 70, report.Cells)
	assert.Equal(t, 18, report.Grass)
	assert.Equal(t, 22, report.Edges)
	assert.Equal(t, 1, report.Goals)
	require.Len(t, report.Routes, 1)

	route := report.Routes[0]
	assert.True(t, route.Reachable)
	assert.Equal(t, tilegrid.Coord{X: 6, Y: 3}, route.Goal)
	assert.Equal(t, 7, route.Length)
	assert.Len(t, route.Path, 7)
	assert.True(t, report.Connected())
}

func TestCheckLevelsKeepsOrder(t *testing.T) {
	files := []string{meadowPath, meadowPath, meadowPath}
	reports, err := CheckLevels(context.Background(), files, meadowLibrary(t), 2)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	for _, r := range reports {
		assert.Equal(t, meadowPath, r.File)
		assert.True(t, r.Connected())
	}
	// каждый отчёт держит свою сетку
	assert.NotSame(t, reports[0].Grid, reports[1].Grid)
}

func TestCheckLevelsFailsOnBadFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))

	_, err := CheckLevels(context.Background(), []string{meadowPath, bad}, meadowLibrary(t), 0)
	assert.Error(t, err)
}

func TestReportConnected(t *testing.T) {
	r := Report{Routes: []Route{{Reachable: true}, {Reachable: false}}}
	assert.False(t, r.Connected())
	assert.True(t, Report{}.Connected())
}
