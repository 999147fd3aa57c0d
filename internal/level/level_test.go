package level

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbicide/pkg/tilegrid"
)

func stubFactory() tilegrid.ModelFactory {
	return tilegrid.ModelFactoryFunc(func(name string) (tilegrid.Model, error) {
		switch name {
		case "nexus":
			return &tilegrid.Static{Name: name, Of: "nexus", Size: tilegrid.Size{W: 2, H: 1}}, nil
		default:
			return &tilegrid.Static{Name: name, Of: tilegrid.Kind(name), Size: tilegrid.Unit}, nil
		}
	})
}

func TestLoadMeadow(t *testing.T) {
	data, err := Load(filepath.Join("testdata", "meadow.json"))
	require.NoError(t, err)

	assert.Equal(t, 10, data.Width)
	assert.Equal(t, 7, data.Height)
	require.Len(t, data.Tilesets, 4)
	assert.Equal(t, tilegrid.LayerFlooring, data.Tilesets[3].Kind)
	assert.Equal(t, "soil", data.Tilesets[3].Name)
	require.Len(t, data.Layers, 4)
	require.Len(t, data.Objects, 4)

	spawn := data.Objects[2]
	assert.Equal(t, tilegrid.ObjectSpawn, spawn.Type)
	assert.Equal(t, 2, spawn.X)
	assert.Equal(t, 3, spawn.Y)
	assert.Equal(t, "enemy=Knotwood;count=3;delay=2", spawn.Payload)
}

func TestMeadowGeneratesAndPaths(t *testing.T) {
	data, err := Load(filepath.Join("testdata", "meadow.json"))
	require.NoError(t, err)
	g, err := tilegrid.Generate(data, stubFactory())
	require.NoError(t, err)

	assert.Equal(t, 70, g.Len())
	assert.Equal(t, 18, g.GrassCount())
	assert.Len(t, g.EdgeCells(), 22)

	soil, ok := g.Cell(tilegrid.Coord{X: 4, Y: 4})
	require.True(t, ok)
	assert.NotNil(t, soil.Flooring())

	p := tilegrid.NewPathfinder(g)
	spawn := g.SpawnMarkers()[0].Coord
	goal := g.GoalMarkers()[0].Coord
	n, ok := p.PathLength(spawn, goal)
	require.True(t, ok)
	assert.Equal(t, 7, n, "detour around the wall at (4,3)")
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"not json":         `{`,
		"zero size":        `{"width": 0, "height": 3}`,
		"bad tileset kind": `{"width": 1, "height": 1, "tilesets": [{"name": "lava", "firstgid": 1, "tilecount": 1}]}`,
		"bad layer kind":   `{"width": 1, "height": 1, "layers": [{"name": "Clouds", "type": "tilelayer", "data": [0]}]}`,
		"bad layer type":   `{"width": 1, "height": 1, "layers": [{"name": "Grass", "type": "imagelayer"}]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLayerKindFromField(t *testing.T) {
	data, err := Parse([]byte(`{
		"width": 2, "height": 1,
		"tilesets": [{"name": "meadow", "firstgid": 1, "tilecount": 2, "kind": "Grass"}],
		"layers": [{"name": "Ground", "type": "tilelayer", "kind": "grass", "data": [1, 2]}]
	}`))
	require.NoError(t, err)
	require.Len(t, data.Layers, 1)
	assert.Equal(t, tilegrid.LayerGrass, data.Layers[0].Kind)

	g, err := tilegrid.Generate(data, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, g.GrassCount())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
