// pkg/tilegrid/generation.go
package tilegrid

import "fmt"

// LayerKind says what a tile layer (and the tileset feeding it) describes.
type LayerKind string

const (
	LayerWater    LayerKind = "water"
	LayerGrass    LayerKind = "grass"
	LayerShore    LayerKind = "shore"
	LayerFlooring LayerKind = "flooring"
)

// Object types understood by Generate.
const (
	ObjectStructure = "structure"
	ObjectSpawn     = "spawn"
	ObjectGoal      = "goal"
)

// Tileset maps the tile IDs [FirstGID, FirstGID+Count) to a layer kind.
type Tileset struct {
	Name     string
	FirstGID int
	Count    int
	Kind     LayerKind
}

func (ts Tileset) contains(id int) bool {
	return id >= ts.FirstGID && id < ts.FirstGID+ts.Count
}

// Layer is a row-major tile layer; row 0 is the top of the map. Tile ID 0 is empty.
type Layer struct {
	Name  string
	Kind  LayerKind
	Tiles []int
}

// MapObject is a marker or structure from the object layers, already in grid coordinates.
type MapObject struct {
	Name    string
	Type    string
	X, Y    int
	Payload string
}

// LevelData is the parsed tile map handed to Generate.
type LevelData struct {
	Width, Height int
	Tilesets      []Tileset
	Layers        []Layer
	Objects       []MapObject
}

// TileCoord converts a row-major tile index to a grid coordinate.
// Row 0 is the top row, so it gets the largest Y.
func (d LevelData) TileCoord(index int) Coord {
	return Coord{X: index % d.Width, Y: d.Height - 1 - index/d.Width}
}

func (d LevelData) tileset(id int) (Tileset, bool) {
	for _, ts := range d.Tilesets {
		if ts.contains(id) {
			return ts, true
		}
	}
	return Tileset{}, false
}

// baseLayers is the fixed order of cell-creating layers. Later layers retype
// cells created by earlier ones.
var baseLayers = []struct {
	kind LayerKind
	cell CellType
}{
	{LayerWater, CellWater},
	{LayerGrass, CellGrass},
	{LayerShore, CellShore},
}

// Generate builds a sealed grid from level data. Phases run in a fixed
// order regardless of the order of data.Layers: water, grass, shore,
// structures, spawn and goal markers, flooring. Any inconsistency in the
// data is fatal and no grid is returned.
func Generate(data LevelData, factory ModelFactory) (*Grid, error) {
	if data.Width <= 0 || data.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, data.Width, data.Height)
	}
	for _, layer := range data.Layers {
		if len(layer.Tiles) != data.Width*data.Height {
			return nil, fmt.Errorf("layer %q has %d tiles, want %d: %w",
				layer.Name, len(layer.Tiles), data.Width*data.Height, ErrLayerSize)
		}
	}

	g := NewGrid()

	// Базовые слои: вода, трава, берег
	for _, base := range baseLayers {
		err := data.eachTile(base.kind, func(c Coord, _ Tileset) error {
			_, err := g.PutCell(c, base.cell)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	for _, obj := range data.Objects {
		if obj.Type != ObjectStructure {
			continue
		}
		if factory == nil {
			return nil, fmt.Errorf("structure %q: no model factory: %w", obj.Name, ErrPlacement)
		}
		m, err := factory.NewModel(obj.Name)
		if err != nil {
			return nil, fmt.Errorf("structure %q: %w", obj.Name, err)
		}
		at := Coord{X: obj.X, Y: obj.Y}
		if !g.PlaceAt(at, m) {
			return nil, fmt.Errorf("structure %q at %s: %w", obj.Name, at, ErrPlacement)
		}
	}

	for _, obj := range data.Objects {
		marker := Marker{Coord: Coord{X: obj.X, Y: obj.Y}, Name: obj.Name, Payload: obj.Payload}
		var err error
		switch obj.Type {
		case ObjectStructure:
			continue
		case ObjectSpawn:
			err = g.AddSpawnMarker(marker)
		case ObjectGoal:
			err = g.AddGoalMarker(marker)
		default:
			err = fmt.Errorf("object %q type %q: %w", obj.Name, obj.Type, ErrUnknownObject)
		}
		if err != nil {
			return nil, err
		}
	}

	err := data.eachTile(LayerFlooring, func(c Coord, ts Tileset) error {
		if _, ok := g.Cell(c); !ok {
			return fmt.Errorf("flooring at %s: %w", c, ErrMissingCell)
		}
		if !g.FloorAt(c, FlooringKind(ts.Name)) {
			return fmt.Errorf("flooring %q at %s: %w", ts.Name, c, ErrPlacement)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.MarkGenerated()
	return g, nil
}

// eachTile visits every non-empty tile of every layer of the given kind,
// in layer order.
func (d LevelData) eachTile(kind LayerKind, visit func(Coord, Tileset) error) error {
	for _, layer := range d.Layers {
		if layer.Kind != kind {
			continue
		}
		for i, id := range layer.Tiles {
			if id == 0 {
				continue
			}
			ts, ok := d.tileset(id)
			if !ok {
				return fmt.Errorf("layer %q tile %d: %w", layer.Name, id, ErrUnknownTileID)
			}
			if ts.Kind != kind {
				return fmt.Errorf("layer %q tile %d from tileset %q (%s): %w",
					layer.Name, id, ts.Name, ts.Kind, ErrLayerKind)
			}
			if err := visit(d.TileCoord(i), ts); err != nil {
				return err
			}
		}
	}
	return nil
}
