// internal/level/level.go
package level

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"herbicide/pkg/tilegrid"
)

const (
	tileLayer   = "tilelayer"
	objectGroup = "objectgroup"
)

// File is a tile map as exported by the level editor.
//
// Tile layers are row-major with row 0 at the top; object positions are in
// tiles, also counted from the top-left corner.
type File struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Tilesets []TilesetFile `json:"tilesets"`
	Layers   []LayerFile   `json:"layers"`
}

type TilesetFile struct {
	Name      string `json:"name"`
	FirstGID  int    `json:"firstgid"`
	TileCount int    `json:"tilecount"`
	// Kind defaults to the lower-cased tileset name.
	Kind string `json:"kind,omitempty"`
}

type LayerFile struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Kind    string       `json:"kind,omitempty"`
	Data    []int        `json:"data,omitempty"`
	Objects []ObjectFile `json:"objects,omitempty"`
}

type ObjectFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	// Payload is free text; spawn markers carry their wave data here.
	Payload string `json:"payload,omitempty"`
}

// Load reads a tile map file and converts it to level data.
func Load(path string) (tilegrid.LevelData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return tilegrid.LevelData{}, fmt.Errorf("failed to read level file: %w", err)
	}
	data, err := Parse(raw)
	if err != nil {
		return tilegrid.LevelData{}, fmt.Errorf("level %s: %w", path, err)
	}
	return data, nil
}

// Parse decodes a tile map from JSON.
func Parse(raw []byte) (tilegrid.LevelData, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return tilegrid.LevelData{}, fmt.Errorf("failed to unmarshal level: %w", err)
	}
	return f.LevelData()
}

func parseKind(s string) (tilegrid.LayerKind, error) {
	switch k := tilegrid.LayerKind(strings.ToLower(strings.TrimSpace(s))); k {
	case tilegrid.LayerWater, tilegrid.LayerGrass, tilegrid.LayerShore, tilegrid.LayerFlooring:
		return k, nil
	default:
		return "", fmt.Errorf("unknown layer kind %q", s)
	}
}

// LevelData converts the file into the grid's layer-ordered representation.
func (f File) LevelData() (tilegrid.LevelData, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return tilegrid.LevelData{}, fmt.Errorf("invalid level dimensions: %dx%d", f.Width, f.Height)
	}
	data := tilegrid.LevelData{Width: f.Width, Height: f.Height}

	for _, ts := range f.Tilesets {
		kindName := ts.Kind
		if kindName == "" {
			kindName = ts.Name
		}
		kind, err := parseKind(kindName)
		if err != nil {
			return tilegrid.LevelData{}, fmt.Errorf("tileset %q: %w", ts.Name, err)
		}
		data.Tilesets = append(data.Tilesets, tilegrid.Tileset{
			Name:     strings.ToLower(ts.Name),
			FirstGID: ts.FirstGID,
			Count:    ts.TileCount,
			Kind:     kind,
		})
	}

	for _, layer := range f.Layers {
		switch layer.Type {
		case tileLayer, "":
			kindName := layer.Kind
			if kindName == "" {
				kindName = layer.Name
			}
			kind, err := parseKind(kindName)
			if err != nil {
				return tilegrid.LevelData{}, fmt.Errorf("layer %q: %w", layer.Name, err)
			}
			data.Layers = append(data.Layers, tilegrid.Layer{Name: layer.Name, Kind: kind, Tiles: layer.Data})
		case objectGroup:
			for _, obj := range layer.Objects {
				data.Objects = append(data.Objects, tilegrid.MapObject{
					Name:    obj.Name,
					Type:    strings.ToLower(obj.Type),
					X:       obj.X,
					Y:       f.Height - 1 - obj.Y,
					Payload: obj.Payload,
				})
			}
		default:
			return tilegrid.LevelData{}, fmt.Errorf("layer %q: unsupported type %q", layer.Name, layer.Type)
		}
	}
	return data, nil
}
