// internal/ascii/dump.go
package ascii

import (
	"strings"

	"github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"

	"herbicide/pkg/tilegrid"
)

// Glyphs used for terrain and markers.
const (
	GlyphWater    = '~'
	GlyphShore    = '.'
	GlyphGrass    = ','
	GlyphFlooring = '_'
	GlyphSpawn    = 'S'
	GlyphGoal     = 'G'
	GlyphPath     = '*'
	GlyphAgent    = '@'
	GlyphMissing  = ' '
)

var (
	styleWater    = color.Style{color.FgBlue}
	styleShore    = color.Style{color.FgYellow}
	styleGrass    = color.Style{color.FgGreen}
	styleFlooring = color.Style{color.FgMagenta}
	styleModel    = color.Style{color.FgRed, color.OpBold}
	styleMarker   = color.Style{color.FgCyan, color.OpBold}
	stylePath     = color.Style{color.FgYellow, color.OpBold}
	styleAgent    = color.Style{color.FgWhite, color.BgBlack, color.OpBold}
)

// glyphed is implemented by models that choose their own character.
type glyphed interface {
	Glyph() string
}

// hexed is implemented by models that carry a "#rrggbb" color hint.
type hexed interface {
	Hex() string
}

// Options control Dump.
type Options struct {
	// Path is drawn over free cells.
	Path []tilegrid.Coord
	// Color wraps glyphs in terminal color codes.
	Color bool
}

// Dump renders the grid as text, one row per Y from the top (max Y) down.
// Precedence per cell: agent, model, spawn/goal marker, path, flooring, terrain.
func Dump(g *tilegrid.Grid, opts Options) string {
	if g.Len() == 0 {
		return ""
	}
	path := mapset.New[tilegrid.Coord]()
	for _, c := range opts.Path {
		path.Put(c)
	}
	spawns := mapset.New[tilegrid.Coord]()
	for _, m := range g.SpawnMarkers() {
		spawns.Put(m.Coord)
	}
	goals := mapset.New[tilegrid.Coord]()
	for _, m := range g.GoalMarkers() {
		goals.Put(m.Coord)
	}

	lo, hi := g.Bounds()
	var sb strings.Builder
	for y := hi.Y; y >= lo.Y; y-- {
		for x := lo.X; x <= hi.X; x++ {
			c := tilegrid.Coord{X: x, Y: y}
			glyph, style := cellGlyph(g, c, spawns, goals, path)
			if opts.Color && style != nil {
				sb.WriteString(style.Sprint(string(glyph)))
			} else {
				sb.WriteRune(glyph)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

type printer interface {
	Sprint(a ...any) string
}

func cellGlyph(g *tilegrid.Grid, c tilegrid.Coord, spawns, goals, path mapset.Set[tilegrid.Coord]) (rune, printer) {
	cell, ok := g.Cell(c)
	if !ok {
		return GlyphMissing, nil
	}
	if len(g.AgentsAt(c)) > 0 {
		return GlyphAgent, styleAgent
	}
	if m := cell.Model(); m != nil {
		return modelGlyph(m)
	}
	switch {
	case spawns.Has(c):
		return GlyphSpawn, styleMarker
	case goals.Has(c):
		return GlyphGoal, styleMarker
	case path.Has(c):
		return GlyphPath, stylePath
	case cell.Flooring() != nil:
		return GlyphFlooring, styleFlooring
	}
	switch cell.Type() {
	case tilegrid.CellWater:
		return GlyphWater, styleWater
	case tilegrid.CellShore:
		return GlyphShore, styleShore
	default:
		return GlyphGrass, styleGrass
	}
}

func modelGlyph(m tilegrid.Model) (rune, printer) {
	glyph := '?'
	if k := m.Kind(); k != "" {
		glyph = []rune(string(k))[0]
	}
	if gm, ok := m.(glyphed); ok && gm.Glyph() != "" {
		glyph = []rune(gm.Glyph())[0]
	}
	if hm, ok := m.(hexed); ok && hm.Hex() != "" {
		return glyph, color.HEX(hm.Hex())
	}
	return glyph, styleModel
}
