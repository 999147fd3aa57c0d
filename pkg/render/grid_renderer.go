// pkg/render/grid_renderer.go
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"herbicide/pkg/tilegrid"
)

// floorInset: отступ плитки покрытия от края клетки, если сосед без покрытия
const floorInset = 4

// Overlay is the per-frame state drawn on top of the map.
type Overlay struct {
	Path   []tilegrid.Coord
	Agents []tilegrid.Coord
	// Hover, when set, outlines a footprint of HoverSize at the cursor.
	Hover     *tilegrid.Coord
	HoverSize tilegrid.Size
	HoverOK   bool
}

type glyphed interface{ Glyph() string }
type hexed interface{ Hex() string }

// GridRenderer draws a tilegrid. Terrain and flooring are cached in an
// offscreen image that is rebuilt when the grid version or a flooring
// appearance changes.
type GridRenderer struct {
	grid         *tilegrid.Grid
	view         Viewport
	palette      Palette
	screenWidth  int
	screenHeight int
	fontFace     font.Face

	mapImage     *ebiten.Image // предрендеренная подложка
	builtVersion uint64
	dirty        bool
	masks        map[tilegrid.Coord]tilegrid.NeighborMask
}

// NewGridRenderer registers itself as the grid's appearance listener.
func NewGridRenderer(grid *tilegrid.Grid, palette Palette, tileSize float64, screenWidth, screenHeight int) *GridRenderer {
	lo, hi := grid.Bounds()
	r := &GridRenderer{
		grid:         grid,
		view:         FitViewport(lo, hi, tileSize, screenWidth, screenHeight),
		palette:      palette,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		fontFace:     basicfont.Face7x13,
		dirty:        true,
		masks:        make(map[tilegrid.Coord]tilegrid.NeighborMask),
	}
	for _, cell := range grid.Cells() {
		if f := cell.Flooring(); f != nil {
			r.masks[cell.Coord()] = f.Appearance()
		}
	}
	grid.SetAppearanceListener(r)
	return r
}

// View returns the pixel mapping in use.
func (r *GridRenderer) View() Viewport { return r.view }

// AppearanceChanged implements tilegrid.AppearanceListener.
func (r *GridRenderer) AppearanceChanged(c *tilegrid.Cell, mask tilegrid.NeighborMask) {
	if c.Flooring() == nil {
		delete(r.masks, c.Coord())
	} else {
		r.masks[c.Coord()] = mask
	}
	r.dirty = true
}

// RenderMapImage redraws the cached terrain layer.
func (r *GridRenderer) RenderMapImage() {
	if r.mapImage == nil {
		r.mapImage = ebiten.NewImage(r.screenWidth, r.screenHeight)
	}
	r.mapImage.Fill(r.palette.Background)

	ts := float32(r.view.TileSize)
	for _, cell := range r.grid.Cells() {
		x, y := r.view.CellRect(cell.Coord())
		fill := r.terrainColor(cell.Type())
		vector.DrawFilledRect(r.mapImage, float32(x), float32(y), ts, ts, fill, false)
		vector.StrokeRect(r.mapImage, float32(x), float32(y), ts, ts, r.palette.StrokeWidth, LightenColor(fill, 40), false)
		if cell.Flooring() != nil {
			r.drawFlooring(r.mapImage, cell.Coord(), r.masks[cell.Coord()])
		}
	}
	r.builtVersion = r.grid.Version()
	r.dirty = false
}

// drawFlooring joins a flooring tile with floored neighbors on the sides set in mask.
func (r *GridRenderer) drawFlooring(target *ebiten.Image, c tilegrid.Coord, mask tilegrid.NeighborMask) {
	x, y := r.view.CellRect(c)
	ts := r.view.TileSize
	left, top, right, bottom := x+floorInset, y+floorInset, x+ts-floorInset, y+ts-floorInset
	if mask.Has(tilegrid.West) {
		left = x
	}
	if mask.Has(tilegrid.East) {
		right = x + ts
	}
	// север вверх по экрану
	if mask.Has(tilegrid.North) {
		top = y
	}
	if mask.Has(tilegrid.South) {
		bottom = y + ts
	}
	vector.DrawFilledRect(target, float32(left), float32(top), float32(right-left), float32(bottom-top), r.palette.Soil, false)
}

func (r *GridRenderer) terrainColor(t tilegrid.CellType) color.RGBA {
	switch t {
	case tilegrid.CellWater:
		return r.palette.Water
	case tilegrid.CellShore:
		return r.palette.Shore
	default:
		return r.palette.Grass
	}
}

// Draw paints the cached map, then models, markers and the overlay.
func (r *GridRenderer) Draw(screen *ebiten.Image, overlay Overlay) {
	if r.dirty || r.mapImage == nil || r.builtVersion != r.grid.Version() {
		r.RenderMapImage()
	}
	screen.DrawImage(r.mapImage, nil)

	for _, cell := range r.grid.Cells() {
		if cell.Origin() != nil {
			continue
		}
		if m := cell.Model(); m != nil {
			r.drawModel(screen, cell.Coord(), m)
		}
	}

	ts := float32(r.view.TileSize)
	for _, m := range r.grid.SpawnMarkers() {
		x, y := r.view.CellRect(m.Coord)
		vector.StrokeRect(screen, float32(x)+1, float32(y)+1, ts-2, ts-2, 2, r.palette.Spawn, false)
	}
	for _, m := range r.grid.GoalMarkers() {
		x, y := r.view.CellRect(m.Coord)
		vector.StrokeRect(screen, float32(x)+1, float32(y)+1, ts-2, ts-2, 2, r.palette.Goal, false)
	}

	dot := ts / 5
	for _, c := range overlay.Path {
		cx, cy := r.view.CellCenter(c)
		vector.DrawFilledRect(screen, float32(cx)-dot/2, float32(cy)-dot/2, dot, dot, r.palette.Path, false)
	}
	for _, c := range overlay.Agents {
		cx, cy := r.view.CellCenter(c)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), ts/3, r.palette.Agent, true)
		vector.StrokeCircle(screen, float32(cx), float32(cy), ts/3, 1, r.palette.Text, true)
	}

	if overlay.Hover != nil {
		size := overlay.HoverSize
		if size.W < 1 || size.H < 1 {
			size = tilegrid.Unit
		}
		x, y, w, h := r.view.FootprintRect(*overlay.Hover, size)
		clr := color.RGBA{R: 255, G: 100, B: 100, A: 255}
		if overlay.HoverOK {
			clr = color.RGBA{R: 100, G: 255, B: 100, A: 255}
		}
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, clr, false)
	}
}

func (r *GridRenderer) drawModel(screen *ebiten.Image, origin tilegrid.Coord, m tilegrid.Model) {
	x, y, w, h := r.view.FootprintRect(origin, m.Footprint())
	fill := r.palette.Structure
	if hm, ok := m.(hexed); ok {
		if c, err := ParseHex(hm.Hex()); err == nil {
			fill = c
		}
	}
	if m.Traversable() {
		fill = DarkenColor(fill)
	}
	vector.DrawFilledRect(screen, float32(x)+2, float32(y)+2, float32(w)-4, float32(h)-4, fill, false)

	label := "?"
	if k := string(m.Kind()); k != "" {
		label = k[:1]
	}
	if gm, ok := m.(glyphed); ok && gm.Glyph() != "" {
		label = gm.Glyph()
	}
	// модель на модели: рисуем верхнюю поменьше
	if s, ok := m.(tilegrid.Surface); ok && s.Occupant() != nil {
		top := s.Occupant()
		inner := float32(r.view.TileSize) / 4
		vector.DrawFilledRect(screen, float32(x)+inner, float32(y)+inner, float32(w)-2*inner, float32(h)-2*inner, r.palette.Structure, false)
		if gm, ok := top.(glyphed); ok && gm.Glyph() != "" {
			label = gm.Glyph()
		}
	}

	bounds := text.BoundString(r.fontFace, label)
	tx := int(x+w/2) - bounds.Dx()/2
	ty := int(y+h/2) + bounds.Dy()/2
	text.Draw(screen, label, r.fontFace, tx, ty, r.palette.Text)
}
