// pkg/render/viewport.go
package render

import (
	"math"

	"herbicide/pkg/tilegrid"
)

// Viewport maps grid coordinates to screen pixels. Grid Y grows upward,
// screen Y downward, so the row with the largest Y is drawn first.
type Viewport struct {
	TileSize float64
	OriginX  float64
	OriginY  float64
	Min, Max tilegrid.Coord
}

// FitViewport centers the bounds [lo, hi] on a screen of the given size.
func FitViewport(lo, hi tilegrid.Coord, tileSize float64, screenWidth, screenHeight int) Viewport {
	w := float64(hi.X-lo.X+1) * tileSize
	h := float64(hi.Y-lo.Y+1) * tileSize
	return Viewport{
		TileSize: tileSize,
		OriginX:  math.Floor((float64(screenWidth) - w) / 2),
		OriginY:  math.Floor((float64(screenHeight) - h) / 2),
		Min:      lo,
		Max:      hi,
	}
}

// CellRect returns the top-left corner of the cell at c.
func (v Viewport) CellRect(c tilegrid.Coord) (x, y float64) {
	x = v.OriginX + float64(c.X-v.Min.X)*v.TileSize
	y = v.OriginY + float64(v.Max.Y-c.Y)*v.TileSize
	return x, y
}

// CellCenter returns the pixel center of the cell at c.
func (v Viewport) CellCenter(c tilegrid.Coord) (x, y float64) {
	x, y = v.CellRect(c)
	return x + v.TileSize/2, y + v.TileSize/2
}

// FootprintRect returns the pixel rectangle covered by a footprint anchored at origin.
// The footprint extends toward +X and +Y, which is up on screen.
func (v Viewport) FootprintRect(origin tilegrid.Coord, size tilegrid.Size) (x, y, w, h float64) {
	top := tilegrid.Coord{X: origin.X, Y: origin.Y + size.H - 1}
	x, y = v.CellRect(top)
	return x, y, float64(size.W) * v.TileSize, float64(size.H) * v.TileSize
}

// ToCoord returns the grid coordinate under the pixel, false outside the bounds.
func (v Viewport) ToCoord(px, py float64) (tilegrid.Coord, bool) {
	if v.TileSize <= 0 {
		return tilegrid.Coord{}, false
	}
	col := int(math.Floor((px - v.OriginX) / v.TileSize))
	row := int(math.Floor((py - v.OriginY) / v.TileSize))
	c := tilegrid.Coord{X: v.Min.X + col, Y: v.Max.Y - row}
	if c.X < v.Min.X || c.X > v.Max.X || c.Y < v.Min.Y || c.Y > v.Max.Y {
		return tilegrid.Coord{}, false
	}
	return c, true
}
