package tilegrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// openGrid builds a sealed w×h grid of grass cells with the origin at (0,0).
func openGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g := NewGrid()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, err := g.PutCell(Coord{X: x, Y: y}, CellGrass)
			require.NoError(t, err)
		}
	}
	g.MarkGenerated()
	return g
}

func wall() *Static {
	return &Static{Name: "wall", Of: "structure", Size: Unit}
}

func block(w, h int) *Static {
	return &Static{Name: "block", Of: "structure", Size: Size{W: w, H: h}}
}

// platform is a model other models can stand on.
type platform struct {
	top Model
}

func (p *platform) Kind() Kind        { return "platform" }
func (p *platform) Footprint() Size   { return Unit }
func (p *platform) Traversable() bool { return p.Walkable() }
func (p *platform) Occupant() Model   { return p.top }
func (p *platform) CanPlace(m Model) bool {
	return m != nil && p.top == nil
}
func (p *platform) GhostPlace(m Model) bool { return p.CanPlace(m) }
func (p *platform) Place(m Model) bool {
	if !p.CanPlace(m) {
		return false
	}
	p.top = m
	return true
}
func (p *platform) Remove() (Model, bool) {
	if p.top == nil {
		return nil, false
	}
	m := p.top
	p.top = nil
	return m, true
}
func (p *platform) Walkable() bool { return p.top == nil || p.top.Traversable() }

// deck is a platform spanning several cells. Standing on it is decided by
// what it carries, never by Traversable.
type deck struct {
	platform
	size Size
}

func (d *deck) Footprint() Size   { return d.size }
func (d *deck) Traversable() bool { return false }

// snapshot renders the observable state of every cell.
func snapshot(g *Grid) []string {
	var out []string
	for _, c := range g.Cells() {
		line := fmt.Sprintf("%s %s occ=%v origin=%v", c.coord, c.typ, c.occupant, c.origin != nil)
		if c.flooring != nil {
			line += fmt.Sprintf(" floor=%s/%v mask=%d", c.flooring.kind, c.flooring.occupant, c.flooring.mask)
		}
		for _, dir := range Directions {
			if n := c.Neighbor(dir); n != nil {
				line += " " + dir.String() + "=" + n.coord.String()
			}
		}
		out = append(out, line)
	}
	return out
}

type appearanceRecorder struct {
	calls map[Coord]NeighborMask
	order []Coord
}

func newAppearanceRecorder() *appearanceRecorder {
	return &appearanceRecorder{calls: make(map[Coord]NeighborMask)}
}

func (r *appearanceRecorder) AppearanceChanged(c *Cell, mask NeighborMask) {
	r.calls[c.Coord()] = mask
	r.order = append(r.order, c.Coord())
}
