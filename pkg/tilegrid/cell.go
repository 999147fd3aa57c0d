// pkg/tilegrid/cell.go
package tilegrid

// CellType задаётся базовым слоем карты.
type CellType int

const (
	CellGrass CellType = iota
	CellWater
	// CellShore cells border the water and make up the grid's edge.
	CellShore
)

func (t CellType) String() string {
	switch t {
	case CellGrass:
		return "grass"
	case CellWater:
		return "water"
	case CellShore:
		return "shore"
	default:
		return "unknown"
	}
}

// Cell is one unit of the grid.
//
// A model covering several cells is held by its origin cell only; the other
// covered cells point at that origin. Placing onto a floored cell delegates
// to the flooring.
type Cell struct {
	coord Coord
	typ   CellType
	grid  *Grid

	occupant Model
	origin   *Cell
	flooring *Flooring

	// Neighbors are resolved by the grid whenever cell membership changes.
	North *Cell
	East  *Cell
	South *Cell
	West  *Cell
}

func (c *Cell) Coord() Coord        { return c.coord }
func (c *Cell) Type() CellType      { return c.typ }
func (c *Cell) Flooring() *Flooring { return c.flooring }

// IsEdge reports whether the cell belongs to the grid's edge.
func (c *Cell) IsEdge() bool { return c.typ == CellShore }

// Origin returns the cell owning the multi-cell model that covers c,
// or nil when c is not covered by someone else's model.
func (c *Cell) Origin() *Cell { return c.origin }

// Neighbor returns the neighboring cell in the given direction
func (c *Cell) Neighbor(dir Direction) *Cell {
	switch dir {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return nil
	}
}

func (c *Cell) setNeighbor(dir Direction, n *Cell) {
	switch dir {
	case North:
		c.North = n
	case East:
		c.East = n
	case South:
		c.South = n
	case West:
		c.West = n
	}
}

// root is the cell answering occupancy questions for c.
func (c *Cell) root() *Cell {
	if c.origin != nil {
		return c.origin
	}
	return c
}

// Occupied reports whether anything sits on the cell, including a model
// expanded over it from another cell. Flooring alone does not occupy.
func (c *Cell) Occupied() bool {
	if c.origin != nil || c.occupant != nil {
		return true
	}
	return c.flooring != nil && c.flooring.occupant != nil
}

// Occupant returns the first link of the delegation chain: the flooring if
// present, otherwise the direct occupant (or the origin's, for expanded cells).
func (c *Cell) Occupant() Model {
	r := c.root()
	if r.flooring != nil {
		return r.flooring
	}
	return r.occupant
}

// Model returns the model placed on the cell, looking through the flooring.
func (c *Cell) Model() Model {
	r := c.root()
	if r.flooring != nil {
		return r.flooring.occupant
	}
	return r.occupant
}

// HasModelOfKind walks the occupant chain (cell, flooring, flooring occupant...)
// and reports whether any link has the given kind.
func (c *Cell) HasModelOfKind(kind Kind) bool {
	return walkChain(c.root(), func(m Model) bool {
		return m.Kind() == kind
	})
}

func (c *Cell) Walkable() bool {
	if c.typ == CellWater {
		return false
	}
	if c.origin != nil {
		return c.origin.Walkable()
	}
	if c.flooring != nil {
		return c.flooring.Walkable()
	}
	if c.occupant == nil {
		return true
	}
	if s, ok := c.occupant.(Surface); ok {
		return s.Walkable()
	}
	return c.occupant.Traversable()
}

// CanPlace reports whether m can go on this single cell. Footprints larger
// than one cell are validated cell by cell through canHost.
func (c *Cell) CanPlace(m Model) bool {
	if m == nil || m.Footprint() != Unit {
		return false
	}
	return c.canHost(m, true)
}

// canHost checks the cell as part of a footprint. Only the origin of a
// 1×1 model may be delegated to a flooring.
func (c *Cell) canHost(m Model, allowFlooring bool) bool {
	if c.typ != CellGrass || c.origin != nil {
		return false
	}
	if c.flooring != nil {
		return allowFlooring && c.flooring.CanPlace(m)
	}
	if c.occupant == nil {
		return true
	}
	if s, ok := c.occupant.(Surface); ok {
		return allowFlooring && s.CanPlace(m)
	}
	return false
}

func (c *Cell) GhostPlace(m Model) bool {
	return c.CanPlace(m)
}

// Place puts a 1×1 model on the cell.
func (c *Cell) Place(m Model) bool {
	if !c.CanPlace(m) {
		return false
	}
	switch {
	case c.flooring != nil:
		return c.flooring.Place(m)
	case c.occupant != nil:
		if !c.occupant.(Surface).Place(m) {
			return false
		}
	default:
		c.fill(m)
	}
	c.touch()
	return true
}

// Remove takes the topmost model off the cell. Flooring is left in place.
// Taking a multi-cell model off releases every cell it covered.
func (c *Cell) Remove() (Model, bool) {
	r := c.root()
	if r.flooring != nil {
		return r.flooring.Remove()
	}
	if r.occupant == nil {
		return nil, false
	}
	if s, ok := r.occupant.(Surface); ok {
		if m, removed := s.Remove(); removed {
			r.touch()
			return m, true
		}
	}
	m := r.occupant
	r.occupant = nil
	r.release(m.Footprint())
	r.touch()
	return m, true
}

// release clears the origin pointer of the cells a footprint anchored at c covered.
func (c *Cell) release(size Size) {
	if size == Unit || c.grid == nil {
		return
	}
	for _, at := range size.Cover(c.coord) {
		if covered, ok := c.grid.cells[at]; ok && covered.origin == c {
			covered.origin = nil
		}
	}
}

// touch marks the owning grid as changed.
func (c *Cell) touch() {
	if c.grid != nil {
		c.grid.version++
	}
}

// fill attaches m directly. The slot must be empty.
func (c *Cell) fill(m Model) {
	if c.occupant != nil || c.origin != nil {
		panic("tilegrid: fill on occupied cell " + c.coord.String())
	}
	c.occupant = m
}

// expand marks c as covered by the model held at origin.
func (c *Cell) expand(origin *Cell) {
	if c.occupant != nil || c.origin != nil {
		panic("tilegrid: expand onto occupied cell " + c.coord.String())
	}
	c.origin = origin
}

// UpdateAppearanceFromNeighbors recomputes which neighbors share this cell's
// flooring kind and hands the result to the grid's appearance listener.
func (c *Cell) UpdateAppearanceFromNeighbors() {
	var mask NeighborMask
	if c.flooring != nil {
		for _, dir := range Directions {
			n := c.Neighbor(dir)
			if n != nil && n.flooring != nil && n.flooring.kind == c.flooring.kind {
				mask |= dir.Bit()
			}
		}
		c.flooring.mask = mask
	}
	if c.grid != nil && c.grid.appearance != nil {
		c.grid.appearance.AppearanceChanged(c, mask)
	}
}
