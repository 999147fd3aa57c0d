// pkg/tilegrid/placement.go
package tilegrid

// footprintCells returns the cells covered by m anchored at c, or false if
// any covered coordinate lacks a cell or cannot host m.
func (g *Grid) footprintCells(c Coord, m Model) ([]*Cell, bool) {
	if m == nil {
		return nil, false
	}
	size := m.Footprint()
	single := size == Unit
	covered := size.Cover(c)
	cells := make([]*Cell, 0, len(covered))
	for _, at := range covered {
		cell, ok := g.cells[at]
		if !ok || !cell.canHost(m, single) {
			return nil, false
		}
		cells = append(cells, cell)
	}
	return cells, true
}

// CanPlaceAt reports whether PlaceAt(c, m) would succeed.
func (g *Grid) CanPlaceAt(c Coord, m Model) bool {
	_, ok := g.footprintCells(c, m)
	return ok
}

// GhostPlaceAt is the preview variant of PlaceAt: it validates and mutates nothing.
func (g *Grid) GhostPlaceAt(c Coord, m Model) bool {
	return g.CanPlaceAt(c, m)
}

// PlaceAt places m with its origin at c. The whole footprint is validated
// before anything is attached, so a rejected placement leaves the grid untouched.
func (g *Grid) PlaceAt(c Coord, m Model) bool {
	cells, ok := g.footprintCells(c, m)
	if !ok {
		return false
	}
	origin := cells[0]
	if len(cells) == 1 {
		return origin.Place(m)
	}
	origin.fill(m)
	for _, cell := range cells[1:] {
		cell.expand(origin)
	}
	g.version++
	return true
}

// RemoveAt removes the topmost model covering c. For multi-cell models every
// covered cell is released. Flooring stays; use RemoveFloorAt for that.
func (g *Grid) RemoveAt(c Coord) (Model, bool) {
	cell, ok := g.cells[c]
	if !ok {
		return nil, false
	}
	return cell.Remove()
}

// CanFloorAt reports whether FloorAt(c, kind) would succeed.
func (g *Grid) CanFloorAt(c Coord, kind FlooringKind) bool {
	cell, ok := g.cells[c]
	if !ok {
		return false
	}
	return cell.flooring == nil && cell.occupant == nil && cell.origin == nil && kind.AllowedOn(cell.typ)
}

// FloorAt lays flooring on the cell at c and refreshes the appearance of the
// cell and its four neighbors.
func (g *Grid) FloorAt(c Coord, kind FlooringKind) bool {
	if !g.CanFloorAt(c, kind) {
		return false
	}
	cell := g.cells[c]
	cell.flooring = &Flooring{kind: kind, cell: cell}
	g.version++
	g.refreshAround(cell)
	return true
}

// RemoveFloorAt removes an unoccupied flooring.
func (g *Grid) RemoveFloorAt(c Coord) bool {
	cell, ok := g.cells[c]
	if !ok || cell.flooring == nil || cell.flooring.occupant != nil {
		return false
	}
	cell.flooring.cell = nil
	cell.flooring = nil
	g.version++
	g.refreshAround(cell)
	return true
}

// refreshAround cascades the appearance update to cell and its direct neighbors only.
func (g *Grid) refreshAround(cell *Cell) {
	cell.UpdateAppearanceFromNeighbors()
	for _, dir := range Directions {
		if n := cell.Neighbor(dir); n != nil {
			n.UpdateAppearanceFromNeighbors()
		}
	}
}
