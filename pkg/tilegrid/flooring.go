// pkg/tilegrid/flooring.go
package tilegrid

// FlooringKind names a flooring variety. Flooring kinds double as model kinds.
type FlooringKind string

const (
	Soil FlooringKind = "soil"
)

// NeighborMask has one bit per cardinal direction.
type NeighborMask uint8

const (
	MaskNorth NeighborMask = 1 << iota
	MaskEast
	MaskSouth
	MaskWest
)

// Bit returns the mask bit of a direction.
func (d Direction) Bit() NeighborMask {
	return NeighborMask(1) << uint(d)
}

// Has reports whether the bit for dir is set.
func (m NeighborMask) Has(dir Direction) bool {
	return m&dir.Bit() != 0
}

// String lists the set directions as initials, "-" when empty.
func (m NeighborMask) String() string {
	var b []byte
	for _, dir := range Directions {
		if m.Has(dir) {
			b = append(b, dir.String()[0])
		}
	}
	if len(b) == 0 {
		return "-"
	}
	return string(b)
}

// Flooring is a single-slot layer attached to a cell. It hosts at most one occupant.
type Flooring struct {
	kind     FlooringKind
	cell     *Cell
	occupant Model
	mask     NeighborMask
}

// AllowedOn reports whether a flooring of this kind may be laid on the cell type.
// Unnamed kinds are never allowed.
func (k FlooringKind) AllowedOn(t CellType) bool {
	return k != "" && t == CellGrass
}

func (f *Flooring) Kind() Kind                 { return Kind(f.kind) }
func (f *Flooring) FlooringKind() FlooringKind { return f.kind }
func (f *Flooring) Footprint() Size            { return Unit }
func (f *Flooring) Traversable() bool          { return f.Walkable() }
func (f *Flooring) Cell() *Cell                { return f.cell }

// Appearance is the mask of neighbors carrying the same flooring kind,
// as last computed by Cell.UpdateAppearanceFromNeighbors.
func (f *Flooring) Appearance() NeighborMask { return f.mask }

func (f *Flooring) Occupant() Model { return f.occupant }

func (f *Flooring) CanPlace(m Model) bool {
	if m == nil || m.Footprint() != Unit {
		return false
	}
	if f.occupant == nil {
		return true
	}
	if s, ok := f.occupant.(Surface); ok {
		return s.CanPlace(m)
	}
	return false
}

func (f *Flooring) GhostPlace(m Model) bool {
	return f.CanPlace(m)
}

func (f *Flooring) Place(m Model) bool {
	if !f.CanPlace(m) {
		return false
	}
	if f.occupant == nil {
		f.occupant = m
	} else if !f.occupant.(Surface).Place(m) {
		return false
	}
	f.touch()
	return true
}

// Remove takes off the topmost removable model above the flooring.
func (f *Flooring) Remove() (Model, bool) {
	if f.occupant == nil {
		return nil, false
	}
	if s, ok := f.occupant.(Surface); ok {
		if m, removed := s.Remove(); removed {
			f.touch()
			return m, true
		}
	}
	m := f.occupant
	f.occupant = nil
	f.touch()
	return m, true
}

func (f *Flooring) touch() {
	if f.cell != nil {
		f.cell.touch()
	}
}

func (f *Flooring) Walkable() bool {
	if f.occupant == nil {
		return true
	}
	if s, ok := f.occupant.(Surface); ok {
		return s.Walkable()
	}
	return f.occupant.Traversable()
}
