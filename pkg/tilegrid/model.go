// pkg/tilegrid/model.go
package tilegrid

// Kind identifies what a placed model is ("structure", "nexus", "soil"...).
type Kind string

// Model is anything that can occupy a cell.
type Model interface {
	Kind() Kind
	// Footprint is the number of cells the model covers, anchored at its origin.
	Footprint() Size
	// Traversable reports whether agents may walk through the model.
	Traversable() bool
}

// Surface is implemented by everything that can host a further occupant:
// cells, floorings, and models that other models stand on.
type Surface interface {
	CanPlace(m Model) bool
	Place(m Model) bool
	Remove() (Model, bool)
	// GhostPlace reports whether Place would succeed, without mutating anything.
	GhostPlace(m Model) bool
	Occupant() Model
	Walkable() bool
}

// Static is a plain model with fixed properties.
type Static struct {
	Name     string
	Of       Kind
	Size     Size
	Passable bool
}

func (s *Static) Kind() Kind { return s.Of }

func (s *Static) Footprint() Size {
	if s.Size.W < 1 || s.Size.H < 1 {
		return Unit
	}
	return s.Size
}

func (s *Static) Traversable() bool { return s.Passable }

// ModelFactory builds models by their tile-map object name.
type ModelFactory interface {
	NewModel(name string) (Model, error)
}

// ModelFactoryFunc adapts a function to ModelFactory.
type ModelFactoryFunc func(name string) (Model, error)

func (f ModelFactoryFunc) NewModel(name string) (Model, error) { return f(name) }

// walkChain visits each model of the delegation chain starting at s,
// stopping when visit returns true. Occupants that are themselves surfaces
// continue the chain.
func walkChain(s Surface, visit func(Model) bool) bool {
	for s != nil {
		m := s.Occupant()
		if m == nil {
			return false
		}
		if visit(m) {
			return true
		}
		next, ok := m.(Surface)
		if !ok {
			return false
		}
		s = next
	}
	return false
}

// FindModel returns the first model of type T found in the cell's delegation chain.
func FindModel[T Model](c *Cell) (T, bool) {
	var found T
	if c == nil {
		return found, false
	}
	ok := walkChain(c.root(), func(m Model) bool {
		t, match := m.(T)
		if match {
			found = t
		}
		return match
	})
	return found, ok
}
