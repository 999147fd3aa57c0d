// internal/defs/types.go
package defs

import "herbicide/pkg/tilegrid"

// Category groups models the way the level editor does.
type Category string

const (
	CategoryStructure Category = "STRUCTURE"
	CategoryDefender  Category = "DEFENDER"
	CategoryHazard    Category = "HAZARD"
	CategoryNexus     Category = "NEXUS"
)

// ModelDefinition holds the static data for one placeable model.
type ModelDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Traversable bool     `json:"traversable"`
	// Hosts marks models other 1×1 models can be placed on.
	Hosts   bool    `json:"hosts,omitempty"`
	Visuals Visuals `json:"visuals"`
}

// Visuals holds the presentation hints used by the viewer.
type Visuals struct {
	Color string `json:"color"`
	Glyph string `json:"glyph,omitempty"`
}

// Footprint returns the definition's size, at least 1×1.
func (d ModelDefinition) Footprint() tilegrid.Size {
	s := tilegrid.Size{W: d.Width, H: d.Height}
	if s.W < 1 {
		s.W = 1
	}
	if s.H < 1 {
		s.H = 1
	}
	return s
}

// Kind is the grid kind of models built from this definition.
func (d ModelDefinition) Kind() tilegrid.Kind {
	return tilegrid.Kind(d.ID)
}

// Model is a placed instance of a definition.
type Model struct {
	Def *ModelDefinition
}

func (m *Model) Kind() tilegrid.Kind      { return m.Def.Kind() }
func (m *Model) Footprint() tilegrid.Size { return m.Def.Footprint() }
func (m *Model) Traversable() bool        { return m.Def.Traversable }

// Glyph is the single character the terminal dump uses; the id's first letter by default.
func (m *Model) Glyph() string {
	if m.Def.Visuals.Glyph != "" {
		return m.Def.Visuals.Glyph
	}
	if m.Def.ID == "" {
		return "?"
	}
	return m.Def.ID[:1]
}

// Hex is the "#rrggbb" color hint, possibly empty.
func (m *Model) Hex() string { return m.Def.Visuals.Color }

// Host is a model that carries one further 1×1 occupant (a planter, a raft...).
type Host struct {
	Model
	top tilegrid.Model
}

func (h *Host) Occupant() tilegrid.Model { return h.top }

func (h *Host) CanPlace(m tilegrid.Model) bool {
	if m == nil || m.Footprint() != tilegrid.Unit {
		return false
	}
	if h.top == nil {
		return true
	}
	if s, ok := h.top.(tilegrid.Surface); ok {
		return s.CanPlace(m)
	}
	return false
}

func (h *Host) GhostPlace(m tilegrid.Model) bool { return h.CanPlace(m) }

func (h *Host) Place(m tilegrid.Model) bool {
	if !h.CanPlace(m) {
		return false
	}
	if h.top == nil {
		h.top = m
		return true
	}
	return h.top.(tilegrid.Surface).Place(m)
}

func (h *Host) Remove() (tilegrid.Model, bool) {
	if h.top == nil {
		return nil, false
	}
	if s, ok := h.top.(tilegrid.Surface); ok {
		if m, removed := s.Remove(); removed {
			return m, true
		}
	}
	m := h.top
	h.top = nil
	return m, true
}

func (h *Host) Walkable() bool {
	if !h.Def.Traversable {
		return false
	}
	if h.top == nil {
		return true
	}
	if s, ok := h.top.(tilegrid.Surface); ok {
		return s.Walkable()
	}
	return h.top.Traversable()
}

// Traversable of a host depends on what stands on it.
func (h *Host) Traversable() bool { return h.Walkable() }
