// pkg/tilegrid/grid.go
package tilegrid

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// AgentID identifies a mobile agent tracked by the grid.
type AgentID uint64

// Marker is a spawn or goal point read from the tile map.
type Marker struct {
	Coord   Coord
	Name    string
	Payload string
}

// AppearanceListener receives appearance updates for cells whose
// flooring neighborhood changed.
type AppearanceListener interface {
	AppearanceChanged(c *Cell, mask NeighborMask)
}

// Neighbors holds the four optional neighbors of a coordinate.
type Neighbors struct {
	North, East, South, West *Cell
}

// Get returns the neighbor in the given direction, nil when absent.
func (n Neighbors) Get(dir Direction) *Cell {
	switch dir {
	case North:
		return n.North
	case East:
		return n.East
	case South:
		return n.South
	case West:
		return n.West
	default:
		return nil
	}
}

// Grid owns every cell of a level and mediates all placement.
// It is not safe for concurrent use.
type Grid struct {
	cells map[Coord]*Cell
	// edges keeps insertion order; ties in NearestEdgeCell go to the earliest.
	edges   []*Cell
	edgeSet mapset.Set[Coord]
	grass   mapset.Set[Coord]

	agents map[AgentID]Coord

	spawns []Marker
	goals  []Marker

	appearance AppearanceListener

	min, max  Coord
	version   uint64
	generated bool
}

// NewGrid создаёт пустую сетку
func NewGrid() *Grid {
	return &Grid{
		cells:   make(map[Coord]*Cell),
		edgeSet: mapset.New[Coord](),
		grass:   mapset.New[Coord](),
		agents:  make(map[AgentID]Coord),
	}
}

// SetAppearanceListener registers the presentation collaborator. nil disables it.
func (g *Grid) SetAppearanceListener(l AppearanceListener) {
	g.appearance = l
}

// PutCell creates the cell at c, or retypes it when it already exists.
// New cells get their neighbor links resolved, and so do their existing neighbors.
func (g *Grid) PutCell(c Coord, t CellType) (*Cell, error) {
	if g.generated {
		return nil, ErrGridSealed
	}
	cell, exists := g.cells[c]
	if !exists {
		cell = &Cell{coord: c, typ: t, grid: g}
		if len(g.cells) == 0 {
			g.min, g.max = c, c
		} else {
			g.min = Coord{X: min(g.min.X, c.X), Y: min(g.min.Y, c.Y)}
			g.max = Coord{X: max(g.max.X, c.X), Y: max(g.max.Y, c.Y)}
		}
		g.cells[c] = cell
		g.linkNeighbors(cell)
	} else {
		if cell.typ == t {
			return cell, nil
		}
		g.untype(cell)
		cell.typ = t
	}
	switch t {
	case CellGrass:
		g.grass.Put(c)
	case CellShore:
		g.edgeSet.Put(c)
		g.edges = append(g.edges, cell)
	}
	g.version++
	return cell, nil
}

func (g *Grid) untype(cell *Cell) {
	switch cell.typ {
	case CellGrass:
		g.grass.Remove(cell.coord)
	case CellShore:
		g.edgeSet.Remove(cell.coord)
		for i, e := range g.edges {
			if e == cell {
				g.edges = append(g.edges[:i], g.edges[i+1:]...)
				break
			}
		}
	}
}

func (g *Grid) linkNeighbors(cell *Cell) {
	for _, dir := range Directions {
		n := g.cells[cell.coord.Step(dir)]
		cell.setNeighbor(dir, n)
		if n != nil {
			n.setNeighbor(dir.Opposite(), cell)
		}
	}
}

// MarkGenerated seals the grid. Only the first call has an effect.
func (g *Grid) MarkGenerated() {
	g.generated = true
}

// Generated reports whether generation completed.
func (g *Grid) Generated() bool { return g.generated }

// Version changes after every successful mutation of cells, occupants or flooring.
func (g *Grid) Version() uint64 { return g.version }

// Cell returns the cell at c.
func (g *Grid) Cell(c Coord) (*Cell, bool) {
	cell, ok := g.cells[c]
	return cell, ok
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Bounds returns the smallest and largest coordinates holding a cell.
func (g *Grid) Bounds() (Coord, Coord) { return g.min, g.max }

// Cells returns every cell ordered by Y, then X.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, 0, len(g.cells))
	for _, c := range g.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].coord, out[j].coord
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// NeighborsOf returns the cells at the four adjacent coordinates.
// Missing neighbors, and coordinates off the grid, yield nil fields.
func (g *Grid) NeighborsOf(c Coord) Neighbors {
	cell, ok := g.cells[c]
	if !ok {
		return Neighbors{}
	}
	return Neighbors{North: cell.North, East: cell.East, South: cell.South, West: cell.West}
}

// IsEdge reports whether c is an edge cell.
func (g *Grid) IsEdge(c Coord) bool { return g.edgeSet.Has(c) }

// IsGrass reports whether c is a grass cell.
func (g *Grid) IsGrass(c Coord) bool { return g.grass.Has(c) }

// EdgeCells returns the edge cells in insertion order.
func (g *Grid) EdgeCells() []*Cell {
	out := make([]*Cell, len(g.edges))
	copy(out, g.edges)
	return out
}

// GrassCount returns the number of grass cells.
func (g *Grid) GrassCount() int { return g.grass.Size() }

// GrassCells returns the grass cells ordered by Y, then X.
func (g *Grid) GrassCells() []*Cell {
	var out []*Cell
	for _, c := range g.Cells() {
		if g.grass.Has(c.coord) {
			out = append(out, c)
		}
	}
	return out
}

// NearestEdgeCell returns the edge cell closest to c by Manhattan distance.
// Ties go to the edge cell created first.
func (g *Grid) NearestEdgeCell(c Coord) (Coord, bool) {
	var (
		best     Coord
		bestDist = -1
	)
	for _, e := range g.edges {
		d := e.coord.Manhattan(c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = e.coord, d
		}
	}
	return best, bestDist >= 0
}

// SpawnMarkers returns the spawn points in tile-map order.
func (g *Grid) SpawnMarkers() []Marker { return append([]Marker(nil), g.spawns...) }

// GoalMarkers returns the goal points in tile-map order.
func (g *Grid) GoalMarkers() []Marker { return append([]Marker(nil), g.goals...) }

// AddSpawnMarker registers a spawn point on an existing cell.
func (g *Grid) AddSpawnMarker(m Marker) error {
	if _, ok := g.cells[m.Coord]; !ok {
		return fmt.Errorf("spawn %q at %s: %w", m.Name, m.Coord, ErrMissingCell)
	}
	g.spawns = append(g.spawns, m)
	return nil
}

// AddGoalMarker registers a goal point on an existing cell.
func (g *Grid) AddGoalMarker(m Marker) error {
	if _, ok := g.cells[m.Coord]; !ok {
		return fmt.Errorf("goal %q at %s: %w", m.Name, m.Coord, ErrMissingCell)
	}
	g.goals = append(g.goals, m)
	return nil
}

// TrackAgent starts tracking an agent standing at c.
func (g *Grid) TrackAgent(id AgentID, c Coord) bool {
	if _, ok := g.cells[c]; !ok {
		return false
	}
	if _, exists := g.agents[id]; exists {
		return false
	}
	g.agents[id] = c
	return true
}

// MoveAgent updates the cell of a tracked agent.
func (g *Grid) MoveAgent(id AgentID, c Coord) bool {
	if _, ok := g.agents[id]; !ok {
		return false
	}
	if _, ok := g.cells[c]; !ok {
		return false
	}
	g.agents[id] = c
	return true
}

// UntrackAgent forgets an agent.
func (g *Grid) UntrackAgent(id AgentID) {
	delete(g.agents, id)
}

// AgentCell returns where an agent stands.
func (g *Grid) AgentCell(id AgentID) (Coord, bool) {
	c, ok := g.agents[id]
	return c, ok
}

// AgentsAt returns the agents standing at c, sorted by id.
func (g *Grid) AgentsAt(c Coord) []AgentID {
	var ids []AgentID
	for id, at := range g.agents {
		if at == c {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AgentCount returns the number of tracked agents.
func (g *Grid) AgentCount() int { return len(g.agents) }
