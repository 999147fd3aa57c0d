// internal/app/describe.go
package app

import (
	"fmt"
	"strings"

	"herbicide/pkg/tilegrid"
)

// Describe returns human-readable lines about the cell at c, top of the
// occupant chain last. The viewer's info panel shows them as is.
func (lv *Level) Describe(c tilegrid.Coord) []string {
	cell, ok := lv.Grid.Cell(c)
	if !ok {
		return []string{fmt.Sprintf("%s: no cell", c)}
	}

	head := fmt.Sprintf("%s %s", c, cell.Type())
	if cell.IsEdge() {
		head += " (edge)"
	}
	lines := []string{head}

	for _, m := range lv.Grid.SpawnMarkers() {
		if m.Coord == c {
			lines = append(lines, "spawn "+m.Name)
		}
	}
	for _, m := range lv.Grid.GoalMarkers() {
		if m.Coord == c {
			lines = append(lines, "goal "+m.Name)
		}
	}

	if f := cell.Flooring(); f != nil {
		lines = append(lines, fmt.Sprintf("flooring: %s [%s]", f.FlooringKind(), f.Appearance()))
	}

	var chain []string
	for m := cell.Model(); m != nil; {
		size := m.Footprint()
		chain = append(chain, fmt.Sprintf("%s %dx%d", m.Kind(), size.W, size.H))
		s, ok := m.(tilegrid.Surface)
		if !ok {
			break
		}
		m = s.Occupant()
	}
	if len(chain) > 0 {
		lines = append(lines, "model: "+strings.Join(chain, " > "))
	}
	if origin := cell.Origin(); origin != nil {
		lines = append(lines, "covered from "+origin.Coord().String())
	}

	lines = append(lines, fmt.Sprintf("walkable: %t", cell.Walkable()))
	if n := len(lv.Grid.AgentsAt(c)); n > 0 {
		lines = append(lines, fmt.Sprintf("agents: %d", n))
	}
	return lines
}
