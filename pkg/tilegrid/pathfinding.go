// pkg/tilegrid/pathfinding.go
package tilegrid

import (
	"container/heap"

	"github.com/zyedidia/generic/mapset"
)

// Pathfinder runs A* over the walkable cells of a grid.
type Pathfinder struct {
	grid          *Grid
	cache         *PathCache
	maxIterations int
}

// PathOption configures a Pathfinder.
type PathOption func(*Pathfinder)

// WithMaxIterations caps the number of node expansions per search. 0 means unbounded.
func WithMaxIterations(n int) PathOption {
	return func(p *Pathfinder) { p.maxIterations = n }
}

// WithPathCache replaces the default next-step cache. nil disables caching.
func WithPathCache(c *PathCache) PathOption {
	return func(p *Pathfinder) { p.cache = c }
}

// NewPathfinder creates a pathfinder bound to g.
func NewPathfinder(g *Grid, opts ...PathOption) *Pathfinder {
	p := &Pathfinder{grid: g, cache: NewPathCache(DefaultPathCacheSize)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cache returns the next-step cache, nil if disabled.
func (p *Pathfinder) Cache() *PathCache { return p.cache }

// FindPath returns the shortest path from start to goal, both included.
// ok is false when the goal is unreachable or either end is off the grid.
func (p *Pathfinder) FindPath(start, goal Coord) ([]Coord, bool) {
	node, ok := p.search(start, goal)
	if !ok {
		return nil, false
	}
	return reconstructPath(node), true
}

// PathLength returns the number of cells on the shortest path, start and goal included.
func (p *Pathfinder) PathLength(start, goal Coord) (int, bool) {
	node, ok := p.search(start, goal)
	if !ok {
		return 0, false
	}
	return node.g + 1, true
}

// NextStepToward returns the cell to move to from start on the shortest
// path to goal. When start == goal it returns start.
func (p *Pathfinder) NextStepToward(start, goal Coord) (Coord, bool) {
	version := p.grid.Version()
	if p.cache != nil {
		if next, ok, hit := p.cache.lookup(version, start, goal); hit {
			return next, ok
		}
	}
	next, ok := p.nextStep(start, goal)
	if p.cache != nil {
		p.cache.store(version, start, goal, next, ok)
	}
	return next, ok
}

func (p *Pathfinder) nextStep(start, goal Coord) (Coord, bool) {
	path, ok := p.FindPath(start, goal)
	if !ok {
		return Coord{}, false
	}
	if len(path) == 1 {
		return path[0], true
	}
	return path[1], true
}

// expandable reports whether the search may pass through cell.
// Edge and water cells and anything unwalkable are closed.
func expandable(cell *Cell) bool {
	return cell.typ == CellGrass && cell.Walkable()
}

// search is A* with a Manhattan heuristic and unit edge cost. The goal is
// recognised as soon as it is generated as a neighbor and is exempt from the
// walkability filter, so a search can end next to an unwalkable target.
// Nodes with equal f are expanded in insertion order.
func (p *Pathfinder) search(start, goal Coord) (*pathNode, bool) {
	startCell, ok := p.grid.cells[start]
	if !ok {
		return nil, false
	}
	if _, ok := p.grid.cells[goal]; !ok {
		return nil, false
	}
	if start == goal {
		return &pathNode{coord: start}, true
	}

	var seq uint64
	open := &nodeHeap{}
	heap.Init(open)
	openByCoord := make(map[Coord]*pathNode, 64)
	closed := mapset.New[Coord]()

	first := &pathNode{coord: start, cell: startCell, h: start.Manhattan(goal)}
	first.f = first.h
	heap.Push(open, first)
	openByCoord[start] = first

	for iterations := 0; open.Len() > 0; iterations++ {
		if p.maxIterations > 0 && iterations >= p.maxIterations {
			return nil, false
		}
		current := heap.Pop(open).(*pathNode)
		delete(openByCoord, current.coord)
		closed.Put(current.coord)

		for _, dir := range Directions {
			n := current.cell.Neighbor(dir)
			if n == nil {
				continue
			}
			if n.coord == goal {
				return &pathNode{coord: goal, parent: current, g: current.g + 1}, true
			}
			if closed.Has(n.coord) || !expandable(n) {
				continue
			}
			g := current.g + 1
			if existing, queued := openByCoord[n.coord]; queued {
				if g < existing.g {
					existing.g = g
					existing.f = g + existing.h
					existing.parent = current
					heap.Fix(open, existing.index)
				}
				continue
			}
			seq++
			node := &pathNode{coord: n.coord, cell: n, parent: current, g: g, h: n.coord.Manhattan(goal), seq: seq}
			node.f = node.g + node.h
			heap.Push(open, node)
			openByCoord[n.coord] = node
		}
	}
	return nil, false
}

type pathNode struct {
	coord  Coord
	cell   *Cell
	parent *pathNode
	g, h   int
	f      int
	seq    uint64 // order of insertion into the open set
	index  int    // heap index
}

// nodeHeap is the open set: min f, then earliest insertion.
type nodeHeap []*pathNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)   { n := x.(*pathNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

func reconstructPath(node *pathNode) []Coord {
	path := make([]Coord, 0, node.g+1)
	for n := node; n != nil; n = n.parent {
		path = append(path, n.coord)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
