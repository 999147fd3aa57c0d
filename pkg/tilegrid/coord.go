// pkg/tilegrid/coord.go
package tilegrid

import "fmt"

// Coord is an integer cell coordinate: X is the column, Y the row (growing north).
type Coord struct {
	X, Y int
}

// Add возвращает сумму двух координат
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Manhattan returns the 4-connected distance between two coordinates.
func (c Coord) Manhattan(to Coord) int {
	return abs(c.X-to.X) + abs(c.Y-to.Y)
}

// Step returns the coordinate one cell away in the given direction.
func (c Coord) Step(dir Direction) Coord {
	return c.Add(dir.Delta())
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the four cardinal directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in expansion order.
var Directions = [4]Direction{North, East, South, West}

// Delta returns the coordinate offset for the direction. North points to +Y.
func (d Direction) Delta() Coord {
	switch d {
	case North:
		return Coord{X: 0, Y: 1}
	case East:
		return Coord{X: 1, Y: 0}
	case South:
		return Coord{X: 0, Y: -1}
	case West:
		return Coord{X: -1, Y: 0}
	default:
		return Coord{}
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Size is a footprint measured in cells.
type Size struct {
	W, H int
}

// Unit is the 1×1 footprint.
var Unit = Size{W: 1, H: 1}

// Cover returns every coordinate covered by a footprint anchored at origin,
// extending toward +X and +Y. Origin comes first.
func (s Size) Cover(origin Coord) []Coord {
	w, h := s.W, s.H
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	covered := make([]Coord, 0, w*h)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			covered = append(covered, Coord{X: origin.X + dx, Y: origin.Y + dy})
		}
	}
	return covered
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
