package tilegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceSingleCell(t *testing.T) {
	g := openGrid(t, 3, 3)
	before := g.Version()

	require.True(t, g.PlaceAt(Coord{1, 1}, wall()))
	cell, _ := g.Cell(Coord{1, 1})
	assert.True(t, cell.Occupied())
	assert.False(t, cell.Walkable())
	assert.True(t, cell.HasModelOfKind("structure"))
	assert.Greater(t, g.Version(), before)

	assert.False(t, g.PlaceAt(Coord{1, 1}, wall()), "second occupant")
}

func TestPlaceMultiCell(t *testing.T) {
	g := openGrid(t, 4, 4)
	m := block(2, 2)

	require.True(t, g.PlaceAt(Coord{1, 1}, m))
	origin, _ := g.Cell(Coord{1, 1})
	assert.Same(t, m, origin.Model())
	for _, c := range []Coord{{2, 1}, {1, 2}, {2, 2}} {
		cell, _ := g.Cell(c)
		assert.Same(t, origin, cell.Origin(), c.String())
		assert.True(t, cell.Occupied(), c.String())
		assert.False(t, cell.Walkable(), c.String())
		assert.True(t, cell.HasModelOfKind("structure"), c.String())
		assert.Same(t, m, cell.Model(), c.String())
	}
	free, _ := g.Cell(Coord{3, 3})
	assert.False(t, free.Occupied())
}

func TestFailedPlacementLeavesGridUnchanged(t *testing.T) {
	g := openGrid(t, 4, 4)
	require.True(t, g.PlaceAt(Coord{2, 2}, wall()))
	require.True(t, g.FloorAt(Coord{0, 0}, Soil))

	before := snapshot(g)
	version := g.Version()

	// overlaps the wall at (2,2)
	assert.False(t, g.PlaceAt(Coord{1, 1}, block(2, 2)))
	// runs off the grid
	assert.False(t, g.PlaceAt(Coord{3, 3}, block(2, 1)))
	// multi-cell footprints cannot sit on flooring
	assert.False(t, g.PlaceAt(Coord{0, 0}, block(2, 1)))
	assert.False(t, g.PlaceAt(Coord{9, 9}, wall()))
	assert.False(t, g.PlaceAt(Coord{0, 1}, nil))

	assert.Equal(t, before, snapshot(g))
	assert.Equal(t, version, g.Version())
}

func TestPlaceRequiresGrass(t *testing.T) {
	g := NewGrid()
	_, _ = g.PutCell(Coord{0, 0}, CellWater)
	_, _ = g.PutCell(Coord{1, 0}, CellShore)
	g.MarkGenerated()

	assert.False(t, g.PlaceAt(Coord{0, 0}, wall()))
	assert.False(t, g.PlaceAt(Coord{1, 0}, wall()))
}

func TestGhostPlaceDoesNotMutate(t *testing.T) {
	g := openGrid(t, 2, 2)
	before := snapshot(g)

	assert.True(t, g.GhostPlaceAt(Coord{0, 0}, block(2, 2)))
	assert.False(t, g.GhostPlaceAt(Coord{1, 1}, block(2, 2)))
	assert.Equal(t, before, snapshot(g))

	cell, _ := g.Cell(Coord{0, 0})
	assert.True(t, cell.GhostPlace(wall()))
	assert.False(t, cell.Occupied())
}

func TestRemoveMultiCell(t *testing.T) {
	g := openGrid(t, 3, 3)
	m := block(2, 2)
	require.True(t, g.PlaceAt(Coord{0, 0}, m))

	got, ok := g.RemoveAt(Coord{1, 1})
	require.True(t, ok)
	assert.Same(t, m, got)
	for _, c := range g.Cells() {
		assert.False(t, c.Occupied(), c.Coord().String())
		assert.Nil(t, c.Origin())
	}

	_, ok = g.RemoveAt(Coord{1, 1})
	assert.False(t, ok)
}

func TestCellRemoveReleasesFootprint(t *testing.T) {
	g := openGrid(t, 2, 2)
	require.True(t, g.PlaceAt(Coord{0, 0}, block(2, 2)))

	origin, _ := g.Cell(Coord{0, 0})
	m, ok := origin.Remove()
	require.True(t, ok)
	assert.Equal(t, Size{W: 2, H: 2}, m.Footprint())

	covered, _ := g.Cell(Coord{1, 1})
	assert.False(t, covered.Occupied())
	assert.Nil(t, covered.Origin())
	assert.True(t, covered.CanPlace(wall()))
	assert.True(t, g.PlaceAt(Coord{1, 1}, wall()))
}

func TestCellRemoveFromCoveredCell(t *testing.T) {
	g := openGrid(t, 2, 2)
	require.True(t, g.PlaceAt(Coord{0, 0}, block(2, 2)))

	covered, _ := g.Cell(Coord{1, 0})
	_, ok := covered.Remove()
	require.True(t, ok)
	for _, c := range g.Cells() {
		assert.False(t, c.Occupied(), c.Coord().String())
	}
	assert.True(t, g.PlaceAt(Coord{0, 0}, block(2, 2)))
}

func TestCoveredCellWalksLikeOrigin(t *testing.T) {
	g := openGrid(t, 2, 1)
	d := &deck{size: Size{W: 2, H: 1}}
	require.True(t, g.PlaceAt(Coord{0, 0}, d))

	origin, _ := g.Cell(Coord{0, 0})
	covered, _ := g.Cell(Coord{1, 0})
	assert.True(t, origin.Walkable())
	assert.True(t, covered.Walkable())

	require.True(t, origin.Place(wall()))
	assert.False(t, origin.Walkable())
	assert.False(t, covered.Walkable())
}

func TestFloorAt(t *testing.T) {
	g := openGrid(t, 3, 3)
	rec := newAppearanceRecorder()
	g.SetAppearanceListener(rec)

	require.True(t, g.FloorAt(Coord{1, 1}, Soil))
	cell, _ := g.Cell(Coord{1, 1})
	require.NotNil(t, cell.Flooring())
	assert.Equal(t, Soil, cell.Flooring().FlooringKind())
	assert.True(t, cell.Walkable())
	assert.False(t, cell.Occupied())

	// target plus its four neighbors, nothing further
	assert.Len(t, rec.calls, 5)
	assert.NotContains(t, rec.calls, Coord{0, 0})

	assert.False(t, g.FloorAt(Coord{1, 1}, Soil), "already floored")
}

func TestFloorAppearanceMask(t *testing.T) {
	g := openGrid(t, 3, 3)
	rec := newAppearanceRecorder()
	g.SetAppearanceListener(rec)

	require.True(t, g.FloorAt(Coord{1, 1}, Soil))
	require.True(t, g.FloorAt(Coord{1, 2}, Soil))
	require.True(t, g.FloorAt(Coord{2, 1}, Soil))

	center, _ := g.Cell(Coord{1, 1})
	assert.Equal(t, MaskNorth|MaskEast, center.Flooring().Appearance())
	assert.Equal(t, MaskNorth|MaskEast, rec.calls[Coord{1, 1}])
	north, _ := g.Cell(Coord{1, 2})
	assert.Equal(t, MaskSouth, north.Flooring().Appearance())

	require.True(t, g.RemoveFloorAt(Coord{1, 2}))
	assert.Equal(t, MaskEast, center.Flooring().Appearance())
	assert.Equal(t, NeighborMask(0), rec.calls[Coord{1, 2}])
}

func TestFloorRejectsOccupiedAndNonGrass(t *testing.T) {
	g := NewGrid()
	_, _ = g.PutCell(Coord{0, 0}, CellGrass)
	_, _ = g.PutCell(Coord{1, 0}, CellShore)
	_, _ = g.PutCell(Coord{2, 0}, CellWater)
	g.MarkGenerated()
	require.True(t, g.PlaceAt(Coord{0, 0}, wall()))
	version := g.Version()

	assert.False(t, g.FloorAt(Coord{0, 0}, Soil))
	assert.False(t, g.FloorAt(Coord{1, 0}, Soil))
	assert.False(t, g.FloorAt(Coord{2, 0}, Soil))
	assert.False(t, g.FloorAt(Coord{3, 0}, Soil))
	assert.Equal(t, version, g.Version())
}

func TestFloorRejectsUnnamedKind(t *testing.T) {
	g := openGrid(t, 1, 1)
	assert.False(t, g.CanFloorAt(Coord{0, 0}, ""))
	assert.False(t, g.FloorAt(Coord{0, 0}, ""))
	cell, _ := g.Cell(Coord{0, 0})
	assert.Nil(t, cell.Flooring())
}

func TestOccupantDelegatedToFlooring(t *testing.T) {
	g := openGrid(t, 2, 1)
	require.True(t, g.FloorAt(Coord{0, 0}, Soil))

	plant := &Static{Name: "sunflower", Of: "defender", Size: Unit, Passable: false}
	require.True(t, g.PlaceAt(Coord{0, 0}, plant))

	cell, _ := g.Cell(Coord{0, 0})
	assert.Same(t, plant, cell.Flooring().Occupant())
	assert.Nil(t, cell.occupant, "cell slot stays empty")
	assert.True(t, cell.Occupied())
	assert.False(t, cell.Walkable())
	assert.True(t, cell.HasModelOfKind(Kind(Soil)))
	assert.True(t, cell.HasModelOfKind("defender"))
	assert.False(t, cell.HasModelOfKind("structure"))

	assert.False(t, g.PlaceAt(Coord{0, 0}, wall()), "flooring slot taken")
	assert.False(t, g.RemoveFloorAt(Coord{0, 0}), "flooring still occupied")

	got, ok := g.RemoveAt(Coord{0, 0})
	require.True(t, ok)
	assert.Same(t, plant, got)
	assert.NotNil(t, cell.Flooring())
	assert.True(t, cell.Walkable())
}

func TestHasModelOfKindWalksWholeChain(t *testing.T) {
	g := openGrid(t, 1, 1)
	require.True(t, g.FloorAt(Coord{0, 0}, Soil))
	deck := &platform{}
	require.True(t, g.PlaceAt(Coord{0, 0}, deck))
	require.True(t, g.PlaceAt(Coord{0, 0}, wall()))

	cell, _ := g.Cell(Coord{0, 0})
	assert.True(t, cell.HasModelOfKind("platform"))
	assert.True(t, cell.HasModelOfKind("structure"))
	assert.False(t, cell.Walkable())

	found, ok := FindModel[*platform](cell)
	require.True(t, ok)
	assert.Same(t, deck, found)
	_, ok = FindModel[*Flooring](cell)
	assert.True(t, ok)

	// removal peels the topmost layer first
	got, ok := g.RemoveAt(Coord{0, 0})
	require.True(t, ok)
	assert.Equal(t, Kind("structure"), got.Kind())
	assert.True(t, cell.Walkable())
	got, ok = g.RemoveAt(Coord{0, 0})
	require.True(t, ok)
	assert.Same(t, deck, got)
}

func TestTraversableOccupant(t *testing.T) {
	g := openGrid(t, 1, 1)
	hole := &Static{Name: "hole", Of: "hazard", Size: Unit, Passable: true}
	require.True(t, g.PlaceAt(Coord{0, 0}, hole))
	cell, _ := g.Cell(Coord{0, 0})
	assert.True(t, cell.Walkable())
}

func TestFillPanicsOnOccupiedCell(t *testing.T) {
	g := openGrid(t, 1, 1)
	cell, _ := g.Cell(Coord{0, 0})
	cell.fill(wall())
	assert.Panics(t, func() { cell.fill(wall()) })
	assert.Panics(t, func() { cell.expand(cell) })
}

func TestUpdateAppearanceWithoutListener(t *testing.T) {
	g := openGrid(t, 2, 1)
	require.True(t, g.FloorAt(Coord{0, 0}, Soil))
	cell, _ := g.Cell(Coord{1, 0})
	assert.NotPanics(t, cell.UpdateAppearanceFromNeighbors)
}

func TestNeighborMaskString(t *testing.T) {
	assert.Equal(t, "-", NeighborMask(0).String())
	assert.Equal(t, "NW", (MaskNorth | MaskWest).String())
	assert.Equal(t, "NESW", (MaskNorth | MaskEast | MaskSouth | MaskWest).String())
}
