package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbicide/pkg/tilegrid"
)

func TestDescribe(t *testing.T) {
	lv := corridorLevel(t, 5)

	assert.Equal(t, []string{"(0,1) grass", "spawn west", "walkable: true"},
		lv.Describe(tilegrid.Coord{X: 0, Y: 1}))

	require.NoError(t, lv.Place(tilegrid.Coord{X: 1, Y: 0}, "boulder"))
	assert.Equal(t, []string{"(2,1) grass", "model: boulder 2x2", "covered from (1,0)", "walkable: false"},
		lv.Describe(tilegrid.Coord{X: 2, Y: 1}))

	require.NoError(t, lv.Floor(tilegrid.Coord{X: 4, Y: 0}, tilegrid.Soil))
	assert.Equal(t, []string{"(4,0) grass", "flooring: soil [-]", "walkable: true"},
		lv.Describe(tilegrid.Coord{X: 4, Y: 0}))

	assert.Equal(t, []string{"(9,9): no cell"}, lv.Describe(tilegrid.Coord{X: 9, Y: 9}))
}

func TestDescribeAgents(t *testing.T) {
	lv := corridorLevel(t, 5)
	lv.SpawnAgents()
	lines := lv.Describe(tilegrid.Coord{X: 0, Y: 1})
	assert.Equal(t, "agents: 2", lines[len(lines)-1])
}
