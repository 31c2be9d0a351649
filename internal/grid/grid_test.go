package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSkipsOverlappingRanges(t *testing.T) {
	g := New("Sheet")
	g.Merge(1, 1, 1, 3)
	g.Merge(1, 2, 2, 4) // overlaps, must be dropped
	g.Merge(3, 1, 3, 2)
	require.NoError(t, g.Flush())

	merges, err := g.File().GetMergeCells("Sheet")
	require.NoError(t, err)
	assert.Len(t, merges, 2)
}

func TestStyleCacheReusesIdenticalStyles(t *testing.T) {
	g := New("Sheet")
	st := Style{Bold: true, Size: 10, Borders: BAll}
	g.Set(1, 1, "a", st)
	g.Set(2, 1, "b", st)
	g.Set(3, 1, "c", Style{Size: 9})
	require.NoError(t, g.Flush())

	assert.Len(t, g.styles, 2)
}

func TestOutlineTouchesOnlyPerimeter(t *testing.T) {
	g := New("Sheet")
	g.Outline(1, 1, 3, 3, false)

	assert.Equal(t, BTop|BLeft, g.StyleAt(1, 1).Borders)
	assert.Equal(t, BTop, g.StyleAt(1, 2).Borders)
	assert.Equal(t, BBottom|BRight, g.StyleAt(3, 3).Borders)
	assert.Zero(t, g.StyleAt(2, 2).Borders)
}

func TestClearEdgesRemovesThinAndThick(t *testing.T) {
	g := New("Sheet")
	g.AddEdges(1, 1, 1, 1, BBottom, false)
	g.AddEdges(1, 1, 1, 1, BBottom, true)
	g.ClearEdges(1, 1, 1, 1, BBottom)

	st := g.StyleAt(1, 1)
	assert.Zero(t, st.Borders)
	assert.Zero(t, st.Thick)
}

func TestBorderListThickWins(t *testing.T) {
	borders := borderList(BBottom|BTop, BBottom)
	require.Len(t, borders, 2)
	assert.Equal(t, "top", borders[0].Type)
	assert.Equal(t, 1, borders[0].Style)
	assert.Equal(t, "bottom", borders[1].Type)
	assert.Equal(t, 2, borders[1].Style)
}
