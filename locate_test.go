package cellsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellByID(t *testing.T) {
	nb := plainNotebook(3)
	require.NotNil(t, CellByID(nb, "c1"))
	assert.Equal(t, "c1", CellByID(nb, "c1").ID)
	assert.Nil(t, CellByID(nb, "missing"))

	assert.Equal(t, 2, CellIndexByID(nb, "c2"))
	assert.Equal(t, -1, CellIndexByID(nb, "missing"))
}

func TestCellByMarker(t *testing.T) {
	nb := NewNotebook("",
		codeCell("t", "%chat plot"),
		NewCell("m", KindMarkdown, MarkerFor(7)), // markdown cells never match
		codeCell("g", MarkerFor(7)+"\nimport matplotlib"),
	)

	got := CellByMarker(nb, 7)
	require.NotNil(t, got)
	assert.Equal(t, "g", got.ID)

	assert.Nil(t, CellByMarker(nb, 8), "no cell carries this count")
	assert.Nil(t, CellByMarker(nb, 0), "unset execution count never matches")
	assert.Nil(t, CellByMarker(nb, -1))
}

func TestCellByMarkerRequiresFirstLine(t *testing.T) {
	nb := NewNotebook("",
		codeCell("late", "import os\n"+MarkerFor(3)),
		codeCell("first", MarkerFor(3)+" extra trailing text\ncode"),
	)
	got := CellByMarker(nb, 3)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)
}

func TestMarkerFor(t *testing.T) {
	assert.Equal(t, "# Assistant Code for Cell [12]:", MarkerFor(12))
}
