package cellsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectCellByIDStepsDown(t *testing.T) {
	nb := plainNotebook(4)
	SelectCellByID(nb, "c3")
	assert.Equal(t, 3, nb.ActiveIndex())
	assert.Equal(t,
		[]CommandKind{CmdSelectDown, CmdSelectDown, CmdSelectDown},
		commandKinds(nb.DrainCommands()))
}

func TestSelectCellByIDStepsUp(t *testing.T) {
	nb := plainNotebook(4)
	nb.SetActiveIndex(3)
	SelectCellByID(nb, "c1")
	assert.Equal(t, 1, nb.ActiveIndex())
	assert.Equal(t,
		[]CommandKind{CmdSelectUp, CmdSelectUp},
		commandKinds(nb.DrainCommands()))
}

func TestSelectCellByIDSkipsHiddenWithoutCommands(t *testing.T) {
	nb := plainNotebook(4)
	nb.Cells()[1].InputHidden = true
	nb.Cells()[2].InputHidden = true

	SelectCellByID(nb, "c3")
	assert.Equal(t, 3, nb.ActiveIndex())
	// c0 is visible (one real step); the cursor passes over c1 and c2 with no
	// navigation command.
	assert.Equal(t, []CommandKind{CmdSelectDown}, commandKinds(nb.DrainCommands()))
}

func TestSelectCellByIDNoops(t *testing.T) {
	nb := plainNotebook(3)

	SelectCellByID(nb, "missing")
	assert.Equal(t, 0, nb.ActiveIndex())
	assert.Empty(t, nb.DrainCommands())

	SelectCellByID(nb, "c0")
	assert.Equal(t, 0, nb.ActiveIndex())
	assert.Empty(t, nb.DrainCommands())
}
