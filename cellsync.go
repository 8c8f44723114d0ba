// Package cellsync keeps assistant trigger cells and their generated answer
// cells linked across edits, re-execution, and notebook redistribution. The
// orchestration core is a state machine over an in-memory notebook mirror:
// execution lifecycle events go in, host commands come out.
package cellsync

// Notebook mirrors the host notebook document: an ordered cell list, the
// single active-cell cursor, and the multi-selection set. Every mutating
// primitive both applies to the mirror and records a Command, so one handler
// run maps to a replayable command batch for the host.
type Notebook struct {
	// Path is the source .ipynb path, empty for unsaved notebooks.
	Path string

	cells    []*Cell
	active   int
	selected map[string]struct{}

	commands []Command
	undo     []undoBatch
}

// NewNotebook creates a notebook mirror over the given cells. The cursor
// starts at the first cell.
func NewNotebook(path string, cells ...*Cell) *Notebook {
	return &Notebook{
		Path:     path,
		cells:    cells,
		selected: make(map[string]struct{}),
	}
}

// Cells returns the ordered cell list. The slice is the live backing array;
// callers must not reorder it.
func (nb *Notebook) Cells() []*Cell { return nb.cells }

// Len returns the number of cells.
func (nb *Notebook) Len() int { return len(nb.cells) }

// CodeCellCount returns the number of code cells.
func (nb *Notebook) CodeCellCount() int {
	n := 0
	for _, c := range nb.cells {
		if c.Kind == KindCode {
			n++
		}
	}
	return n
}

// ActiveIndex returns the position of the active-cell cursor.
func (nb *Notebook) ActiveIndex() int { return nb.active }

// ActiveCell returns the cell under the cursor, nil for an empty notebook.
func (nb *Notebook) ActiveCell() *Cell {
	if nb.active < 0 || nb.active >= len(nb.cells) {
		return nil
	}
	return nb.cells[nb.active]
}

// Append adds cells to the end of the notebook. Structural additions come
// from the host (or test setup), never from the handlers, so nothing is
// recorded.
func (nb *Notebook) Append(cells ...*Cell) {
	nb.cells = append(nb.cells, cells...)
}

// InsertAt inserts a cell at position i, host-side. Out-of-range positions
// clamp to the ends.
func (nb *Notebook) InsertAt(i int, cell *Cell) {
	if i < 0 {
		i = 0
	}
	if i > len(nb.cells) {
		i = len(nb.cells)
	}
	nb.cells = append(nb.cells[:i], append([]*Cell{cell}, nb.cells[i:]...)...)
}

// SetActiveIndex positions the cursor directly when mirroring a host
// snapshot. Handler code navigates with the relative primitives instead.
func (nb *Notebook) SetActiveIndex(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(nb.cells) && len(nb.cells) > 0 {
		i = len(nb.cells) - 1
	}
	nb.active = i
}

// MarkSelected adds a cell id to the multi-selection set, host-side.
func (nb *Notebook) MarkSelected(id string) {
	nb.selected[id] = struct{}{}
}

// SelectionSize returns the number of multi-selected cells.
func (nb *Notebook) SelectionSize() int { return len(nb.selected) }
