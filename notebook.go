package cellsync

// SelectBelow moves the active-cell cursor one step down. No-op at the last
// cell, matching the host primitive.
func (nb *Notebook) SelectBelow() {
	if nb.active >= len(nb.cells)-1 {
		return
	}
	nb.active++
	nb.record(Command{Kind: CmdSelectDown})
}

// SelectAbove moves the active-cell cursor one step up. No-op at the first
// cell.
func (nb *Notebook) SelectAbove() {
	if nb.active <= 0 {
		return
	}
	nb.active--
	nb.record(Command{Kind: CmdSelectUp})
}

// shiftCursor moves the cursor without emitting a host navigation command.
// The navigator uses it to pass over input-hidden cells, which the host
// skips on its own.
func (nb *Notebook) shiftCursor(delta int) {
	next := nb.active + delta
	if next < 0 || next >= len(nb.cells) {
		return
	}
	nb.active = next
}

// ClearSelection empties the multi-selection set. Always recorded, even when
// the set was already empty, as the visible signal that the operation ran.
func (nb *Notebook) ClearSelection() {
	nb.selected = make(map[string]struct{})
	nb.record(Command{Kind: CmdClearSelection})
}

// SetInputHidden collapses or reveals a cell's input region.
func (nb *Notebook) SetInputHidden(c *Cell, hidden bool) {
	c.InputHidden = hidden
	nb.record(Command{Kind: CmdSetInputHidden, CellID: c.ID, Hidden: hidden})
}

// AddClass sets a visual marker class on a cell.
func (nb *Notebook) AddClass(c *Cell, class string) {
	c.addClass(class)
	nb.record(Command{Kind: CmdAddClass, CellID: c.ID, Class: class})
}

// RemoveClass clears a visual marker class from a cell.
func (nb *Notebook) RemoveClass(c *Cell, class string) {
	c.removeClass(class)
	nb.record(Command{Kind: CmdRemoveClass, CellID: c.ID, Class: class})
}

// RequestRun asks the host to execute a cell. The mirror never runs code; it
// only records the request.
func (nb *Notebook) RequestRun(c *Cell) {
	nb.record(Command{Kind: CmdRunCell, CellID: c.ID})
}

type undoEntry struct {
	index int
	cell  *Cell
}

// undoBatch holds one structural transaction: all cells removed together,
// restorable in a single step.
type undoBatch struct {
	entries []undoEntry
}

// deleteBatch removes the given indices, which must be sorted descending so
// earlier removals cannot shift later ones, and pushes one undo entry for
// the whole batch.
func (nb *Notebook) deleteBatch(indices []int) {
	var batch undoBatch
	for _, i := range indices {
		batch.entries = append(batch.entries, undoEntry{index: i, cell: nb.cells[i]})
		nb.cells = append(nb.cells[:i], nb.cells[i+1:]...)
	}
	nb.undo = append(nb.undo, batch)
}

// Undo reverts the most recent structural transaction in one step and
// reports whether there was one. Batch deletions reappear whole, never cell
// by cell.
func (nb *Notebook) Undo() bool {
	if len(nb.undo) == 0 {
		return false
	}
	batch := nb.undo[len(nb.undo)-1]
	nb.undo = nb.undo[:len(nb.undo)-1]
	// Entries were recorded in descending index order; reinsert ascending so
	// every original position is valid again when reached.
	for i := len(batch.entries) - 1; i >= 0; i-- {
		e := batch.entries[i]
		idx := e.index
		if idx > len(nb.cells) {
			idx = len(nb.cells)
		}
		nb.cells = append(nb.cells[:idx], append([]*Cell{e.cell}, nb.cells[idx:]...)...)
	}
	return true
}
