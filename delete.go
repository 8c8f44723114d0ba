package cellsync

import "sort"

// DeleteCell removes the given cell from the document in one undo-atomic
// transaction. Every widget position holding the cell is targeted (normally
// exactly one), non-deletable cells are filtered out, and the batch is
// removed in descending index order so indices stay stable mid-batch. The
// cursor then lands on the cell now occupying the first deleted position:
// firstDeleted - deleted + 1 accounts for the shift from removals at or
// before it. The multi-selection set is always cleared afterward, deletions
// or not.
func DeleteCell(nb *Notebook, cell *Cell) {
	if cell == nil {
		nb.ClearSelection()
		return
	}

	var targets []int
	for i, c := range nb.cells {
		if c == cell || c.ID == cell.ID {
			targets = append(targets, i)
		}
	}

	var deletable []int
	for _, i := range targets {
		if nb.cells[i].CanDelete() {
			deletable = append(deletable, i)
		}
	}

	if len(deletable) > 0 {
		first := deletable[0]
		ids := make([]string, len(deletable))
		for i, idx := range deletable {
			ids[i] = nb.cells[idx].ID
		}

		desc := append([]int(nil), deletable...)
		sort.Sort(sort.Reverse(sort.IntSlice(desc)))
		nb.deleteBatch(desc)
		nb.record(Command{Kind: CmdDeleteCells, CellIDs: ids})

		next := first - len(deletable) + 1
		if next < 0 {
			next = 0
		}
		if next >= len(nb.cells) && len(nb.cells) > 0 {
			next = len(nb.cells) - 1
		}
		nb.active = next
	}

	nb.ClearSelection()
}
