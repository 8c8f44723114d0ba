package cellsync

// SelectCellByID walks the active-cell cursor to the cell with the given id,
// one relative step at a time, because the host exposes only step-wise
// movement. Input-hidden cells under the cursor are passed over without a
// navigation command; the host treats them as already skipped. No-op when
// the id is unknown or the cell is already active.
func SelectCellByID(nb *Notebook, id string) {
	target := CellIndexByID(nb, id)
	if target < 0 {
		return
	}
	for nb.ActiveIndex() != target {
		delta := 1
		if target < nb.ActiveIndex() {
			delta = -1
		}
		if cur := nb.ActiveCell(); cur != nil && cur.InputHidden {
			nb.shiftCursor(delta)
			continue
		}
		if delta > 0 {
			nb.SelectBelow()
		} else {
			nb.SelectAbove()
		}
	}
}
