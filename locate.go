package cellsync

import (
	"fmt"
	"strings"
)

// MarkerFormat is the first-line template the generation backend writes into
// a freshly produced cell, keyed by the trigger cell's execution count. A
// new generated cell carries no metadata yet, so this marker is the only way
// to match it to its trigger: the backend must emit it verbatim as the first
// line of its output. Treat it as a wire contract, not a string convention.
const MarkerFormat = "# Assistant Code for Cell [%d]:"

// MarkerFor returns the literal marker line for an execution count.
func MarkerFor(executionCount int) string {
	return fmt.Sprintf(MarkerFormat, executionCount)
}

// CellByID returns the cell with the given id, nil when absent.
func CellByID(nb *Notebook, id string) *Cell {
	if i := CellIndexByID(nb, id); i >= 0 {
		return nb.cells[i]
	}
	return nil
}

// CellIndexByID returns the position of the cell with the given id, or -1.
func CellIndexByID(nb *Notebook, id string) int {
	for i, c := range nb.cells {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// CellByMarker scans code cells for one whose first line starts with the
// marker for the given execution count. Returns nil when the count is unset
// or nothing matches.
func CellByMarker(nb *Notebook, executionCount int) *Cell {
	if executionCount <= 0 {
		return nil
	}
	marker := MarkerFor(executionCount)
	for _, c := range nb.cells {
		if c.Kind != KindCode {
			continue
		}
		if strings.HasPrefix(c.FirstLine(), marker) {
			return c
		}
	}
	return nil
}
