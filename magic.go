package cellsync

import "strings"

// Command prefixes recognized on a trigger cell's first line. %%chatonly is
// a reserved sub-prefix of %%chat: it produces an answer without running it,
// so the strict check keeps it out of the normal trigger path.
const (
	LineMagicPrefix = "%chat"
	CellMagicPrefix = "%%chat"
	ChatOnlyPrefix  = "%%chatonly"
)

// IsMagic classifies a cell as an assistant trigger. Strict mode requires a
// chat prefix and excludes %%chatonly cells. Non-strict mode accepts every
// cell: callers on that path rely on the linked-cell lookup no-opping for
// cells that never participated in a link. The behavior is pinned by
// TestIsMagicLooseAcceptsEverything; changing this condition changes which
// cells the scheduled-side cleanup considers.
func IsMagic(c *Cell, strict bool) bool {
	if c == nil {
		return false
	}
	return !strict ||
		((strings.HasPrefix(c.Source, LineMagicPrefix) || strings.HasPrefix(c.Source, CellMagicPrefix)) &&
			!strings.HasPrefix(c.Source, ChatOnlyPrefix))
}

// IsSafeMode reports whether the trigger's first line carries the safe flag.
// A plain substring probe, not a flag grammar: "-s" or "--safe" anywhere on
// the first line counts, unrelated text included.
func IsSafeMode(c *Cell) bool {
	line := c.FirstLine()
	return strings.Contains(line, "-s") || strings.Contains(line, "--safe")
}

// IsGenerated reports whether the cell was produced by the generation
// backend. A code cell with no linking record, and any non-code cell, is
// not generated.
func IsGenerated(c *Cell) bool {
	if c == nil || c.Kind != KindCode {
		return false
	}
	rec, ok := ReadRecord(c)
	return ok && rec.CellType == CellTypeGenerated
}
