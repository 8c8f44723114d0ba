package cellsync

import (
	"sort"
	"strings"
)

// CellKind is the host cell type. Only code cells participate in linking.
type CellKind string

const (
	KindCode     CellKind = "code"
	KindMarkdown CellKind = "markdown"
	KindRaw      CellKind = "raw"
)

// Visual marker classes toggled on cells. Presentation only; no linking
// decision reads them back.
const (
	ClassChatCell   = "chat-cell"
	ClassExecuting  = "chat-cell-executing"
	ClassAssistance = "assistance-cell"
)

// Cell is one cell of the host document. The host owns identity and
// lifetime; this package only reads cells and requests edits through the
// notebook primitives.
type Cell struct {
	// ID is the host-assigned identifier, stable for the cell's lifetime.
	ID string
	// Kind is the host cell type.
	Kind CellKind
	// Source is the cell's text content.
	Source string
	// ExecutionCount is the host-assigned count of the last successful run,
	// 0 when the cell has never executed.
	ExecutionCount int
	// Metadata is the host's generic per-cell metadata store.
	Metadata map[string]any
	// InputHidden reports whether the host collapsed the input region.
	InputHidden bool

	classes map[string]struct{}
}

// NewCell creates a cell with an empty metadata store.
func NewCell(id string, kind CellKind, source string) *Cell {
	return &Cell{ID: id, Kind: kind, Source: source, Metadata: make(map[string]any)}
}

// FirstLine returns the first line of the cell source, without the newline.
func (c *Cell) FirstLine() string {
	if i := strings.IndexByte(c.Source, '\n'); i >= 0 {
		return c.Source[:i]
	}
	return c.Source
}

// CanDelete reports whether the host allows structural deletion of the
// cell. Cells are deletable unless their metadata explicitly says otherwise.
func (c *Cell) CanDelete() bool {
	if c.Metadata == nil {
		return true
	}
	v, ok := c.Metadata["deletable"]
	if !ok {
		return true
	}
	b, isBool := v.(bool)
	return !isBool || b
}

// HasClass reports whether a visual marker class is set.
func (c *Cell) HasClass(name string) bool {
	_, ok := c.classes[name]
	return ok
}

// Classes returns the set visual marker classes, sorted.
func (c *Cell) Classes() []string {
	out := make([]string, 0, len(c.classes))
	for name := range c.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c *Cell) addClass(name string) {
	if c.classes == nil {
		c.classes = make(map[string]struct{})
	}
	c.classes[name] = struct{}{}
}

func (c *Cell) removeClass(name string) {
	delete(c.classes, name)
}
