package bridge

import (
	"fmt"

	"github.com/chapyter/cellsync"
)

// Event types the frontend sends.
const (
	EventScheduled = "scheduled"
	EventExecuted  = "executed"
)

// Reply types the server sends back.
const (
	ReplyCommands = "commands"
	ReplyError    = "error"
)

// Envelope represents one execution event from the frontend, carrying a
// snapshot of the notebook it happened in. The server replies with the
// commands the frontend should apply to converge.
type Envelope struct {
	Type        string     `json:"type"`
	Notebook    string     `json:"notebook"`
	CellID      string     `json:"cellId"`
	Success     bool       `json:"success,omitempty"`
	ActiveIndex int        `json:"activeIndex"`
	Cells       []WireCell `json:"cells"`
}

// WireCell is one notebook cell as the frontend serializes it.
type WireCell struct {
	ID             string         `json:"id"`
	Kind           string         `json:"kind"`
	Source         string         `json:"source"`
	ExecutionCount int            `json:"executionCount,omitempty"`
	InputHidden    bool           `json:"inputHidden,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Reply is the server's answer to an envelope.
type Reply struct {
	Type     string             `json:"type"`
	Commands []cellsync.Command `json:"commands,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// BuildNotebook reconstructs the in-memory notebook from an envelope snapshot
// and returns it together with the cell the event is about.
func BuildNotebook(env *Envelope) (*cellsync.Notebook, *cellsync.Cell, error) {
	nb := cellsync.NewNotebook(env.Notebook)
	for _, wc := range env.Cells {
		if wc.ID == "" {
			return nil, nil, fmt.Errorf("cell without id in notebook %q", env.Notebook)
		}
		cell := cellsync.NewCell(wc.ID, wireKind(wc.Kind), wc.Source)
		cell.ExecutionCount = wc.ExecutionCount
		cell.InputHidden = wc.InputHidden
		if wc.Metadata != nil {
			cell.Metadata = wc.Metadata
		}
		nb.Append(cell)
	}
	nb.SetActiveIndex(env.ActiveIndex)

	target := cellsync.CellByID(nb, env.CellID)
	if target == nil {
		return nil, nil, fmt.Errorf("cell %q not found in notebook %q", env.CellID, env.Notebook)
	}
	return nb, target, nil
}

func wireKind(kind string) cellsync.CellKind {
	switch kind {
	case "markdown":
		return cellsync.KindMarkdown
	case "raw":
		return cellsync.KindRaw
	default:
		return cellsync.KindCode
	}
}
