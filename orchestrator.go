package cellsync

import "log"

// LinkAction names a link lifecycle transition.
type LinkAction string

const (
	LinkLinked   LinkAction = "linked"
	LinkPruned   LinkAction = "pruned"
	LinkRepaired LinkAction = "repaired"
)

// LinkEvent describes one transition of a trigger/generated pair.
type LinkEvent struct {
	Notebook       string
	Action         LinkAction
	TriggerID      string
	GeneratedID    string
	ExecutionCount int
}

// LinkRecorder receives link lifecycle events, e.g. for an audit journal.
// Implementations must not block; recording failures stay on their side.
type LinkRecorder interface {
	RecordLink(ev LinkEvent)
}

// Orchestrator owns the two execution-event handlers. All state lives in
// cell metadata; the orchestrator itself is stateless and safe to share
// across notebooks as long as the host delivers events sequentially.
type Orchestrator struct {
	// Recorder, when set, is notified of every link and prune.
	Recorder LinkRecorder
	// Debug enables handler tracing.
	Debug bool
}

// NewOrchestrator returns an orchestrator with no recorder attached.
func NewOrchestrator() *Orchestrator { return &Orchestrator{} }

// HandleScheduled runs just before the host executes a cell. A trigger cell
// that already has a linked answer gets that stale generated cell deleted
// here, before the new run produces its replacement: host ordering
// guarantees the scheduled handler completes before the executed event
// fires, so re-running a trigger can never accumulate duplicate answers.
func (o *Orchestrator) HandleScheduled(nb *Notebook, cell *Cell) {
	if cell == nil || cell.Kind != KindCode {
		return
	}
	if !IsMagic(cell, false) || IsGenerated(cell) {
		return
	}

	nb.AddClass(cell, ClassExecuting)

	rec, ok := ReadRecord(cell)
	if !ok || rec.LinkedCellID == "" {
		return
	}
	gen := CellByID(nb, rec.LinkedCellID)
	if gen == nil {
		return
	}

	DeleteCell(nb, gen)
	// Keep focus on the trigger so the upcoming executed handler starts from
	// a stable cursor.
	SelectCellByID(nb, cell.ID)

	if o.Debug {
		log.Printf("[Orchestrator] Pruned stale answer %s for trigger %s", rec.LinkedCellID, cell.ID)
	}
	o.notify(LinkEvent{
		Notebook:       nb.Path,
		Action:         LinkPruned,
		TriggerID:      cell.ID,
		GeneratedID:    rec.LinkedCellID,
		ExecutionCount: cell.ExecutionCount,
	})
}

// HandleExecuted runs after the host finishes executing a cell, and only
// does work for successful runs of strict trigger cells. It locates the
// freshly produced generated cell by its first-line marker, links the pair
// bidirectionally, and unless the trigger asked for safe mode, runs the
// generated cell and hides its input so only the rendered output shows.
func (o *Orchestrator) HandleExecuted(nb *Notebook, cell *Cell, success bool) {
	if !success || cell == nil || cell.Kind != KindCode {
		return
	}
	if !IsMagic(cell, true) || IsGenerated(cell) {
		return
	}

	if _, ok := ReadRecord(cell); !ok {
		nb.SetRecord(cell, CellRecord{CellType: CellTypeOriginal})
	}

	safe := IsSafeMode(cell)

	gen := CellByMarker(nb, cell.ExecutionCount)
	if gen == nil {
		// The backend produced no output (yet). Benign; a later run links.
		if o.Debug {
			log.Printf("[Orchestrator] No answer cell for trigger %s (count %d)", cell.ID, cell.ExecutionCount)
		}
		return
	}

	nb.SetRecord(gen, CellRecord{CellType: CellTypeGenerated, LinkedCellID: cell.ID})

	if !safe {
		SelectCellByID(nb, gen.ID)
		nb.RequestRun(gen)
		nb.SetInputHidden(gen, true)
	}

	// Re-assert focus: the conditional run above may have moved it. Then step
	// once below so the cursor lands after the trigger/answer pair.
	SelectCellByID(nb, gen.ID)
	if !safe {
		nb.SelectBelow()
	}

	nb.SetRecord(cell, CellRecord{CellType: CellTypeOriginal, LinkedCellID: gen.ID})

	nb.AddClass(cell, ClassChatCell)
	nb.RemoveClass(cell, ClassExecuting)
	nb.AddClass(gen, ClassAssistance)

	if o.Debug {
		log.Printf("[Orchestrator] Linked trigger %s to answer %s", cell.ID, gen.ID)
	}
	o.notify(LinkEvent{
		Notebook:       nb.Path,
		Action:         LinkLinked,
		TriggerID:      cell.ID,
		GeneratedID:    gen.ID,
		ExecutionCount: cell.ExecutionCount,
	})
}

func (o *Orchestrator) notify(ev LinkEvent) {
	if o.Recorder != nil {
		o.Recorder.RecordLink(ev)
	}
}
