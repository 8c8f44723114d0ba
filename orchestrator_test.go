package cellsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []LinkEvent
}

func (r *recordingSink) RecordLink(ev LinkEvent) {
	r.events = append(r.events, ev)
}

// runTrigger simulates one full host round for a trigger cell: the scheduled
// event, the host assigning the execution count, the backend inserting the
// marked answer cell below the trigger, then the executed event.
func runTrigger(o *Orchestrator, nb *Notebook, trigger *Cell, count int, genID string) *Cell {
	o.HandleScheduled(nb, trigger)
	trigger.ExecutionCount = count
	gen := codeCell(genID, MarkerFor(count)+"\nimport matplotlib.pyplot as plt")
	nb.InsertAt(CellIndexByID(nb, trigger.ID)+1, gen)
	o.HandleExecuted(nb, trigger, true)
	return gen
}

func TestLinkLifecycle(t *testing.T) {
	o := NewOrchestrator()
	trigger := codeCell("t1", "%chat plot my data")
	nb := NewNotebook("demo.ipynb",
		NewCell("md", KindMarkdown, "# Demo"),
		trigger,
		codeCell("tail", "print('after')"),
	)

	gen := runTrigger(o, nb, trigger, 1, "g1")

	trec, ok := ReadRecord(trigger)
	require.True(t, ok)
	assert.Equal(t, CellTypeOriginal, trec.CellType)
	assert.Equal(t, gen.ID, trec.LinkedCellID)

	grec, ok := ReadRecord(gen)
	require.True(t, ok)
	assert.Equal(t, CellTypeGenerated, grec.CellType)
	assert.Equal(t, trigger.ID, grec.LinkedCellID)

	assert.True(t, gen.InputHidden)
	assert.True(t, trigger.HasClass(ClassChatCell))
	assert.False(t, trigger.HasClass(ClassExecuting))
	assert.True(t, gen.HasClass(ClassAssistance))

	// Cursor lands one past the answer, after the trigger/answer pair.
	assert.Equal(t, CellIndexByID(nb, gen.ID)+1, nb.ActiveIndex())

	kinds := commandKinds(nb.DrainCommands())
	assert.Contains(t, kinds, CmdRunCell)
	assert.Contains(t, kinds, CmdSetInputHidden)
	assert.Contains(t, kinds, CmdSetMetadata)
}

func TestIdempotentRerun(t *testing.T) {
	o := NewOrchestrator()
	trigger := codeCell("t1", "%chat plot my data")
	nb := NewNotebook("demo.ipynb",
		NewCell("md", KindMarkdown, "# Demo"),
		trigger,
		codeCell("tail", "print('after')"),
	)
	base := nb.CodeCellCount()

	first := runTrigger(o, nb, trigger, 1, "g1")
	require.Equal(t, base+1, nb.CodeCellCount())

	second := runTrigger(o, nb, trigger, 2, "g2")
	assert.Equal(t, base+1, nb.CodeCellCount(), "re-run must not accumulate answers")
	assert.Nil(t, CellByID(nb, first.ID), "stale answer deleted during scheduled phase")

	trec, _ := ReadRecord(trigger)
	assert.Equal(t, second.ID, trec.LinkedCellID)
	srec, _ := ReadRecord(second)
	assert.Equal(t, trigger.ID, srec.LinkedCellID)
}

func TestSafeModeSuppressesAutoRun(t *testing.T) {
	o := NewOrchestrator()
	trigger := codeCell("t1", "%chat -s plot my data")
	nb := NewNotebook("", trigger, codeCell("tail", "print('after')"))

	gen := runTrigger(o, nb, trigger, 1, "g1")

	assert.False(t, gen.InputHidden, "safe mode keeps the answer's input visible")
	kinds := commandKinds(nb.DrainCommands())
	assert.NotContains(t, kinds, CmdRunCell)
	assert.NotContains(t, kinds, CmdSetInputHidden)

	// Cursor still lands on the answer itself, not past it.
	assert.Equal(t, CellIndexByID(nb, gen.ID), nb.ActiveIndex())

	trec, _ := ReadRecord(trigger)
	assert.Equal(t, gen.ID, trec.LinkedCellID)
}

func TestFailedExecutionIsNoop(t *testing.T) {
	o := NewOrchestrator()
	trigger := codeCell("t1", "%chat plot my data")
	trigger.ExecutionCount = 1
	nb := NewNotebook("", trigger, codeCell("g1", MarkerFor(1)+"\ncode"))

	o.HandleExecuted(nb, trigger, false)

	_, ok := ReadRecord(trigger)
	assert.False(t, ok, "failed run writes no metadata")
	assert.Empty(t, nb.DrainCommands())
}

func TestNonMagicCellIsolation(t *testing.T) {
	o := NewOrchestrator()
	plain := codeCell("p", "print(1)")
	nb := NewNotebook("", plain, codeCell("other", "x = 2"))

	o.HandleExecuted(nb, plain, true)
	assert.Empty(t, nb.DrainCommands())
	_, ok := ReadRecord(plain)
	assert.False(t, ok)

	// The loose scheduled-side check accepts every cell, so the only visible
	// effect is the executing marker; no metadata, deletion, or movement.
	o.HandleScheduled(nb, plain)
	assert.Equal(t, []CommandKind{CmdAddClass}, commandKinds(nb.DrainCommands()))
	_, ok = ReadRecord(plain)
	assert.False(t, ok)
	assert.Equal(t, 0, nb.ActiveIndex())
	assert.Equal(t, 2, nb.Len())
}

func TestGeneratedCellEventsIgnored(t *testing.T) {
	o := NewOrchestrator()
	gen := codeCell("g1", "%chat somehow\n"+MarkerFor(1))
	nb := NewNotebook("", gen)
	nb.SetRecord(gen, CellRecord{CellType: CellTypeGenerated, LinkedCellID: "t1"})
	nb.DrainCommands()

	o.HandleScheduled(nb, gen)
	o.HandleExecuted(nb, gen, true)
	assert.Empty(t, nb.DrainCommands())
}

func TestExecutedWithoutAnswerTagsTriggerOnly(t *testing.T) {
	o := NewOrchestrator()
	trigger := codeCell("t1", "%chat plot my data")
	trigger.ExecutionCount = 4
	nb := NewNotebook("", trigger)

	o.HandleExecuted(nb, trigger, true)

	rec, ok := ReadRecord(trigger)
	require.True(t, ok)
	assert.Equal(t, CellTypeOriginal, rec.CellType)
	assert.Empty(t, rec.LinkedCellID, "no answer means no link yet")
	assert.Equal(t, []CommandKind{CmdSetMetadata}, commandKinds(nb.DrainCommands()))
}

func TestMarkdownCellIgnored(t *testing.T) {
	o := NewOrchestrator()
	md := NewCell("m", KindMarkdown, "%chat not really")
	nb := NewNotebook("", md)

	o.HandleScheduled(nb, md)
	o.HandleExecuted(nb, md, true)
	assert.Empty(t, nb.DrainCommands())
}

func TestRecorderNotified(t *testing.T) {
	sink := &recordingSink{}
	o := &Orchestrator{Recorder: sink}
	trigger := codeCell("t1", "%chat plot my data")
	nb := NewNotebook("demo.ipynb", trigger)

	runTrigger(o, nb, trigger, 1, "g1")
	runTrigger(o, nb, trigger, 2, "g2")

	require.Len(t, sink.events, 3)
	assert.Equal(t, LinkLinked, sink.events[0].Action)
	assert.Equal(t, "g1", sink.events[0].GeneratedID)
	assert.Equal(t, LinkPruned, sink.events[1].Action)
	assert.Equal(t, "g1", sink.events[1].GeneratedID)
	assert.Equal(t, LinkLinked, sink.events[2].Action)
	assert.Equal(t, "g2", sink.events[2].GeneratedID)
	for _, ev := range sink.events {
		assert.Equal(t, "demo.ipynb", ev.Notebook)
		assert.Equal(t, "t1", ev.TriggerID)
	}
}
