package cellsync

// Report lists the link inconsistencies a Scan found. The live handlers
// tolerate all three kinds as acceptable staleness; cleaning them up is an
// explicit offline or watch-time operation.
type Report struct {
	// Dangling holds generated cells whose trigger no longer exists.
	Dangling []string
	// Stale holds trigger cells whose generated cell no longer exists.
	Stale []string
	// Duplicates holds generated cells claiming a trigger that points at a
	// different answer.
	Duplicates []string
}

// Empty reports whether the scan found nothing to fix.
func (r Report) Empty() bool {
	return len(r.Dangling) == 0 && len(r.Stale) == 0 && len(r.Duplicates) == 0
}

// Total returns the number of findings.
func (r Report) Total() int {
	return len(r.Dangling) + len(r.Stale) + len(r.Duplicates)
}

// Scan inspects every linking record without mutating the notebook.
func Scan(nb *Notebook) Report {
	var rep Report
	for _, c := range nb.Cells() {
		rec, ok := ReadRecord(c)
		if !ok {
			continue
		}
		switch rec.CellType {
		case CellTypeGenerated:
			trigger := CellByID(nb, rec.LinkedCellID)
			if rec.LinkedCellID == "" || trigger == nil {
				rep.Dangling = append(rep.Dangling, c.ID)
				continue
			}
			if trec, tok := ReadRecord(trigger); tok && trec.LinkedCellID != "" && trec.LinkedCellID != c.ID {
				rep.Duplicates = append(rep.Duplicates, c.ID)
			}
		case CellTypeOriginal:
			if rec.LinkedCellID != "" && CellByID(nb, rec.LinkedCellID) == nil {
				rep.Stale = append(rep.Stale, c.ID)
			}
		}
	}
	return rep
}

// Repair deletes dangling and duplicate generated cells and clears stale
// trigger links, returning what Scan found. Deletions go through the normal
// undo-atomic path; rec, when non-nil, is notified per repaired pair.
func Repair(nb *Notebook, rec LinkRecorder) Report {
	rep := Scan(nb)

	for _, id := range rep.Dangling {
		pruneGenerated(nb, id, rec)
	}
	for _, id := range rep.Duplicates {
		pruneGenerated(nb, id, rec)
	}
	for _, id := range rep.Stale {
		trigger := CellByID(nb, id)
		if trigger == nil {
			continue
		}
		old, _ := ReadRecord(trigger)
		nb.SetRecord(trigger, CellRecord{CellType: CellTypeOriginal})
		if rec != nil {
			rec.RecordLink(LinkEvent{
				Notebook:    nb.Path,
				Action:      LinkRepaired,
				TriggerID:   id,
				GeneratedID: old.LinkedCellID,
			})
		}
	}
	return rep
}

func pruneGenerated(nb *Notebook, id string, rec LinkRecorder) {
	c := CellByID(nb, id)
	if c == nil {
		return
	}
	old, _ := ReadRecord(c)
	DeleteCell(nb, c)
	if rec != nil {
		rec.RecordLink(LinkEvent{
			Notebook:    nb.Path,
			Action:      LinkRepaired,
			TriggerID:   old.LinkedCellID,
			GeneratedID: id,
		})
	}
}
