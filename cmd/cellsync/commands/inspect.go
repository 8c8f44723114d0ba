package commands

import (
	"fmt"
	"strings"

	"github.com/chapyter/cellsync"
	"github.com/chapyter/cellsync/internal/ipynb"
)

// InspectCommand implements the inspect command.
func InspectCommand(args []string) error {
	var path string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("usage: cellsync inspect <notebook.ipynb>")
	}

	doc, err := ipynb.Load(path)
	if err != nil {
		return err
	}
	nb := doc.Notebook()

	fmt.Printf("Notebook: %s\n", path)
	fmt.Printf("Cells: %d (%d code)\n\n", nb.Len(), nb.CodeCellCount())

	pairs := 0
	for _, c := range nb.Cells() {
		rec, ok := cellsync.ReadRecord(c)
		if !ok || rec.CellType != cellsync.CellTypeOriginal || rec.LinkedCellID == "" {
			continue
		}
		if cellsync.CellByID(nb, rec.LinkedCellID) == nil {
			continue
		}
		pairs++
		fmt.Printf("  %s -> %s  %q\n", c.ID, rec.LinkedCellID, c.FirstLine())
	}
	if pairs == 0 {
		fmt.Println("  no linked pairs")
	}

	report := cellsync.Scan(nb)
	if report.Empty() {
		fmt.Println("\nLinks OK")
		return nil
	}

	fmt.Printf("\n%d broken link(s):\n", report.Total())
	for _, id := range report.Dangling {
		fmt.Printf("  dangling generated cell %s (trigger is gone)\n", id)
	}
	for _, id := range report.Stale {
		fmt.Printf("  stale trigger %s (answer is gone)\n", id)
	}
	for _, id := range report.Duplicates {
		fmt.Printf("  duplicate generated cell %s (trigger points elsewhere)\n", id)
	}
	fmt.Println("\nRun 'cellsync repair' to clean these up")
	return nil
}
