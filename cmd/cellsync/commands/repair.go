package commands

import (
	"fmt"
	"strings"

	"github.com/chapyter/cellsync"
	"github.com/chapyter/cellsync/internal/ipynb"
)

// RepairCommand implements the repair command.
func RepairCommand(args []string) error {
	var path string
	dryRun := false

	for _, arg := range args {
		if arg == "--dry-run" || arg == "-n" {
			dryRun = true
		} else if !strings.HasPrefix(arg, "-") {
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("usage: cellsync repair [--dry-run] <notebook.ipynb>")
	}

	doc, err := ipynb.Load(path)
	if err != nil {
		return err
	}
	nb := doc.Notebook()

	report := cellsync.Scan(nb)
	if report.Empty() {
		fmt.Println("Links OK, nothing to repair")
		return nil
	}

	for _, id := range report.Dangling {
		fmt.Printf("  remove dangling generated cell %s\n", id)
	}
	for _, id := range report.Duplicates {
		fmt.Printf("  remove duplicate generated cell %s\n", id)
	}
	for _, id := range report.Stale {
		fmt.Printf("  clear stale link on trigger %s\n", id)
	}

	if dryRun {
		fmt.Printf("\nDry run: %d change(s) not applied\n", report.Total())
		return nil
	}

	cellsync.Repair(nb, nil)
	doc.Apply(nb)
	if err := doc.Save(path); err != nil {
		return err
	}
	fmt.Printf("\nRepaired %s (%d change(s))\n", path, report.Total())
	return nil
}
