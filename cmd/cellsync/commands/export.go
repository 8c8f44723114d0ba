package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/chapyter/cellsync/internal/export"
	"github.com/chapyter/cellsync/internal/ipynb"
)

// ExportCommand implements the export command.
func ExportCommand(args []string) error {
	var path string
	format := "md"
	var output string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--format" || arg == "-f" {
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		} else if strings.HasPrefix(arg, "--format=") {
			format = strings.TrimPrefix(arg, "--format=")
		} else if arg == "--output" || arg == "-o" {
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		} else if !strings.HasPrefix(arg, "-") {
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("usage: cellsync export [--format md|html] [-o file] <notebook.ipynb>")
	}

	doc, err := ipynb.Load(path)
	if err != nil {
		return err
	}

	var rendered string
	switch format {
	case "md", "markdown":
		rendered = export.Markdown(doc)
	case "html":
		rendered, err = export.HTML(doc)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want md or html)", format)
	}

	if output == "" {
		fmt.Print(rendered)
		return nil
	}
	if err := os.WriteFile(output, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}
