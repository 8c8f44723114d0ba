// Command cellsync runs the cell linking bridge and notebook maintenance
// tools for Chapyter-style chat cells.
package main

import (
	"fmt"
	"os"

	"github.com/chapyter/cellsync/cmd/cellsync/commands"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "serve":
		err = commands.ServeCommand(args)
	case "inspect":
		err = commands.InspectCommand(args)
	case "repair":
		err = commands.RepairCommand(args)
	case "export":
		err = commands.ExportCommand(args)
	case "history":
		err = commands.HistoryCommand(args)
	case "version":
		fmt.Printf("cellsync version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("cellsync - Chat cell linking for Jupyter notebooks")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cellsync serve [directory]          Start the bridge server")
	fmt.Println("  cellsync inspect <notebook>         Report link state of a notebook")
	fmt.Println("  cellsync repair <notebook>          Remove broken links from a notebook")
	fmt.Println("  cellsync export <notebook>          Export a notebook as markdown or HTML")
	fmt.Println("  cellsync history                    Show recorded link events")
	fmt.Println("  cellsync version                    Show version")
	fmt.Println("  cellsync help                       Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  cellsync serve                      # Serve with cellsync.yaml from the current directory")
	fmt.Println("  cellsync serve --port 9000          # Override the configured port")
	fmt.Println("  cellsync inspect analysis.ipynb     # List linked pairs and broken links")
	fmt.Println("  cellsync repair --dry-run a.ipynb   # Show what repair would change")
	fmt.Println("  cellsync export --format html a.ipynb -o a.html")
	fmt.Println("  cellsync history --limit 20         # Last 20 link events from the journal")
}
