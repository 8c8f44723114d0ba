package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chapyter/cellsync/internal/config"
	"github.com/chapyter/cellsync/internal/journal"
)

// HistoryCommand implements the history command.
func HistoryCommand(args []string) error {
	var configPath string
	var notebook string
	limit := 50

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--config" || arg == "-c" {
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		} else if arg == "--notebook" {
			if i+1 < len(args) {
				notebook = args[i+1]
				i++
			}
		} else if arg == "--limit" {
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid limit: %s", args[i+1])
				}
				limit = n
				i++
			}
		} else if strings.HasPrefix(arg, "--limit=") {
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--limit="))
			if err != nil {
				return fmt.Errorf("invalid limit: %s", arg)
			}
			limit = n
		}
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return err
	}
	if cfg.Journal.Path == "" {
		return fmt.Errorf("no journal configured (set journal.path in cellsync.yaml)")
	}

	jrnl, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer jrnl.Close()

	entries, err := jrnl.Recent(context.Background(), notebook, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No link events recorded")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-9s %s  %s -> %s", e.CreatedAt.Local().Format(time.DateTime), e.Action, e.Notebook, e.TriggerID, e.GeneratedID)
		if e.ExecutionCount > 0 {
			fmt.Printf("  [%d]", e.ExecutionCount)
		}
		fmt.Println()
	}
	return nil
}
