package commands

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chapyter/cellsync"
	"github.com/chapyter/cellsync/internal/bridge"
	"github.com/chapyter/cellsync/internal/config"
	"github.com/chapyter/cellsync/internal/journal"
	"github.com/chapyter/cellsync/internal/watcher"
)

// ServeCommand implements the serve command.
func ServeCommand(args []string) error {
	// Parse arguments
	dir := "."
	var configPath string
	var port string
	var host string
	var debug bool
	var watch *bool

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--port" || arg == "-p" {
			if i+1 < len(args) {
				port = args[i+1]
				i++
			}
		} else if arg == "--host" {
			if i+1 < len(args) {
				host = args[i+1]
				i++
			}
		} else if arg == "--config" || arg == "-c" {
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		} else if arg == "--watch" || arg == "-w" {
			watchVal := true
			watch = &watchVal
		} else if arg == "--debug" {
			debug = true
		} else if !strings.HasPrefix(arg, "-") {
			// Positional argument (directory)
			dir = arg
		}
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", dir)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Load configuration
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fmt.Printf("Using config: %s\n", configPath)
	} else {
		cfg, err = config.LoadFromDir(absDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// CLI flags override config
	if port != "" {
		portInt, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port: %s", port)
		}
		cfg.Server.Port = portInt
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if debug {
		cfg.Server.Debug = true
	}
	if watch != nil {
		cfg.Watch.Enabled = *watch
	}

	orch := &cellsync.Orchestrator{Debug: cfg.Server.Debug}

	var jrnl *journal.Journal
	if cfg.Journal.Path != "" {
		jrnl, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer jrnl.Close()
		fmt.Printf("Journal: %s\n", cfg.Journal.Path)
	}

	srv := bridge.NewServer(cfg, orch, jrnl)

	if cfg.Watch.Enabled {
		watchDir := cfg.Watch.GetWatchDir()
		if !filepath.IsAbs(watchDir) {
			watchDir = filepath.Join(absDir, watchDir)
		}
		w, err := watcher.NewWatcher(watchDir, cfg.Watch.AutoRepair, srv, cfg.Server.Debug)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		w.Start()
		defer w.Stop()
		fmt.Printf("Watching: %s (auto-repair: %v)\n", watchDir, cfg.Watch.AutoRepair)
	}

	fmt.Printf("Bridge server running at http://%s\n", cfg.Server.Addr())
	fmt.Printf("Press Ctrl+C to stop\n\n")

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(0) // Remove timestamp from logs
}
