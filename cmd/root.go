// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"taskdeck/internal/config"
	"taskdeck/internal/logging"
	"taskdeck/internal/storage"
	"taskdeck/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	// Determine the subcommand; with no args, list the tasks.
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, logger, remainingArgs)
	case "toggle", "done":
		return toggleCommand(cfg, logger, remainingArgs)
	case "edit":
		return editCommand(cfg, logger, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, logger, remainingArgs)
	case "clear":
		return clearCommand(cfg, logger, remainingArgs)
	case "stats":
		return statsCommand(cfg, logger, remainingArgs)
	case "export":
		return exportCommand(cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore wires the file-backed KV store, the repository, and the
// hydrated task store, and applies the configured starting filter.
func openStore(cfg *config.Config, logger *log.Logger) (*task.Store, *storage.FileKV, error) {
	kv, err := storage.NewFileKV(cfg.DataDir, cfg.MaxStorageBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	repo := task.NewRepository(kv, cfg.StoreKey, logger)
	store := task.NewStore(repo, logger)

	filter, err := task.ParseFilter(cfg.Filter)
	if err != nil {
		return nil, nil, fmt.Errorf("filter %q: %w", cfg.Filter, err)
	}
	if err := store.SetFilter(filter); err != nil {
		return nil, nil, err
	}
	return store, kv, nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskdeck version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskdeck - A task list for your terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdeck [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <text>        Add a task")
	fmt.Fprintln(w, "  ls [filter]       List tasks (default command; filter: all|active|completed)")
	fmt.Fprintln(w, "  toggle <id>       Toggle completion (alias: done)")
	fmt.Fprintln(w, "  edit <id> <text>  Replace a task's text")
	fmt.Fprintln(w, "  rm <id>           Delete a task (alias: delete)")
	fmt.Fprintln(w, "  clear             Remove completed tasks (-all removes everything)")
	fmt.Fprintln(w, "  stats             Show collection statistics")
	fmt.Fprintln(w, "  export            Export all tasks (json, csv, or pdf)")
	fmt.Fprintln(w, "  doctor            Check config, storage, and task data validity")
	fmt.Fprintln(w, "  init              Write an example config file")
	fmt.Fprintln(w, "  tui               Launch the terminal UI")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -deadline string")
	fmt.Fprintln(w, "        Deadline as YYYY-MM-DD or RFC 3339")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rm/Clear Options:")
	fmt.Fprintln(w, "  -y    Skip the confirmation prompt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format: json, csv, or pdf (default json)")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output file (default stdout)")
}
