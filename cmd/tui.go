package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/log"

	"taskdeck/internal/config"
	"taskdeck/internal/task"
	"taskdeck/internal/ui"
)

// tuiCommand launches the interactive terminal interface.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck tui", flag.ContinueOnError)
	filterArg := fs.String("filter", cfg.Filter, "Filter to start on: all, active, or completed")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	filter, err := task.ParseFilter(*filterArg)
	if err != nil {
		return fmt.Errorf("filter %q: %w", *filterArg, err)
	}

	store, _, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, store, ui.WithFilter(filter))
}
