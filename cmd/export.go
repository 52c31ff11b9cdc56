package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"taskdeck/internal/config"
	"taskdeck/internal/task"
)

// exportCommand writes the full collection in the requested format.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck export", flag.ContinueOnError)
	format := fs.String("format", "json", "Output format: json, csv, or pdf")
	out := fs.String("o", "", "Output file (default stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, _, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	data, err := task.NewExporter(store).Export(*format)
	if err != nil {
		return err
	}

	if *out == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	fmt.Printf("Exported %d task(s) to %s\n", store.Statistics().Total, *out)
	return nil
}
