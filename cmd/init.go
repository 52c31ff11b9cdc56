package cmd

import (
	"flag"
	"fmt"
	"os"

	"taskdeck/internal/config"
)

// initCommand writes an example config file and creates the data
// directory.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdeck init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite an existing config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	configPath := "taskdeck.toml"
	if _, err := os.Stat(configPath); err == nil && !*force {
		fmt.Printf("%s already exists, skipping (use -force to overwrite)\n", configPath)
	} else {
		if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", configPath, err)
		}
		fmt.Printf("Created %s\n", configPath)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	fmt.Printf("Data directory: %s\n", cfg.DataDir)
	return nil
}
