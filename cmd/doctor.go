package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"taskdeck/internal/config"
	"taskdeck/internal/storage"
	"taskdeck/internal/task"
)

// doctorCommand checks config, storage, and task data validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdeck doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Taskdeck Doctor")
	fmt.Println("===============")
	fmt.Println()

	allOK := true

	// Check data directory
	fmt.Printf("Data directory: %s\n", cfg.DataDir)
	if info, err := os.Stat(cfg.DataDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first write)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Println("  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check config
	fmt.Println("Config:")
	if _, err := task.ParseFilter(cfg.Filter); err != nil {
		fmt.Printf("  ❌ Default filter: %s (expected all|active|completed)\n", cfg.Filter)
		allOK = false
	} else {
		fmt.Printf("  ✅ Default filter: %s\n", cfg.Filter)
	}
	if cfg.MaxStorageBytes <= 0 {
		fmt.Printf("  ❌ Storage quota: %d (must be positive)\n", cfg.MaxStorageBytes)
		allOK = false
	} else {
		fmt.Printf("  ✅ Storage quota: %d bytes\n", cfg.MaxStorageBytes)
	}
	fmt.Println()

	kv, err := storage.NewFileKV(cfg.DataDir, cfg.MaxStorageBytes)
	if err != nil {
		fmt.Printf("❌ Opening storage: %v\n", err)
		return fmt.Errorf("doctor checks failed")
	}

	// Check the task blob
	fmt.Printf("Task blob: key %q\n", cfg.StoreKey)
	data, ok, err := kv.Get(cfg.StoreKey)
	switch {
	case err != nil:
		fmt.Printf("  ❌ Read error: %v\n", err)
		allOK = false
	case !ok:
		fmt.Println("  ⚠️  Not found (will be created on first save)")
	default:
		fmt.Println("  ✅ OK")
		result := task.ValidateBlob(data)
		if !result.UsedSchema {
			fmt.Println("  ⚠️  Schema unavailable, ran minimal checks only")
		}
		for _, w := range result.Warnings {
			fmt.Printf("  ⚠️  %s\n", w)
		}
		if result.Valid {
			fmt.Println("  ✅ Valid")
		} else {
			fmt.Println("  ❌ Validation failed:")
			for _, e := range result.Errors {
				fmt.Printf("     - %v\n", e)
			}
			allOK = false
		}
		if *verbose && result.Valid {
			var parsed struct {
				Tasks []task.Task `json:"tasks"`
			}
			if err := json.Unmarshal(data, &parsed); err == nil {
				fmt.Printf("  Tasks: %d\n", len(parsed.Tasks))
				for _, t := range parsed.Tasks {
					marker := " "
					if t.Completed {
						marker = "x"
					}
					fmt.Printf("    - [%s] #%d %s\n", marker, t.ID, t.Text)
				}
			}
		}
	}
	fmt.Println()

	// Check quota usage
	fmt.Println("Storage usage:")
	used, err := kv.UsedBytes()
	if err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		pct := float64(used) / float64(kv.Quota()) * 100
		fmt.Printf("  %d / %d bytes (%.1f%%)\n", used, kv.Quota(), pct)
		switch {
		case used >= kv.Quota():
			fmt.Println("  ❌ Quota exhausted, saves will fail")
			allOK = false
		case pct >= 90:
			fmt.Println("  ⚠️  Nearly full")
		default:
			fmt.Println("  ✅ OK")
		}
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Taskdeck may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}
