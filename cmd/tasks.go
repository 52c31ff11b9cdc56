package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"taskdeck/internal/config"
	"taskdeck/internal/task"
)

// addCommand creates a new task.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck add", flag.ContinueOnError)
	deadlineArg := fs.String("deadline", "", "Deadline as YYYY-MM-DD or RFC 3339")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("usage: taskdeck add <text>")
	}
	text := strings.Join(remaining, " ")

	var deadline *time.Time
	if *deadlineArg != "" {
		d, err := parseDeadline(*deadlineArg)
		if err != nil {
			return err
		}
		deadline = &d
	}

	store, _, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	t, err := store.Create(text, deadline)
	if err != nil {
		return err
	}
	warnIfSaveFailed(store)
	fmt.Printf("Added #%d: %s\n", t.ID, t.Text)
	return nil
}

// lsCommand lists tasks under a filter.
func lsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck ls", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Show more details")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	store, _, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if len(remaining) == 1 {
		filter, err := task.ParseFilter(remaining[0])
		if err != nil {
			return fmt.Errorf("filter %q: %w", remaining[0], err)
		}
		if err := store.SetFilter(filter); err != nil {
			return err
		}
	}

	tasks := store.Filtered()
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	for _, t := range tasks {
		printTask(t, *verbose)
	}
	st := store.Statistics()
	fmt.Printf("\n%d total, %d active, %d completed (%d%%)\n",
		st.Total, st.Active, st.Completed, st.CompletionRate)
	return nil
}

// toggleCommand flips a task's completion state.
func toggleCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	id, err := parseID(args, "toggle")
	if err != nil {
		return err
	}
	store, _, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	t, err := store.Toggle(id)
	if err != nil {
		return fmt.Errorf("toggle #%d: %w", id, err)
	}
	warnIfSaveFailed(store)
	if t.Completed {
		fmt.Printf("Completed #%d: %s\n", t.ID, t.Text)
	} else {
		fmt.Printf("Reopened #%d: %s\n", t.ID, t.Text)
	}
	return nil
}

// editCommand replaces a task's text.
func editCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: taskdeck edit <id> <text>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("task id %q: not a number", args[0])
	}
	text := strings.Join(args[1:], " ")

	store, _, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	t, err := store.Update(id, text)
	if err != nil {
		return fmt.Errorf("edit #%d: %w", id, err)
	}
	warnIfSaveFailed(store)
	fmt.Printf("Updated #%d: %s\n", t.ID, t.Text)
	return nil
}

// rmCommand deletes a task after confirmation.
func rmCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck rm", flag.ContinueOnError)
	yes := fs.Bool("y", false, "Skip the confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs.Args(), "rm")
	if err != nil {
		return err
	}

	store, _, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	t, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("rm #%d: %w", id, err)
	}

	if !*yes && !promptYesNo(os.Stdin, os.Stdout, fmt.Sprintf("Delete #%d %q? [y/N] ", t.ID, t.Text)) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := store.Delete(id); err != nil {
		return fmt.Errorf("rm #%d: %w", id, err)
	}
	warnIfSaveFailed(store)
	fmt.Printf("Deleted #%d\n", id)
	return nil
}

// clearCommand removes completed tasks, or everything with -all.
func clearCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck clear", flag.ContinueOnError)
	all := fs.Bool("all", false, "Remove every task, not just completed ones")
	yes := fs.Bool("y", false, "Skip the confirmation prompt")

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

	prompt := "Clear all completed tasks? [y/N] "
	if *all {
		prompt = "Delete ALL tasks? [y/N] "
	}
	if !*yes && !promptYesNo(os.Stdin, os.Stdout, prompt) {
		fmt.Println("Cancelled.")
		return nil
	}

	before := store.Statistics().Total
	if *all {
		store.ClearAll()
	} else {
		store.ClearCompleted()
	}
	warnIfSaveFailed(store)
	removed := before - store.Statistics().Total
	fmt.Printf("Removed %d task(s).\n", removed)
	return nil
}

// statsCommand prints the derived statistics.
func statsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	store, _, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	st := store.Statistics()
	fmt.Printf("Total:      %d\n", st.Total)
	fmt.Printf("Active:     %d\n", st.Active)
	fmt.Printf("Completed:  %d\n", st.Completed)
	fmt.Printf("Completion: %d%%\n", st.CompletionRate)
	return nil
}

// printTask prints a single task.
func printTask(t task.Task, verbose bool) {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	line := fmt.Sprintf("  %s #%d %s", checkbox, t.ID, t.Text)
	if t.Deadline != nil {
		line += fmt.Sprintf(" (due %s)", t.Deadline.Format("2006-01-02"))
	}
	fmt.Println(line)

	if verbose {
		fmt.Printf("      Created: %s\n", t.CreatedAt.Format(time.RFC3339))
		if t.CompletedAt != nil {
			fmt.Printf("      Completed: %s\n", t.CompletedAt.Format(time.RFC3339))
		}
	}
}

// promptYesNo asks for confirmation on r; anything but y/yes declines.
func promptYesNo(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt)
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// parseID expects exactly one numeric argument.
func parseID(args []string, command string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: taskdeck %s <id>", command)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("task id %q: not a number", args[0])
	}
	return id, nil
}

// parseDeadline accepts a date or a full timestamp.
func parseDeadline(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("deadline %q: expected YYYY-MM-DD or RFC 3339", s)
}

// warnIfSaveFailed surfaces a failed persistence write; the mutation
// itself already succeeded in memory.
func warnIfSaveFailed(store *task.Store) {
	if store.SaveWarning() != nil {
		fmt.Fprintln(os.Stderr, task.SaveFailedMessage)
	}
}
