package task

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// exportVersion identifies the dump format.
const exportVersion = "1.0"

// exportFile is the full read-only dump offered to the user. It is
// never re-imported.
type exportFile struct {
	Tasks      []Task    `json:"tasks"`
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}

// Exporter renders the store's collection in exchange formats.
type Exporter struct {
	store *Store
}

// NewExporter wraps a store for export.
func NewExporter(s *Store) *Exporter {
	return &Exporter{store: s}
}

// Export renders every task (regardless of the current filter) in the
// requested format: json, csv, or pdf.
func (e *Exporter) Export(format string) ([]byte, error) {
	tasks := e.store.Tasks()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		dump := exportFile{
			Tasks:      tasks,
			ExportDate: time.Now().UTC(),
			Version:    exportVersion,
		}
		if dump.Tasks == nil {
			dump.Tasks = []Task{}
		}
		data, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "text", "completed", "created_at", "completed_at", "deadline"})
		for _, t := range tasks {
			_ = w.Write([]string{
				fmt.Sprint(t.ID),
				t.Text,
				fmt.Sprint(t.Completed),
				t.CreatedAt.Format(time.RFC3339),
				formatOptional(t.CompletedAt),
				formatOptional(t.Deadline),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Task List Export")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		st := e.store.Statistics()
		pdf.MultiCell(0, 6, fmt.Sprintf("%d tasks, %d completed (%d%%)", st.Total, st.Completed, st.CompletionRate), "0", "L", false)
		pdf.Ln(4)
		for _, t := range tasks {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s #%d %s", mark, t.ID, t.Text)
			if t.Deadline != nil {
				line += fmt.Sprintf(" (due %s)", t.Deadline.Format("2006-01-02"))
			}
			pdf.MultiCell(0, 6, line, "0", "L", false)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
