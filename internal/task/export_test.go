package task

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func newExportStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil, nil)
	deadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s.Create("write report", &deadline)
	done, _ := s.Create("send invoice", nil)
	s.Toggle(done.ID)
	return s
}

func TestExportJSON(t *testing.T) {
	data, err := NewExporter(newExportStore(t)).Export("json")
	if err != nil {
		t.Fatalf("Export(json) error = %v", err)
	}

	var dump struct {
		Tasks      []Task    `json:"tasks"`
		ExportDate time.Time `json:"exportDate"`
		Version    string    `json:"version"`
	}
	if err := json.Unmarshal(data, &dump); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(dump.Tasks) != 2 {
		t.Errorf("exported %d tasks, want 2", len(dump.Tasks))
	}
	if dump.Version != "1.0" {
		t.Errorf("version = %q, want 1.0", dump.Version)
	}
	if dump.ExportDate.IsZero() {
		t.Error("exportDate is zero")
	}
}

func TestExportJSONEmptyStore(t *testing.T) {
	data, err := NewExporter(NewStore(nil, nil)).Export("json")
	if err != nil {
		t.Fatalf("Export(json) error = %v", err)
	}
	if !strings.Contains(string(data), `"tasks": []`) {
		t.Errorf("empty export should contain an empty array, got:\n%s", data)
	}
}

func TestExportCSV(t *testing.T) {
	data, err := NewExporter(newExportStore(t)).Export("csv")
	if err != nil {
		t.Fatalf("Export(csv) error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	wantHeader := []string{"id", "text", "completed", "created_at", "completed_at", "deadline"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	if records[1][1] != "write report" || records[1][2] != "false" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[1][5] != "2026-09-01T00:00:00Z" {
		t.Errorf("deadline = %q, want RFC 3339", records[1][5])
	}
	if records[2][2] != "true" || records[2][4] == "" {
		t.Errorf("completed row should carry completed_at, got %v", records[2])
	}
}

func TestExportPDF(t *testing.T) {
	data, err := NewExporter(newExportStore(t)).Export("pdf")
	if err != nil {
		t.Fatalf("Export(pdf) error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("export does not start with a PDF header")
	}
}

func TestExportIgnoresFilter(t *testing.T) {
	s := newExportStore(t)
	if err := s.SetFilter(FilterActive); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	data, err := NewExporter(s).Export("csv")
	if err != nil {
		t.Fatalf("Export(csv) error = %v", err)
	}
	records, _ := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if len(records) != 3 {
		t.Errorf("filtered store exported %d rows, want all tasks", len(records)-1)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	if _, err := NewExporter(NewStore(nil, nil)).Export("xml"); err == nil {
		t.Error("Export(xml) should fail")
	}
}
