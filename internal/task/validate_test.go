package task

import (
	"strings"
	"testing"
)

func TestValidateBlob(t *testing.T) {
	tests := []struct {
		name      string
		blob      string
		wantValid bool
		wantPath  string
	}{
		{
			name:      "valid blob",
			blob:      `{"tasks":[{"id":1,"text":"a","completed":false,"createdAt":"2026-01-01T00:00:00Z","completedAt":null,"deadline":null}],"taskIdCounter":1,"lastSaved":"2026-01-01T00:00:00Z"}`,
			wantValid: true,
		},
		{
			name:      "empty collection",
			blob:      `{"tasks":[],"taskIdCounter":0,"lastSaved":"2026-01-01T00:00:00Z"}`,
			wantValid: true,
		},
		{
			name:      "not json",
			blob:      "{{{",
			wantValid: false,
		},
		{
			name:      "missing counter",
			blob:      `{"tasks":[]}`,
			wantValid: false,
		},
		{
			name:      "non-integer id",
			blob:      `{"tasks":[{"id":"x","text":"a","completed":false}],"taskIdCounter":1}`,
			wantValid: false,
			wantPath:  "tasks[0].id",
		},
		{
			name:      "empty text",
			blob:      `{"tasks":[{"id":1,"text":"","completed":false}],"taskIdCounter":1}`,
			wantValid: false,
			wantPath:  "tasks[0].text",
		},
		{
			name:      "text over limit",
			blob:      `{"tasks":[{"id":1,"text":"` + strings.Repeat("a", 101) + `","completed":false}],"taskIdCounter":1}`,
			wantValid: false,
			wantPath:  "tasks[0].text",
		},
		{
			name:      "negative counter",
			blob:      `{"tasks":[],"taskIdCounter":-1}`,
			wantValid: false,
			wantPath:  "taskIdCounter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBlob([]byte(tt.blob))
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if !tt.wantValid && len(result.Errors) == 0 {
				t.Fatal("invalid blob reported no errors")
			}
			if tt.wantPath == "" {
				return
			}
			found := false
			for _, err := range result.Errors {
				if strings.Contains(err.Error(), tt.wantPath) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("no error mentions path %q: %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/tasks", "tasks"},
		{"/tasks/0/id", "tasks[0].id"},
		{"#/tasks/12/text", "tasks[12].text"},
		{"/taskIdCounter", "taskIdCounter"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
