package displayname

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTable_Lookup(t *testing.T) {
	table := Default()

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"mapped model", table.ModelName("gpt-4o"), "GPT-4o"},
		{"unmapped model falls back to key", table.ModelName("experimental-1"), "experimental-1"},
		{"blank model", table.ModelName(""), "Unknown"},
		{"mapped language", table.LanguageName("typescript"), "TypeScript"},
		{"blank language", table.LanguageName(""), "Unknown"},
		{"mapped feature", table.FeatureName("code_completion"), "Code completion"},
		{"unmapped feature falls back to key", table.FeatureName("voice_chat"), "voice_chat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.yaml")

	content := `models:
  gpt-4o: "Custom 4o label"
  in-house-model: "In-house Model"
languages:
  brainfuck: "Brainfuck"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	// File entries override defaults.
	if got := table.ModelName("gpt-4o"); got != "Custom 4o label" {
		t.Errorf("ModelName(gpt-4o) = %q, want %q", got, "Custom 4o label")
	}
	// New entries are added.
	if got := table.ModelName("in-house-model"); got != "In-house Model" {
		t.Errorf("ModelName(in-house-model) = %q, want %q", got, "In-house Model")
	}
	if got := table.LanguageName("brainfuck"); got != "Brainfuck" {
		t.Errorf("LanguageName(brainfuck) = %q, want %q", got, "Brainfuck")
	}
	// Defaults not mentioned in the file survive the merge.
	if got := table.LanguageName("go"); got != "Go" {
		t.Errorf("LanguageName(go) = %q, want %q", got, "Go")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile on a missing path should fail")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("models: [not, a, map]"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile on malformed YAML should fail")
	}
}
