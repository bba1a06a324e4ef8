// Package displayname maps the categorical keys found in usage exports
// (models, languages, features) to human readable labels.
package displayname

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"aipulse/internal/core"
)

// Resolver maps raw categorical keys to display labels. Implementations
// must resolve a blank key to core.UnknownLabel.
type Resolver interface {
	ModelName(key string) string
	LanguageName(key string) string
	FeatureName(key string) string
}

// Table is a Resolver backed by in-memory lookup maps. Keys missing from
// a map fall back to the raw key.
type Table struct {
	Models    map[string]string `yaml:"models"`
	Languages map[string]string `yaml:"languages"`
	Features  map[string]string `yaml:"features"`
}

// ModelName resolves a model key.
func (t *Table) ModelName(key string) string { return lookup(t.Models, key) }

// LanguageName resolves a language key.
func (t *Table) LanguageName(key string) string { return lookup(t.Languages, key) }

// FeatureName resolves a feature key.
func (t *Table) FeatureName(key string) string { return lookup(t.Features, key) }

func lookup(m map[string]string, key string) string {
	if key == "" {
		return core.UnknownLabel
	}
	if label, ok := m[key]; ok {
		return label
	}
	return key
}

// Default returns the built-in vocabulary covering the keys commonly seen
// in vendor exports.
func Default() *Table {
	return &Table{
		Models: map[string]string{
			"default":           "Base model",
			"gpt-4o":            "GPT-4o",
			"gpt-4o-mini":       "GPT-4o mini",
			"gpt-4.1":           "GPT-4.1",
			"o3-mini":           "o3-mini",
			"claude-3.5-sonnet": "Claude 3.5 Sonnet",
			"claude-3.7-sonnet": "Claude 3.7 Sonnet",
			"gemini-2.0-flash":  "Gemini 2.0 Flash",
		},
		Languages: map[string]string{
			"python":     "Python",
			"javascript": "JavaScript",
			"typescript": "TypeScript",
			"go":         "Go",
			"java":       "Java",
			"csharp":     "C#",
			"cpp":        "C++",
			"c":          "C",
			"ruby":       "Ruby",
			"rust":       "Rust",
			"kotlin":     "Kotlin",
			"swift":      "Swift",
			"php":        "PHP",
			"html":       "HTML",
			"css":        "CSS",
			"shell":      "Shell",
			"sql":        "SQL",
			"yaml":       "YAML",
			"json":       "JSON",
			"markdown":   "Markdown",
		},
		Features: map[string]string{
			core.FeatureCodeCompletion: "Code completion",
			core.FeatureInlineChat:     "Inline chat",
			"panel_chat":               "Chat panel",
			"agent":                    "Agent mode",
			"code_review":              "Code review",
			"commit_message":           "Commit messages",
		},
	}
}

// LoadFile reads a YAML vocabulary from path and merges it over the
// built-in defaults. Entries in the file win on key collisions.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read display names: %w", err)
	}

	var file Table
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse display names: %w", err)
	}

	t := Default()
	for k, v := range file.Models {
		t.Models[k] = v
	}
	for k, v := range file.Languages {
		t.Languages[k] = v
	}
	for k, v := range file.Features {
		t.Features[k] = v
	}
	return t, nil
}
