// Package prompts holds the counselor prompt templates. Each embedded JSON
// file maps prompt keys to text/template sources.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

// file is one parsed prompt file.
type file struct {
	sources map[string]string
	tmpl    *template.Template
}

var (
	filesMu sync.Mutex
	files   = map[string]*file{}
)

// Get returns the raw template source of key in filename (e.g. "counseling.json").
func Get(filename, key string) (string, error) {
	f, err := load(filename)
	if err != nil {
		return "", err
	}
	src, ok := f.sources[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return src, nil
}

// Render executes the prompt key of filename with data. Every placeholder
// must have a value in data.
func Render(filename, key string, data map[string]string) (string, error) {
	f, err := load(filename)
	if err != nil {
		return "", err
	}
	t := f.tmpl.Lookup(key)
	if t == nil {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("prompt %s/%s: %w", filename, key, err)
	}
	return sb.String(), nil
}

// Keys returns the sorted prompt keys of filename.
func Keys(filename string) ([]string, error) {
	f, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.sources))
	for k := range f.sources {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func load(filename string) (*file, error) {
	filesMu.Lock()
	defer filesMu.Unlock()

	if f, ok := files[filename]; ok {
		return f, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var sources map[string]string
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	root := template.New(filename).Option("missingkey=error")
	for key, src := range sources {
		if _, err := root.New(key).Parse(src); err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s/%s: %w", filename, key, err)
		}
	}

	f := &file{sources: sources, tmpl: root}
	files[filename] = f
	return f, nil
}
