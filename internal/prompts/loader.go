// Package prompts holds the embedded cover letter prompt templates. A prompt
// file is a flat JSON object of key to template, parsed on first use.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var (
	mu     sync.Mutex
	parsed = map[string]map[string]string{}
)

// Get returns the template stored under key in the named prompt file,
// e.g. Get("cover_letter.json", "system").
func Get(file, key string) (string, error) {
	set, err := load(file)
	if err != nil {
		return "", err
	}
	tmpl, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return tmpl, nil
}

// Format fills {{.Name}} placeholders from data in a single pass.
// Placeholders without a value are left untouched.
func Format(tmpl string, data map[string]string) string {
	oldnew := make([]string, 0, 2*len(data))
	for name, value := range data {
		oldnew = append(oldnew, "{{."+name+"}}", value)
	}
	return strings.NewReplacer(oldnew...).Replace(tmpl)
}

// Render is Get followed by Format.
func Render(file, key string, data map[string]string) (string, error) {
	tmpl, err := Get(file, key)
	if err != nil {
		return "", err
	}
	return Format(tmpl, data), nil
}

func load(file string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()
	if set, ok := parsed[file]; ok {
		return set, nil
	}

	data, err := files.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", file, err)
	}
	var set map[string]string
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", file, err)
	}
	parsed[file] = set
	return set, nil
}
