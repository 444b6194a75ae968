// Package schemas embeds the JSON Schemas for the run configuration files.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	SearchProfiles = "search_profiles.schema.json"
	RunMode        = "run_mode.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Get returns the raw content of an embedded schema file.
func Get(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s not embedded: %w", name, err)
	}
	return data, nil
}

// Names lists every embedded schema file.
func Names() []string {
	return []string{SearchProfiles, RunMode}
}
