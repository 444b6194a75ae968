package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jonathan/job-autoapply/internal/schemas"
	"github.com/jonathan/job-autoapply/internal/types"
	schemafiles "github.com/jonathan/job-autoapply/schemas"
)

// profilesFile is the on-disk layout of the search profile configuration.
type profilesFile struct {
	Profiles []types.SearchProfile `json:"profiles"`
}

// modeFile keeps pointers so absent keys can be told apart from explicit zero values.
type modeFile struct {
	ActiveProfiles   []string `json:"active_profiles"`
	MaxApplications  *int     `json:"max_applications"`
	SendApplications *bool    `json:"send_applications"`
	DryRun           *bool    `json:"dry_run"`
}

// LoadSearchProfiles reads, schema-validates and decodes the profile file.
// Profile order is preserved.
func LoadSearchProfiles(path string) ([]types.SearchProfile, error) {
	data, err := readDocument(path, schemafiles.SearchProfiles)
	if err != nil {
		return nil, err
	}

	var file profilesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse profiles JSON", Cause: err}
	}

	for i := range file.Profiles {
		if err := file.Profiles[i].Validate(); err != nil {
			return nil, &LoadError{Path: path, Message: "invalid profile " + file.Profiles[i].ID, Cause: err}
		}
	}
	return file.Profiles, nil
}

// LoadRunMode reads the run mode file. Keys missing from the file take the
// package defaults; a missing dry_run falls back to defaultDryRun.
func LoadRunMode(path string, defaultDryRun bool) (*types.RunModeConfig, error) {
	data, err := readDocument(path, schemafiles.RunMode)
	if err != nil {
		return nil, err
	}

	var file modeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse run mode JSON", Cause: err}
	}

	mode := &types.RunModeConfig{
		ActiveProfiles:   file.ActiveProfiles,
		MaxApplications:  types.DefaultMaxApplications,
		SendApplications: types.DefaultSendApplications,
		DryRun:           defaultDryRun,
	}
	if file.MaxApplications != nil {
		mode.MaxApplications = *file.MaxApplications
	}
	if file.SendApplications != nil {
		mode.SendApplications = *file.SendApplications
	}
	if file.DryRun != nil {
		mode.DryRun = *file.DryRun
	}

	if err := mode.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid run mode", Cause: err}
	}
	return mode, nil
}

// readDocument loads a file and validates it against the named embedded schema.
func readDocument(path, schemaName string) ([]byte, error) {
	if path == "" {
		return nil, &LoadError{Path: "(empty)", Message: "config path is empty"}
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, &LoadError{Path: path, Message: "failed to get current directory", Cause: err}
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read config file", Cause: err}
	}

	schema, err := schemafiles.Get(schemaName)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "schema unavailable", Cause: err}
	}
	if err := schemas.ValidateBytes(schema, data); err != nil {
		return nil, &LoadError{Path: path, Message: "schema validation failed", Cause: err}
	}
	return data, nil
}
