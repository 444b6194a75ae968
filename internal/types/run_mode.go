package types

import "github.com/go-playground/validator/v10"

// Run mode defaults applied when the mode file omits a key.
const (
	DefaultMaxApplications  = 5
	DefaultSendApplications = false
	DefaultDryRun           = true
)

// RunModeConfig is the per-run policy loaded fresh on every invocation.
type RunModeConfig struct {
	ActiveProfiles   []string `json:"active_profiles"`
	MaxApplications  int      `json:"max_applications" validate:"gte=0"`
	SendApplications bool     `json:"send_applications"`
	DryRun           bool     `json:"dry_run"`
}

// Validate validates the RunModeConfig using the validator.
func (m *RunModeConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(m)
}

// IsActive reports whether a profile id is listed as active for this run.
func (m *RunModeConfig) IsActive(profileID string) bool {
	for _, id := range m.ActiveProfiles {
		if id == profileID {
			return true
		}
	}
	return false
}

// SelectActive returns the profiles whose id is active, preserving their order.
func (m *RunModeConfig) SelectActive(profiles []SearchProfile) []SearchProfile {
	var active []SearchProfile
	for _, p := range profiles {
		if m.IsActive(p.ID) {
			active = append(active, p)
		}
	}
	return active
}
