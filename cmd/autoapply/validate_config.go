package main

import (
	"fmt"

	"github.com/jonathan/job-autoapply/internal/config"
	"github.com/spf13/cobra"
)

var validateConfigCommand = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate the search profile and run mode files",
	RunE:  runValidateConfig,
}

func init() {
	rootCmd.AddCommand(validateConfigCommand)
}

func runValidateConfig(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	profiles, err := config.LoadSearchProfiles(settings.SearchConfigPath)
	if err != nil {
		return err
	}
	mode, err := config.LoadRunMode(settings.ActiveModePath, settings.DryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "✓ %s: %d profiles\n", settings.SearchConfigPath, len(profiles))
	_, _ = fmt.Fprintf(out, "✓ %s: %d active, max_applications=%d, send_applications=%t, dry_run=%t\n",
		settings.ActiveModePath, len(mode.SelectActive(profiles)), mode.MaxApplications, mode.SendApplications, mode.DryRun)

	for _, id := range mode.ActiveProfiles {
		found := false
		for _, p := range profiles {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			_, _ = fmt.Fprintf(out, "! active profile %q is not defined\n", id)
		}
	}
	return nil
}
