package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-autoapply/internal/llm"
	"github.com/spf13/cobra"
)

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Print resolved settings and available capabilities",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCommand)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Database:        %s\n", redactURL(s.DatabaseURL))
	_, _ = fmt.Fprintf(out, "Search config:   %s\n", s.SearchConfigPath)
	_, _ = fmt.Fprintf(out, "Mode config:     %s\n", s.ActiveModePath)
	_, _ = fmt.Fprintf(out, "Job board:       %s\n", s.JobBoardBaseURL)
	_, _ = fmt.Fprintf(out, "Dry run:         %t\n", s.DryRun)
	_, _ = fmt.Fprintf(out, "LLM provider:    %s\n", s.LLMProvider)
	_, _ = fmt.Fprintf(out, "LLM model:       %s\n", llmConfig(s).GetModel(llm.TierStandard))
	_, _ = fmt.Fprintf(out, "Cover letters:   %s\n", availability(s.LLMAPIKey() != "", "model", "simulated"))
	_, _ = fmt.Fprintf(out, "Job board token: %s\n", availability(s.JobBoardAccessToken != "", "set", "not set"))
	return nil
}

func availability(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// redactURL hides the password of a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return "(not set)"
	}
	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		return raw
	}
	creds, host, hasCreds := strings.Cut(rest, "@")
	if !hasCreds {
		return raw
	}
	user, _, hasPass := strings.Cut(creds, ":")
	if !hasPass {
		return raw
	}
	return scheme + "://" + user + ":****@" + host
}
