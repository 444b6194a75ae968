// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-autoapply/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintActiveProfiles lists the profiles selected for this run.
func (p *Printer) PrintActiveProfiles(profiles []types.SearchProfile, mode types.RunModeConfig, dryRun bool) {
	if p == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Max applications: %d\n", mode.MaxApplications))
	sb.WriteString(fmt.Sprintf("Send:             %t\n", mode.SendApplications))
	sb.WriteString(fmt.Sprintf("Dry run:          %t\n", dryRun))
	sb.WriteString("\n")

	if len(profiles) == 0 {
		sb.WriteString("No active profiles")
	}
	for i, profile := range profiles {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more", len(profiles)-maxItemsToShow))
			break
		}
		line := fmt.Sprintf("• %s (%s)", profile.Name, profile.ID)
		if i < len(profiles)-1 {
			line += "\n"
		}
		sb.WriteString(line)
	}

	p.printBox("Active Profiles", sb.String())
}

// PrintApplication outputs the result of one processed vacancy.
func (p *Printer) PrintApplication(entry types.ApplicationLogEntry, vacancy types.Vacancy) {
	if p == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Vacancy:  %s\n", vacancy.ID))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", vacancy.Title))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", vacancy.CompanyName))
	if vacancy.Area != nil {
		sb.WriteString(fmt.Sprintf("Area:     %s\n", *vacancy.Area))
	}
	sb.WriteString(fmt.Sprintf("Profile:  %s\n", entry.ProfileName))
	sb.WriteString(fmt.Sprintf("Status:   %s", entry.Status))
	if entry.CoverLetterSnippet != nil {
		sb.WriteString(fmt.Sprintf("\n\n%s", *entry.CoverLetterSnippet))
	}

	p.printBox("Application", sb.String())
}

// PrintSummary outputs the run counters.
func (p *Printer) PrintSummary(summary types.RunSummary) {
	if p == nil {
		return
	}
	p.printBox("Run Summary", fmt.Sprintf("Processed: %d\nLogged:    %d", summary.Processed, summary.Logged))
}

// PrintHistory outputs log entries, newest first.
func (p *Printer) PrintHistory(entries []types.ApplicationLogEntry) {
	if p == nil {
		return
	}

	if len(entries) == 0 {
		p.printBox("Application History", "No applications logged")
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s  %-8s %s", e.AppliedAt.UTC().Format("2006-01-02 15:04"), e.Status, e.VacancyID))
	}
	p.printBox(fmt.Sprintf("Application History (%d)", len(entries)), strings.Join(lines, "\n"))
}
