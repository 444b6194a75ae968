package db

import (
	"time"

	"github.com/jonathan/job-autoapply/internal/types"
)

// DemoEntries returns the rows loaded by init-db --demo.
func DemoEntries() []types.ApplicationLogEntry {
	snippet1 := "This is a demo cover letter for Backend Developer at Demo Corp."
	snippet2 := "This is a demo cover letter for Data Engineer at Sample Labs."
	resp1 := `{"status":"dry_run","vacancy_id":"demo-1001"}`
	resp2 := `{"status":"dry_run","vacancy_id":"demo-1002"}`
	seededAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	return []types.ApplicationLogEntry{
		{
			VacancyID:          "demo-1001",
			ProfileName:        "Demo profile",
			Status:             types.StatusDryRun,
			AppliedAt:          seededAt,
			CoverLetterSnippet: &snippet1,
			RawResponse:        &resp1,
		},
		{
			VacancyID:          "demo-1002",
			ProfileName:        "Demo profile",
			Status:             types.StatusDryRun,
			AppliedAt:          seededAt.Add(time.Hour),
			CoverLetterSnippet: &snippet2,
			RawResponse:        &resp2,
		},
	}
}
