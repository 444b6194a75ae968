package jobboard

import (
	"fmt"

	"github.com/jonathan/job-autoapply/internal/types"
)

const (
	demoCompany    = "Demo Company"
	demoArea       = "remote"
	demoBaseSalary = 150000
	demoCount      = 3
)

// fakeVacancies synthesizes a small deterministic result set for a profile.
func fakeVacancies(profile types.SearchProfile) []types.Vacancy {
	area := demoArea
	if len(profile.Areas) > 0 {
		area = profile.Areas[0]
	}
	base := demoBaseSalary
	if profile.HasSalaryMin() {
		base = *profile.SalaryMin
	}

	items := make([]types.Vacancy, 0, demoCount)
	for idx := 1; idx <= demoCount; idx++ {
		id := fmt.Sprintf("demo-%d", idx)
		salaryFrom := base + (idx-1)*10000
		salaryTo := salaryFrom + 20000
		items = append(items, types.Vacancy{
			ID:          id,
			Title:       fmt.Sprintf("%s (Demo Vacancy #%d)", profile.Name, idx),
			CompanyName: demoCompany,
			Area:        strPtr(area),
			SalaryFrom:  &salaryFrom,
			SalaryTo:    &salaryTo,
			Description: strPtr(fmt.Sprintf(
				"This is a demo vacancy for profile '%s'. Used in offline dry-run mode without hitting the API.",
				profile.Query)),
			URL: strPtr("https://example.com/demo-vacancies/" + id),
		})
	}
	return items
}

// fakeVacancyDetails returns a deterministic detail record for any id.
func fakeVacancyDetails(vacancyID string) types.Vacancy {
	salaryFrom, salaryTo := 180000, 210000
	return types.Vacancy{
		ID:          vacancyID,
		Title:       "Demo Vacancy " + vacancyID,
		CompanyName: demoCompany,
		Area:        strPtr(demoArea),
		SalaryFrom:  &salaryFrom,
		SalaryTo:    &salaryTo,
		Description: strPtr("Offline demo vacancy details. No network request was made."),
		URL:         strPtr("https://example.com/demo-vacancies/" + vacancyID),
	}
}

func strPtr(s string) *string {
	return &s
}
