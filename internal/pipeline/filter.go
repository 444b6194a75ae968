package pipeline

import "github.com/jonathan/job-autoapply/internal/types"

const (
	snippetLength   = 180
	snippetEllipsis = "..."
)

// FilterVacancies keeps the vacancies that satisfy the profile's salary and
// area rules, preserving order. Missing salary or area never excludes a vacancy.
func FilterVacancies(vacancies []types.Vacancy, profile types.SearchProfile) []types.Vacancy {
	filtered := make([]types.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if profile.HasSalaryMin() && v.SalaryFrom != nil && *v.SalaryFrom > 0 && *v.SalaryFrom < *profile.SalaryMin {
			continue
		}
		if len(profile.Areas) > 0 && v.Area != nil && *v.Area != "" && !profile.AllowsArea(*v.Area) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

// truncate caps the list at limit entries.
func truncate(vacancies []types.Vacancy, limit int) []types.Vacancy {
	if limit < 0 {
		limit = 0
	}
	if len(vacancies) > limit {
		return vacancies[:limit]
	}
	return vacancies
}

// Snippet returns the stored preview of a cover letter.
func Snippet(letter string) string {
	runes := []rune(letter)
	if len(runes) <= snippetLength {
		return letter
	}
	return string(runes[:snippetLength]) + snippetEllipsis
}

// deriveStatus prefers the status reported by the apply call.
func deriveStatus(resp types.ApplyResponse, send, dryRun bool) string {
	if s := resp.Status(); s != "" {
		return s
	}
	if send && !dryRun {
		return types.StatusApplied
	}
	return types.StatusDryRun
}
