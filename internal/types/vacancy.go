package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	defaultVacancyTitle = "Untitled vacancy"
	defaultCompanyName  = "Unknown company"
)

// Vacancy is a normalized job-board search result or detail record.
type Vacancy struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	CompanyName string  `json:"company_name"`
	Area        *string `json:"area,omitempty"`
	SalaryFrom  *int    `json:"salary_from,omitempty"`
	SalaryTo    *int    `json:"salary_to,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
}

// VacancyFromPayload normalizes a raw job-board item into a Vacancy.
// It never fails: unknown shapes and unparsable salaries become absent fields.
func VacancyFromPayload(data map[string]any) Vacancy {
	v := Vacancy{
		ID:          scalarString(data["id"]),
		Title:       firstNonEmpty(stringField(data["title"]), stringField(data["name"]), defaultVacancyTitle),
		CompanyName: firstNonEmpty(nameField(data["company"]), nameField(data["employer"]), defaultCompanyName),
		Area:        optional(areaField(data["area"])),
		Description: optional(stringField(data["description"])),
		URL:         optional(firstNonEmpty(stringField(data["url"]), stringField(data["alternate_url"]))),
	}

	if salary, ok := data["salary"].(map[string]any); ok {
		v.SalaryFrom = ParseSalary(salary["from"])
		v.SalaryTo = ParseSalary(salary["to"])
	}
	return v
}

// ParseSalary converts a numeric payload value into an int.
// Absent, null, or unparsable values yield nil.
func ParseSalary(value any) *int {
	var n int
	switch x := value.(type) {
	case nil:
		return nil
	case int:
		n = x
	case int64:
		n = int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		n = int(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			n = int(i)
		} else if f, err := x.Float64(); err == nil {
			n = int(f)
		} else {
			return nil
		}
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	return &n
}

// DescriptionOr returns the description or the given fallback when absent.
func (v Vacancy) DescriptionOr(fallback string) string {
	if v.Description == nil || *v.Description == "" {
		return fallback
	}
	return *v.Description
}

func scalarString(value any) string {
	switch x := value.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func stringField(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// nameField accepts either a plain string or an object carrying a "name".
func nameField(value any) string {
	switch x := value.(type) {
	case string:
		return x
	case map[string]any:
		return stringField(x["name"])
	}
	return ""
}

// areaField prefers the area code over its display name for object areas.
func areaField(value any) string {
	switch x := value.(type) {
	case string:
		return x
	case map[string]any:
		if id := scalarString(x["id"]); id != "" {
			return id
		}
		return stringField(x["name"])
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
