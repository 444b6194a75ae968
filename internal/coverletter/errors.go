package coverletter

import "fmt"

// GenerationError represents a failed call to the language model
type GenerationError struct {
	VacancyID string
	Message   string
	Cause     error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cover letter generation failed for vacancy %s: %s: %v", e.VacancyID, e.Message, e.Cause)
	}
	return fmt.Sprintf("cover letter generation failed for vacancy %s: %s", e.VacancyID, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
