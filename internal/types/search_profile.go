package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fallbackCandidateText is used when a profile carries no usable candidate description.
const fallbackCandidateText = "Generalist candidate"

// SearchProfile is a named vacancy query loaded from the profile configuration file.
type SearchProfile struct {
	ID               string           `json:"id" validate:"required"`
	Name             string           `json:"name" validate:"required"`
	Query            string           `json:"query"`
	Areas            []string         `json:"areas,omitempty"`
	SalaryMin        *int             `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	LimitPerRun      *int             `json:"limit_per_run,omitempty" validate:"omitempty,gte=0"`
	CandidateProfile CandidateProfile `json:"candidate_profile,omitempty"`
}

// Validate validates the SearchProfile using the validator.
func (p *SearchProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// EffectiveLimit returns the per-run vacancy cap for this profile.
// An unset or zero limit falls back to the run-wide maximum.
func (p *SearchProfile) EffectiveLimit(maxApplications int) int {
	if p.LimitPerRun != nil && *p.LimitPerRun > 0 {
		return *p.LimitPerRun
	}
	return maxApplications
}

// HasSalaryMin reports whether the profile restricts vacancies by minimum salary.
func (p *SearchProfile) HasSalaryMin() bool {
	return p.SalaryMin != nil && *p.SalaryMin > 0
}

// AllowsArea reports whether area is listed in the profile's areas.
func (p *SearchProfile) AllowsArea(area string) bool {
	for _, a := range p.Areas {
		if a == area {
			return true
		}
	}
	return false
}

// KeyValue is a single ordered entry of a candidate profile mapping.
type KeyValue struct {
	Key   string
	Value json.RawMessage
}

// CandidateProfile holds the free-form candidate description of a profile.
// It is either plain text, an ordered key/value mapping, or absent.
type CandidateProfile struct {
	Text  *string
	Pairs []KeyValue
	isMap bool
}

// UnmarshalJSON decodes a string or an object while keeping object key order.
func (c *CandidateProfile) UnmarshalJSON(data []byte) error {
	*c = CandidateProfile{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		c.Text = &s
		return nil
	case '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil {
			return err
		}
		c.isMap = true
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := tok.(string)
			if !ok {
				return fmt.Errorf("candidate_profile: unexpected key %v", tok)
			}
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return fmt.Errorf("candidate_profile.%s: %w", key, err)
			}
			c.Pairs = append(c.Pairs, KeyValue{Key: key, Value: value})
		}
		_, err := dec.Token()
		return err
	default:
		// Any other shape is kept as "unknown" and renders to the fallback text.
		return nil
	}
}

// MarshalJSON writes the candidate profile back in its original shape.
func (c CandidateProfile) MarshalJSON() ([]byte, error) {
	if c.Text != nil {
		return json.Marshal(*c.Text)
	}
	if !c.isMap {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range c.Pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(kv.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Render turns the candidate profile into the text handed to the letter generator.
// Text is used as-is; a mapping becomes "key: value" pairs joined with "; ".
func (c CandidateProfile) Render() string {
	if c.Text != nil {
		return *c.Text
	}
	if !c.isMap {
		return fallbackCandidateText
	}
	parts := make([]string, 0, len(c.Pairs))
	for _, kv := range c.Pairs {
		parts = append(parts, fmt.Sprintf("%s: %s", kv.Key, renderValue(kv.Value)))
	}
	return strings.Join(parts, "; ")
}

// renderValue prints strings without quotes and anything else as compact JSON.
func renderValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
