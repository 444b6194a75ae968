// Package jobboard is a client for the job-board REST API: vacancy search,
// vacancy details and application submission. In offline mode every
// operation is answered locally with deterministic data.
package jobboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/job-autoapply/internal/fetch"
	"github.com/jonathan/job-autoapply/internal/types"
)

const (
	// defaultPerPage is the page size requested when a profile sets no limit.
	defaultPerPage = 20
	// previewLength bounds the letter preview in simulated apply responses.
	previewLength = 160
)

// Config configures a Client.
type Config struct {
	BaseURL     string
	AccessToken string
	// Offline answers search and detail requests with synthetic vacancies
	// and forces every apply to be simulated.
	Offline bool
	Logger  *slog.Logger
}

// Client talks to the job-board API.
type Client struct {
	baseURL string
	offline bool
	http    *fetch.Client
	logger  *slog.Logger
}

// NewClient creates a job-board client.
func NewClient(cfg Config) *Client {
	headers := map[string]string{}
	if cfg.AccessToken != "" {
		headers["Authorization"] = "Bearer " + cfg.AccessToken
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := fetch.DefaultOptions()
	opts.Headers = headers

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		offline: cfg.Offline,
		http:    fetch.NewClient(opts),
		logger:  logger.With("component", "jobboard"),
	}
}

// Offline reports whether the client answers locally.
func (c *Client) Offline() bool {
	return c.offline
}

// Search returns the vacancies matching a profile's query.
func (c *Client) Search(ctx context.Context, profile types.SearchProfile) ([]types.Vacancy, error) {
	if c.offline {
		c.logger.Info("using offline demo vacancies", "profile", profile.Name)
		return fakeVacancies(profile), nil
	}

	params := url.Values{}
	params.Set("text", profile.Query)
	params.Set("page", "0")
	params.Set("per_page", strconv.Itoa(profile.EffectiveLimit(defaultPerPage)))
	if len(profile.Areas) > 0 {
		params.Set("area", strings.Join(profile.Areas, ","))
	}
	if profile.HasSalaryMin() {
		params.Set("salary_from", strconv.Itoa(*profile.SalaryMin))
	}

	c.logger.Debug("request", "method", "GET", "path", "/vacancies", "profile", profile.ID)

	var payload any
	if err := c.http.GetJSON(ctx, c.baseURL+"/vacancies", params, &payload); err != nil {
		return nil, c.wrap("search", err)
	}

	items := searchItems(payload)
	vacancies := make([]types.Vacancy, 0, len(items))
	for _, item := range items {
		vacancies = append(vacancies, c.normalize(item))
	}
	return vacancies, nil
}

// Details fetches the full record for one vacancy.
func (c *Client) Details(ctx context.Context, vacancyID string) (types.Vacancy, error) {
	if c.offline {
		c.logger.Info("returning offline demo vacancy details", "vacancy_id", vacancyID)
		return fakeVacancyDetails(vacancyID), nil
	}

	path := "/vacancies/" + url.PathEscape(vacancyID)
	c.logger.Debug("request", "method", "GET", "path", path)

	var payload map[string]any
	if err := c.http.GetJSON(ctx, c.baseURL+path, nil, &payload); err != nil {
		return types.Vacancy{}, c.wrap("details", err)
	}
	return c.normalize(payload), nil
}

// Apply submits an application, or simulates it when simulate is set or the
// client is offline. Transport and API failures are reported in the
// returned response with status "error" instead of as an error value.
func (c *Client) Apply(ctx context.Context, vacancy types.Vacancy, coverLetter string, simulate bool) types.ApplyResponse {
	if simulate || c.offline {
		c.logger.Info("dry-run apply", "vacancy_id", vacancy.ID)
		return types.ApplyResponse{
			"status":          types.StatusDryRun,
			"vacancy_id":      vacancy.ID,
			"message_preview": preview(coverLetter, previewLength),
		}
	}

	payload := map[string]string{"vacancy_id": vacancy.ID, "message": coverLetter}

	var response types.ApplyResponse
	if err := c.http.PostJSON(ctx, c.baseURL+"/responses", payload, &response); err != nil {
		c.logger.Error("failed to apply", "vacancy_id", vacancy.ID, "error", err)
		encoded, _ := json.Marshal(payload)
		return types.ApplyResponse{
			"status":  types.StatusError,
			"error":   err.Error(),
			"payload": string(encoded),
		}
	}
	if response == nil {
		response = types.ApplyResponse{}
	}
	return response
}

// normalize converts a payload item and reduces an HTML description to text.
func (c *Client) normalize(item map[string]any) types.Vacancy {
	v := types.VacancyFromPayload(item)
	if v.Description != nil {
		text, err := fetch.HTMLToText(*v.Description)
		if err != nil {
			c.logger.Warn("keeping raw description", "vacancy_id", v.ID, "error", err)
		} else {
			v.Description = &text
		}
	}
	return v
}

func (c *Client) wrap(op string, err error) error {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) && fetchErr.StatusCode != 0 {
		c.logger.Error("API error", "op", op, "status", fetchErr.StatusCode, "body", fetchErr.Body)
		return &APIError{Op: op, StatusCode: fetchErr.StatusCode, Body: fetchErr.Body, Cause: err}
	}
	return &APIError{Op: op, Cause: err}
}

// searchItems accepts either {"items": [...]} or a bare array.
func searchItems(payload any) []map[string]any {
	var raw []any
	switch p := payload.(type) {
	case map[string]any:
		raw, _ = p["items"].([]any)
	case []any:
		raw = p
	}

	items := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// APIError reports a failed job-board request.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("job board %s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("job board %s failed: %v", e.Op, e.Cause)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
