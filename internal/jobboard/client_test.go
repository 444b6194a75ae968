package jobboard

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/job-autoapply/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL + "/", AccessToken: "secret", Logger: quietLogger()})
}

func intPtr(n int) *int {
	return &n
}

func TestSearch_BuildsQueryAndNormalizes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vacancies", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "golang", q.Get("text"))
		assert.Equal(t, "0", q.Get("page"))
		assert.Equal(t, "3", q.Get("per_page"))
		assert.Equal(t, "remote,1", q.Get("area"))
		assert.Equal(t, "150000", q.Get("salary_from"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"items": [
			{"id": 11, "title": "Go Dev", "employer": {"name": "Acme"}, "area": "remote",
			 "salary": {"from": 160000, "to": null}, "description": "<p>Build <b>APIs</b></p>"},
			{"id": "12", "salary": {"from": "n/a"}}
		]}`))
	})

	profile := types.SearchProfile{
		ID: "go", Name: "Go", Query: "golang",
		Areas: []string{"remote", "1"}, SalaryMin: intPtr(150000), LimitPerRun: intPtr(3),
	}

	vacancies, err := client.Search(context.Background(), profile)
	require.NoError(t, err)
	require.Len(t, vacancies, 2)

	assert.Equal(t, "11", vacancies[0].ID)
	assert.Equal(t, "Acme", vacancies[0].CompanyName)
	assert.Equal(t, 160000, *vacancies[0].SalaryFrom)
	assert.Nil(t, vacancies[0].SalaryTo)
	assert.Equal(t, "Build APIs", *vacancies[0].Description)

	assert.Equal(t, "12", vacancies[1].ID)
	assert.Equal(t, "Untitled vacancy", vacancies[1].Title)
	assert.Nil(t, vacancies[1].SalaryFrom)
}

func TestSearch_BareArrayAndDefaultPageSize(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		assert.Empty(t, r.URL.Query().Get("area"))
		assert.Empty(t, r.URL.Query().Get("salary_from"))
		_, _ = w.Write([]byte(`[{"id": "a"}, "junk", {"id": "b"}]`))
	})

	vacancies, err := client.Search(context.Background(), types.SearchProfile{ID: "x", Name: "X", Query: "q"})
	require.NoError(t, err)
	require.Len(t, vacancies, 2)
	assert.Equal(t, "a", vacancies[0].ID)
	assert.Equal(t, "b", vacancies[1].ID)
}

func TestSearch_APIErrorPropagates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := client.Search(context.Background(), types.SearchProfile{ID: "x", Name: "X"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "search", apiErr.Op)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vacancies/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 42, "title": "Staff Engineer", "company": "Beta", "url": "https://b.example/42"}`))
	})

	v, err := client.Details(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", v.ID)
	assert.Equal(t, "Staff Engineer", v.Title)
	assert.Equal(t, "Beta", v.CompanyName)
	assert.Equal(t, "https://b.example/42", *v.URL)
}

func TestApply_Real(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "42", body["vacancy_id"])
		assert.Equal(t, "Dear team", body["message"])
		_, _ = w.Write([]byte(`{"status": "submitted", "id": "r-1"}`))
	})

	resp := client.Apply(context.Background(), types.Vacancy{ID: "42"}, "Dear team", false)
	assert.Equal(t, "submitted", resp.Status())
	assert.Equal(t, "r-1", resp["id"])
}

func TestApply_ErrorBecomesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("already applied"))
	})

	resp := client.Apply(context.Background(), types.Vacancy{ID: "42"}, "Dear team", false)
	assert.Equal(t, types.StatusError, resp.Status())
	assert.Contains(t, resp["error"], "409")
	assert.JSONEq(t, `{"vacancy_id": "42", "message": "Dear team"}`, resp["payload"].(string))
}

func TestApply_SimulatedMakesNoRequest(t *testing.T) {
	called := false
	client := newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	})

	letter := strings.Repeat("a", 200)
	resp := client.Apply(context.Background(), types.Vacancy{ID: "7"}, letter, true)

	assert.False(t, called)
	assert.Equal(t, types.StatusDryRun, resp.Status())
	assert.Equal(t, "7", resp["vacancy_id"])
	assert.Len(t, resp["message_preview"], 160)
}

func TestOffline_IsDeterministicAndNetworkFree(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Offline: true, Logger: quietLogger()})
	profile := types.SearchProfile{ID: "go", Name: "Go", Query: "golang", Areas: []string{"msk"}, SalaryMin: intPtr(100000)}

	first, err := client.Search(context.Background(), profile)
	require.NoError(t, err)
	second, err := client.Search(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "demo-1", first[0].ID)
	assert.Equal(t, "msk", *first[0].Area)
	assert.Equal(t, 100000, *first[0].SalaryFrom)
	assert.Equal(t, 120000, *first[2].SalaryFrom)
	assert.Equal(t, 140000, *first[2].SalaryTo)
	assert.Equal(t, "Go (Demo Vacancy #2)", first[1].Title)

	detail, err := client.Details(context.Background(), "demo-2")
	require.NoError(t, err)
	assert.Equal(t, "Demo Vacancy demo-2", detail.Title)
	assert.Equal(t, 180000, *detail.SalaryFrom)

	resp := client.Apply(context.Background(), detail, "letter", false)
	assert.Equal(t, types.StatusDryRun, resp.Status())
}

func TestOffline_DefaultsWithoutProfileHints(t *testing.T) {
	vacancies := fakeVacancies(types.SearchProfile{ID: "x", Name: "X"})
	assert.Equal(t, "remote", *vacancies[0].Area)
	assert.Equal(t, 150000, *vacancies[0].SalaryFrom)
}
