package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("text"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"id": 7}]}`))
	}))
	defer server.Close()

	client := NewClient(&Options{Headers: map[string]string{"Authorization": "Bearer tok"}})

	var out map[string]any
	err := client.GetJSON(context.Background(), server.URL, url.Values{"text": {"golang"}}, &out)
	require.NoError(t, err)

	items := out["items"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, json.Number("7"), first["id"])
}

func TestPostJSON_SendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["message"])
		_, _ = w.Write([]byte(`{"status": "created"}`))
	}))
	defer server.Close()

	var out map[string]any
	err := NewClient(nil).PostJSON(context.Background(), server.URL, map[string]string{"message": "hello"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "created", out["status"])
}

func TestDo_InvalidURL(t *testing.T) {
	_, err := NewClient(nil).Do(context.Background(), http.MethodGet, "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestDo_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(strings.Repeat("x", 800)))
	}))
	defer server.Close()

	result, err := NewClient(nil).Do(context.Background(), http.MethodGet, server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusForbidden, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Len(t, fetchErr.Body, 500)
	assert.Contains(t, err.Error(), "403")
}

func TestGetJSON_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	var out map[string]any
	err := NewClient(nil).GetJSON(context.Background(), server.URL, nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode JSON response")
}

func TestHTMLToText(t *testing.T) {
	html := `<p>We build <strong>payments</strong>.</p><ul><li>Go</li><li>Postgres</li></ul><script>alert(1)</script>`

	text, err := HTMLToText(html)
	require.NoError(t, err)
	assert.Equal(t, "We build payments.\nGo\nPostgres", text)
}

func TestHTMLToText_PlainText(t *testing.T) {
	text, err := HTMLToText("  plain   text \n\n second line ")
	require.NoError(t, err)
	assert.Equal(t, "plain text\nsecond line", text)
}
