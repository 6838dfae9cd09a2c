package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func callTool(t *testing.T, apiURL, apiKey string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = "search_jobs"
	req.Params.Arguments = args

	res, err := handleSearchJobs(apiURL, apiKey)(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func TestSearchJobs(t *testing.T) {
	var got searchRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			http.NotFound(w, r)
			return
		}
		gotKey = r.Header.Get("X-API-Key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"success":true,"query":"go","count":1,"markdown":"### Go Engineer\n\nAcme\n\nRemote"}`))
	}))
	defer srv.Close()

	res := callTool(t, srv.URL, "secret", map[string]any{"query": "go"})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	text := resultText(t, res)
	if !strings.HasPrefix(text, "Found 1 jobs for 'go'!") || !strings.Contains(text, "### Go Engineer") {
		t.Errorf("text = %q", text)
	}
	if got.Query != "go" || got.Format != "markdown" {
		t.Errorf("request = %+v, want markdown search for go", got)
	}
	if gotKey != "secret" {
		t.Errorf("X-API-Key = %q", gotKey)
	}
}

func TestSearchJobs_NoKeyHeaderWhenUnset(t *testing.T) {
	var sawKey bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawKey = r.Header["X-Api-Key"]
		_, _ = w.Write([]byte(`{"success":true,"query":"go","count":0}`))
	}))
	defer srv.Close()

	res := callTool(t, srv.URL, "", map[string]any{"query": "go"})
	if text := resultText(t, res); text != noResultsText {
		t.Errorf("text = %q, want %q", text, noResultsText)
	}
	if sawKey {
		t.Error("X-API-Key sent without a configured key")
	}
}

func TestSearchJobs_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"SCRAPE_TIMEOUT","message":"search trigger was not clickable"}}`))
	}))
	defer srv.Close()

	res := callTool(t, srv.URL, "", map[string]any{"query": "go"})
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	if text := resultText(t, res); !strings.Contains(text, "[SCRAPE_TIMEOUT]") {
		t.Errorf("text = %q", text)
	}

	res = callTool(t, srv.URL, "", map[string]any{})
	if !res.IsError || resultText(t, res) != "query is required" {
		t.Errorf("missing query not rejected")
	}
}
