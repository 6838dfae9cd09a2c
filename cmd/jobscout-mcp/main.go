package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// searchRequest mirrors the jobscout API request model.
type searchRequest struct {
	Query  string `json:"query"`
	Format string `json:"format,omitempty"`
}

// searchResponse mirrors the parts of the jobscout API response the tool reports.
type searchResponse struct {
	Success  bool   `json:"success"`
	Query    string `json:"query"`
	Count    int    `json:"count"`
	Markdown string `json:"markdown"`
	Error    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

const noResultsText = "No results found, or there was an issue loading the results."

func main() {
	apiURL := os.Getenv("JOBSCOUT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	// Only needed when the server runs with JOBSCOUT_AUTH_ENABLED.
	apiKey := os.Getenv("JOBSCOUT_API_KEY")

	s := server.NewMCPServer(
		"jobscout",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	searchJobsTool := mcp.NewTool("search_jobs",
		mcp.WithDescription("Search the foundit.in job board and list the jobs on the first results page (title, company, location). Drives a real browser, so a call can take up to a minute."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Job search keywords, e.g. 'Python Developer'"),
		),
	)
	s.AddTool(searchJobsTool, handleSearchJobs(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the jobscout API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleSearchJobs(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/search", searchRequest{
			Query:  query,
			Format: "markdown",
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search request failed: %v", err)), nil
		}

		var sr searchResponse
		if err := json.Unmarshal(respBody, &sr); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !sr.Success {
			errMsg := "search failed"
			if sr.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", sr.Error.Code, sr.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		if sr.Count == 0 {
			return mcp.NewToolResultText(noResultsText), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Found %d jobs for '%s'!\n\n%s", sr.Count, sr.Query, sr.Markdown)), nil
	}
}
