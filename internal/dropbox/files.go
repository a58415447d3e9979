package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Client talks to the Dropbox files API
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     zerolog.Logger
}

// NewClient creates a files API client authorized with tokens from src
func NewClient(baseURL string, base *http.Client, src oauth2.TokenSource, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newAuthorizedClient(base, src),
		logger:     logger,
	}
}

// ListFolder returns every entry of path, following cursors until the
// listing is complete. "" and "/" both mean the root folder.
func (c *Client) ListFolder(ctx context.Context, path string, recursive bool) ([]Entry, error) {
	var page listFolderResponse
	req := listFolderRequest{Path: normalizePath(path), Recursive: recursive}
	if err := c.rpc(ctx, "/files/list_folder", req, &page); err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", displayPath(req.Path), err)
	}

	entries := page.Entries
	for page.HasMore {
		c.logger.Debug().
			Int("entries", len(entries)).
			Msg("Listing has more entries, continuing")

		cursor := page.Cursor
		page = listFolderResponse{}
		if err := c.rpc(ctx, "/files/list_folder/continue", listFolderContinueRequest{Cursor: cursor}, &page); err != nil {
			return nil, fmt.Errorf("failed to continue listing %q: %w", displayPath(req.Path), err)
		}
		entries = append(entries, page.Entries...)
	}

	c.logger.Debug().
		Str("path", displayPath(req.Path)).
		Int("entries", len(entries)).
		Msg("Folder listed")
	return entries, nil
}

// rpc POSTs in as JSON to an RPC-style endpoint and decodes the reply into out
func (c *Client) rpc(ctx context.Context, endpoint string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var errorBody bytes.Buffer
	errorBody.ReadFrom(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(errorBody.Bytes(), apiErr); err == nil && apiErr.Summary != "" {
		return apiErr
	}
	return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(errorBody.String()))
}

// normalizePath maps the root to "" and makes other paths absolute.
// Identifiers such as "id:abc" are passed through.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return ""
	}
	if strings.Contains(path, ":") {
		return path
	}
	path = strings.TrimRight(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
