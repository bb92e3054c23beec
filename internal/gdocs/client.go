package gdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the rich-document service's v1 REST surface: document
// creation and batched updates.
type Client struct {
	// Token is the bearer token used on every request. Required.
	Token string
	// BaseURL overrides the service endpoint, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return "https://docs.googleapis.com"
}

// CreateDocument creates an empty document and returns its id.
func (c *Client) CreateDocument(ctx context.Context, title string) (string, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return "", err
	}
	var out struct {
		DocumentID string `json:"documentId"`
	}
	if err := c.post(ctx, c.baseURL()+"/v1/documents", body, &out); err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	if out.DocumentID == "" {
		return "", fmt.Errorf("create document: service returned no id")
	}
	return out.DocumentID, nil
}

// BatchUpdate submits the whole operation batch for one document in a single
// atomic call. Rejection leaves the document in whatever partial state the
// service produced; callers log and move on to the next category.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []Request) error {
	body, err := json.Marshal(map[string]any{"requests": requests})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/v1/documents/%s:batchUpdate", c.baseURL(), documentID)
	if err := c.post(ctx, url, body, nil); err != nil {
		return fmt.Errorf("batch update %s: %w", documentID, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("document service status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
