// Package telegram is the delivery adapter for the messaging channel: it
// ships the rendered artifact with a caption and plain text messages.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CaptionLimit is the channel's maximum caption length in characters.
// Longer captions are truncated with an ellipsis on the document and the
// full text follows as a separate message.
const CaptionLimit = 1024

// Client talks to the Bot API for one channel.
type Client struct {
	Token   string
	ChatID  string
	// BaseURL overrides the API host, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) endpoint(method string) string {
	base := c.BaseURL
	if base == "" {
		base = "https://api.telegram.org"
	}
	return fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(base, "/"), c.Token, method)
}

// SendDocument uploads document bytes with a caption. Captions over the
// limit are shortened on the document itself and the full caption is sent as
// a follow-up message.
func (c *Client) SendDocument(ctx context.Context, document []byte, filename, caption string) error {
	short := caption
	followUp := false
	if len([]rune(caption)) > CaptionLimit {
		r := []rune(caption)
		short = string(r[:CaptionLimit-3]) + "..."
		followUp = true
	}
	if err := c.uploadDocument(ctx, document, filename, short); err != nil {
		return err
	}
	if followUp {
		return c.SendMessage(ctx, caption)
	}
	return nil
}

func (c *Client) uploadDocument(ctx context.Context, document []byte, filename, caption string) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", c.ChatID); err != nil {
		return err
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile("document", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(document); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendDocument"), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

// SendMessage sends a plain text message to the channel.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	form := url.Values{}
	form.Set("chat_id", c.ChatID)
	form.Set("text", text)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendMessage"),
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var apiResp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("bot api status %d", resp.StatusCode)
		}
		return fmt.Errorf("decode bot api response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("bot api error: %s", apiResp.Description)
	}
	return nil
}
