package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleWeb translates through the public web endpoint (client=gtx). It
// needs no API key and auto-detects the source language.
type GoogleWeb struct {
	// TargetLang is the target language code, e.g. "gu". Required.
	TargetLang string
	// BaseURL overrides the endpoint, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

func (g *GoogleWeb) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(g.TargetLang) == "" {
		return "", fmt.Errorf("missing target language")
	}
	base := g.BaseURL
	if base == "" {
		base = "https://translate.googleapis.com"
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/translate_a/single"
	q := u.Query()
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", g.TargetLang)
	q.Set("dt", "t")
	q.Set("q", text)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	hc := g.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("translate status: %d", resp.StatusCode)
	}
	// Response shape: [[[translated, original, ...], ...], ...]
	var outer []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&outer); err != nil {
		return "", fmt.Errorf("decode translation: %w", err)
	}
	if len(outer) == 0 {
		return "", fmt.Errorf("empty translation response")
	}
	var segments [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}
	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(seg[0], &piece); err != nil {
			continue
		}
		b.WriteString(piece)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("empty translation for %q", truncateForLog(text))
	}
	return out, nil
}

func truncateForLog(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
