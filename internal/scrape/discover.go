package scrape

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/ajayambaliya/mcqcurrent/internal/fetch"
)

// DiscoverURLs walks the paginated article listing and collects article
// links in page order. Page 1 is baseURL itself; page N appends "page/N/".
// Per-page fetch or parse failures are logged and skipped.
func DiscoverURLs(ctx context.Context, client *fetch.Client, baseURL string, pages int) []string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	var urls []string
	for page := 1; page <= pages; page++ {
		pageURL := baseURL
		if page > 1 {
			pageURL = fmt.Sprintf("%spage/%d/", baseURL, page)
		}
		body, err := client.GetHTML(ctx, pageURL)
		if err != nil {
			log.Warn().Err(err).Str("url", pageURL).Msg("listing fetch failed; skipping page")
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			log.Warn().Err(err).Str("url", pageURL).Msg("listing parse failed; skipping page")
			continue
		}
		doc.Find("h1#list a").Each(func(_ int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok && href != "" {
				urls = append(urls, href)
			}
		})
	}
	log.Info().Int("count", len(urls)).Msg("discovered article urls")
	return urls
}
