package scrape

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/ajayambaliya/mcqcurrent/internal/content"
	"github.com/ajayambaliya/mcqcurrent/internal/fetch"
	"github.com/ajayambaliya/mcqcurrent/internal/translate"
)

var categoryRe = regexp.MustCompile(`Category: (.+)`)

// Container class markers excluded from content. Membership is decided by
// class/tag, never by content heuristics.
var excludedClassMarkers = []string{
	"sharethis-inline-share-buttons",
	"prenext",
	"breadcrumb",
	"comment",
}

// Extractor turns one article URL into a bilingual block sequence. It never
// fails past its boundary: on any irrecoverable structural problem it logs
// the cause and returns an empty sequence, which callers treat as "skip".
type Extractor struct {
	Client     *fetch.Client
	Translator translate.Translator
	Strategies []LayoutStrategy
}

// Extract fetches pageURL, matches a layout strategy, and returns the
// article's block sequence plus its detected category ("" when absent).
func (e *Extractor) Extract(ctx context.Context, pageURL string) ([]content.Block, string) {
	body, err := e.Client.GetHTML(ctx, pageURL)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("article fetch failed; skipping")
		return nil, ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("article parse failed; skipping")
		return nil, ""
	}

	strategies := e.Strategies
	if len(strategies) == 0 {
		strategies = Strategies()
	}
	var strat LayoutStrategy
	var root *goquery.Selection
	for _, s := range strategies {
		if r := s.MatchRoot(doc); r != nil {
			strat, root = s, r
			break
		}
	}
	if strat == nil {
		log.Warn().Str("url", pageURL).Msg("no layout strategy matched; skipping")
		return nil, ""
	}

	heading := strat.Heading(doc, root)
	if heading == nil {
		log.Warn().Str("url", pageURL).Str("layout", strat.Name()).Msg("heading not found; skipping")
		return nil, ""
	}
	headingText := strings.TrimSpace(heading.Text())
	if headingText == "" {
		log.Warn().Str("url", pageURL).Str("layout", strat.Name()).Msg("empty heading; skipping")
		return nil, ""
	}

	imageURL, _ := strat.FeaturedImage(doc)

	blocks := []content.Block{
		{Kind: content.Heading, Text: e.translated(ctx, headingText), Language: content.Translated, ImageURL: imageURL},
		{Kind: content.Heading, Text: headingText, Language: content.Original},
	}

	category := detectCategory(root)
	if category == "" {
		log.Warn().Str("url", pageURL).Msg("no category detected")
	} else {
		log.Debug().Str("url", pageURL).Str("category", category).Msg("category detected")
	}

	// Ordinals are per article, shared by both language copies of an item.
	ordinal := 0
	root.Children().Each(func(_ int, s *goquery.Selection) {
		if isExcluded(s) {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" || categoryRe.MatchString(text) {
			return
		}
		switch goquery.NodeName(s) {
		case "p":
			blocks = append(blocks, e.pair(ctx, content.Paragraph, text, 0)...)
		case "h2":
			blocks = append(blocks, e.pair(ctx, content.SubHeading, text, 0)...)
		case "h4":
			blocks = append(blocks, e.pair(ctx, content.SubSubHeading, text, 0)...)
		case "ul":
			s.Find("li").Each(func(_ int, li *goquery.Selection) {
				liText := strings.TrimSpace(li.Text())
				if liText == "" {
					return
				}
				blocks = append(blocks, e.pair(ctx, content.BulletItem, liText, 0)...)
			})
		case "ol":
			s.Find("li").Each(func(_ int, li *goquery.Selection) {
				liText := strings.TrimSpace(li.Text())
				if liText == "" {
					return
				}
				ordinal++
				blocks = append(blocks, e.pair(ctx, content.NumberedItem, liText, ordinal)...)
			})
		}
	})

	return blocks, category
}

// pair builds the translated/original couple for one semantic block. The
// translated copy always comes first.
func (e *Extractor) pair(ctx context.Context, kind content.Kind, text string, ordinal int) []content.Block {
	return []content.Block{
		{Kind: kind, Text: e.translated(ctx, text), Language: content.Translated, Ordinal: ordinal},
		{Kind: kind, Text: text, Language: content.Original, Ordinal: ordinal},
	}
}

// translated runs one translation call and degrades to the input text on
// failure, so a broken translation service never aborts extraction.
func (e *Extractor) translated(ctx context.Context, text string) string {
	if e.Translator == nil {
		return text
	}
	out, err := e.Translator.Translate(ctx, text)
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			log.Warn().Err(err).Msg("translation failed; keeping original text")
		}
		return text
	}
	return out
}

// detectCategory tries the structured label first, then a plain-text scan of
// the container's top-level children. First match wins.
func detectCategory(root *goquery.Selection) string {
	var category string
	root.Find("p.small-font").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		hasLabel := false
		s.Find("b").Each(func(_ int, b *goquery.Selection) {
			if strings.TrimSpace(b.Text()) == "Category:" {
				hasLabel = true
			}
		})
		if !hasLabel {
			return true
		}
		link := s.Find("a[rel=tag]").First()
		if link.Length() == 0 {
			return true
		}
		category = strings.TrimSpace(link.Text())
		return category == ""
	})
	if category != "" {
		return category
	}
	root.Children().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return true
		}
		if m := categoryRe.FindStringSubmatch(text); m != nil {
			category = strings.TrimSpace(m[1])
			return false
		}
		return true
	})
	return category
}

// isExcluded rejects share widgets, navigation, breadcrumbs and comment
// containers by tag or class membership.
func isExcluded(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "nav", "aside", "script", "style", "form":
		return true
	}
	class, _ := s.Attr("class")
	class = strings.ToLower(class)
	for _, marker := range excludedClassMarkers {
		if strings.Contains(class, marker) {
			return true
		}
	}
	return false
}
