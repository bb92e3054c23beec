package scrape

import "github.com/PuerkitoBio/goquery"

// LayoutStrategy locates article content for one version of the site markup.
// Strategies are tried in priority order, newest layout first; the first one
// whose root container matches is used exclusively for the rest of that
// extraction. Strategies are never mixed within one article.
type LayoutStrategy interface {
	Name() string
	// MatchRoot returns the content container, or nil when this layout does
	// not apply to the page.
	MatchRoot(doc *goquery.Document) *goquery.Selection
	// Heading returns the article heading within the matched layout, or nil.
	Heading(doc *goquery.Document, root *goquery.Selection) *goquery.Selection
	// FeaturedImage returns the featured image URL, if the layout has one.
	FeaturedImage(doc *goquery.Document) (string, bool)
}

// Strategies returns the known layouts in priority order.
func Strategies() []LayoutStrategy {
	return []LayoutStrategy{postLayout{}, legacyLayout{}}
}

// postLayout is the current site markup: an inside_post container with an
// id-tagged h1 and a dedicated featured_image wrapper.
type postLayout struct{}

func (postLayout) Name() string { return "inside_post" }

func (postLayout) MatchRoot(doc *goquery.Document) *goquery.Selection {
	root := doc.Find("div.inside_post.column.content_width").First()
	if root.Length() == 0 {
		return nil
	}
	return root
}

func (postLayout) Heading(doc *goquery.Document, root *goquery.Selection) *goquery.Selection {
	h := root.Find("h1#list").First()
	if h.Length() == 0 {
		return nil
	}
	return h
}

func (postLayout) FeaturedImage(doc *goquery.Document) (string, bool) {
	src, ok := doc.Find("div.featured_image img").First().Attr("src")
	return src, ok && src != ""
}

// legacyLayout covers the older theme markup still served on archived pages.
type legacyLayout struct{}

func (legacyLayout) Name() string { return "legacy_post_content" }

func (legacyLayout) MatchRoot(doc *goquery.Document) *goquery.Selection {
	root := doc.Find("article div.post-content").First()
	if root.Length() == 0 {
		return nil
	}
	return root
}

func (legacyLayout) Heading(doc *goquery.Document, root *goquery.Selection) *goquery.Selection {
	h := doc.Find("h1.entry-title").First()
	if h.Length() == 0 {
		return nil
	}
	return h
}

func (legacyLayout) FeaturedImage(doc *goquery.Document) (string, bool) {
	src, ok := doc.Find("img.wp-post-image").First().Attr("src")
	return src, ok && src != ""
}
