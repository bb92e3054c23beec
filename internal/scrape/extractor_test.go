package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ajayambaliya/mcqcurrent/internal/content"
	"github.com/ajayambaliya/mcqcurrent/internal/fetch"
)

// fakeTranslator marks translated text with a prefix, or fails every call.
type fakeTranslator struct {
	fail bool
}

func (f fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	if f.fail {
		return "", errors.New("translation service down")
	}
	return "gu:" + text, nil
}

const postLayoutPage = `<!doctype html>
<html><head><title>t</title></head><body>
<div class="featured_image"><img src="https://cdn.example.com/featured.jpg"></div>
<div class="inside_post column content_width">
  <h1 id="list">India Launches New Policy</h1>
  <p class="small-font"><b>Category:</b> <a rel="tag" href="/category/polity/">Polity</a></p>
  <p>The policy was announced today.</p>
  <div class="sharethis-inline-share-buttons st-center">share widget</div>
  <ul>
    <li>First point</li>
    <li>Second point</li>
  </ul>
  <div class="prenext">prev next nav</div>
</div>
</body></html>`

func serve(t *testing.T, page string) (*httptest.Server, *Extractor) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	e := &Extractor{
		Client:     &fetch.Client{},
		Translator: fakeTranslator{},
		Strategies: Strategies(),
	}
	return srv, e
}

func TestExtractPostLayout(t *testing.T) {
	srv, e := serve(t, postLayoutPage)

	blocks, category := e.Extract(context.Background(), srv.URL)
	if category != "Polity" {
		t.Fatalf("expected category Polity, got %q", category)
	}
	// heading pair + paragraph pair + two bullet pairs
	if len(blocks) != 8 {
		t.Fatalf("expected 8 blocks, got %d: %+v", len(blocks), blocks)
	}

	wantKinds := []content.Kind{
		content.Heading, content.Heading,
		content.Paragraph, content.Paragraph,
		content.BulletItem, content.BulletItem,
		content.BulletItem, content.BulletItem,
	}
	for i, k := range wantKinds {
		if blocks[i].Kind != k {
			t.Fatalf("block %d: expected kind %s, got %s", i, k, blocks[i].Kind)
		}
	}

	// translated copy always immediately precedes the original
	for i := 0; i < len(blocks); i += 2 {
		if blocks[i].Language != content.Translated || blocks[i+1].Language != content.Original {
			t.Fatalf("pair at %d has wrong language order", i)
		}
		if blocks[i].Text != "gu:"+blocks[i+1].Text {
			t.Fatalf("pair at %d not a translation pair: %q vs %q", i, blocks[i].Text, blocks[i+1].Text)
		}
	}

	if blocks[0].Text != "gu:India Launches New Policy" || blocks[1].Text != "India Launches New Policy" {
		t.Fatalf("unexpected heading pair: %q / %q", blocks[0].Text, blocks[1].Text)
	}
	if blocks[0].ImageURL != "https://cdn.example.com/featured.jpg" {
		t.Fatalf("expected image on translated heading, got %q", blocks[0].ImageURL)
	}
	if blocks[1].ImageURL != "" {
		t.Fatalf("image must only appear on the translated heading")
	}

	for _, b := range blocks {
		if b.Text == "gu:share widget" || b.Text == "share widget" {
			t.Fatalf("share widget leaked into content")
		}
		if b.Text == "gu:prev next nav" || b.Text == "prev next nav" {
			t.Fatalf("prev/next nav leaked into content")
		}
	}
}

func TestExtractNumberedOrdinalsSpanLists(t *testing.T) {
	page := `<!doctype html>
<html><body>
<div class="inside_post column content_width">
  <h1 id="list">Heading</h1>
  <ol><li>alpha</li><li>beta</li></ol>
  <p>between</p>
  <ol><li>gamma</li></ol>
</div>
</body></html>`
	srv, e := serve(t, page)

	blocks, _ := e.Extract(context.Background(), srv.URL)
	var got []int
	for _, b := range blocks {
		if b.Kind == content.NumberedItem {
			got = append(got, b.Ordinal)
		}
	}
	// three items, each appearing twice with a shared ordinal
	want := []int{1, 1, 2, 2, 3, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %d numbered blocks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordinal %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestExtractFallsBackToLegacyLayout(t *testing.T) {
	page := `<!doctype html>
<html><body>
<h1 class="entry-title">Legacy Heading</h1>
<article><div class="post-content">
  <p>Legacy paragraph</p>
  <p>Category: History</p>
</div></article>
</body></html>`
	srv, e := serve(t, page)

	blocks, category := e.Extract(context.Background(), srv.URL)
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks from legacy layout, got %d", len(blocks))
	}
	if blocks[1].Text != "Legacy Heading" {
		t.Fatalf("expected legacy heading, got %q", blocks[1].Text)
	}
	if category != "History" {
		t.Fatalf("expected plain-text category fallback History, got %q", category)
	}
	for _, b := range blocks {
		if b.Kind == content.Paragraph && b.Language == content.Original && b.Text != "Legacy paragraph" {
			t.Fatalf("category line leaked into content: %q", b.Text)
		}
	}
}

func TestExtractNoLayoutMatchReturnsEmpty(t *testing.T) {
	srv, e := serve(t, `<html><body><div class="unknown">nothing here</div></body></html>`)

	blocks, category := e.Extract(context.Background(), srv.URL)
	if len(blocks) != 0 || category != "" {
		t.Fatalf("expected empty result on structural mismatch, got %d blocks, category %q", len(blocks), category)
	}
}

func TestExtractMissingHeadingReturnsEmpty(t *testing.T) {
	srv, e := serve(t, `<html><body><div class="inside_post column content_width"><p>text</p></div></body></html>`)

	blocks, _ := e.Extract(context.Background(), srv.URL)
	if len(blocks) != 0 {
		t.Fatalf("expected empty result without heading, got %d blocks", len(blocks))
	}
}

func TestExtractDegradedTranslationYieldsIdenticalPairs(t *testing.T) {
	srv, e := serve(t, postLayoutPage)
	e.Translator = fakeTranslator{fail: true}

	blocks, _ := e.Extract(context.Background(), srv.URL)
	if len(blocks) == 0 {
		t.Fatalf("expected blocks despite translation failure")
	}
	for i := 0; i < len(blocks); i += 2 {
		if blocks[i].Text != blocks[i+1].Text {
			t.Fatalf("pair at %d should be identical when translation fails: %q vs %q", i, blocks[i].Text, blocks[i+1].Text)
		}
	}
}

func TestExtractFetchFailureReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	e := &Extractor{Client: &fetch.Client{}, Translator: fakeTranslator{}}

	blocks, category := e.Extract(context.Background(), srv.URL)
	if len(blocks) != 0 || category != "" {
		t.Fatalf("expected empty result on fetch failure")
	}
}
