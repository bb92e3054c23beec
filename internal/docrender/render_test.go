package docrender

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/ajayambaliya/mcqcurrent/internal/content"
	"github.com/ajayambaliya/mcqcurrent/internal/fetch"
)

var renderTime = time.Date(2026, time.August, 27, 10, 0, 0, 0, time.UTC)

func sampleBlocks() []content.Block {
	return []content.Block{
		{Kind: content.Heading, Text: "New Policy", Language: content.Translated},
		{Kind: content.Heading, Text: "New Policy", Language: content.Original},
		{Kind: content.SubHeading, Text: "Background", Language: content.Original},
		{Kind: content.SubSubHeading, Text: "Note", Language: content.Original},
		{Kind: content.Paragraph, Text: "Details of the announcement.", Language: content.Original},
		{Kind: content.BulletItem, Text: "Point one", Language: content.Original},
		{Kind: content.NumberedItem, Text: "Step one", Language: content.Original, Ordinal: 1},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := &Renderer{}
	var buf bytes.Buffer
	if err := r.Render(context.Background(), sampleBlocks(), renderTime, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if buf.Len() < 500 {
		t.Fatalf("suspiciously small artifact: %d bytes", buf.Len())
	}
}

// failingImages simulates the fetcher rejecting an implausibly small image.
type failingImages struct{}

func (failingImages) GetImage(context.Context, string) ([]byte, error) {
	return nil, fetch.ErrImageTooSmall
}

func TestRenderSkipsBadImageWithoutFailing(t *testing.T) {
	blocks := []content.Block{
		{Kind: content.Heading, Text: "With Image", Language: content.Translated, ImageURL: "https://cdn.example.com/x.jpg"},
		{Kind: content.Heading, Text: "With Image", Language: content.Original},
	}
	r := &Renderer{Images: failingImages{}}
	var buf bytes.Buffer
	if err := r.Render(context.Background(), blocks, renderTime, &buf); err != nil {
		t.Fatalf("render must not fail on a bad image: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

// staticImages serves one prepared payload for any URL.
type staticImages struct{ data []byte }

func (s staticImages) GetImage(context.Context, string) ([]byte, error) {
	if s.data == nil {
		return nil, errors.New("no image")
	}
	return s.data, nil
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRenderEmbedsImage(t *testing.T) {
	blocks := []content.Block{
		{Kind: content.Heading, Text: "With Image", Language: content.Translated, ImageURL: "https://cdn.example.com/x.png"},
		{Kind: content.Heading, Text: "With Image", Language: content.Original},
	}
	r := &Renderer{Images: staticImages{data: encodePNG(t, 64, 48)}}
	var with bytes.Buffer
	if err := r.Render(context.Background(), blocks, renderTime, &with); err != nil {
		t.Fatalf("render: %v", err)
	}
	var without bytes.Buffer
	if err := (&Renderer{}).Render(context.Background(), blocks, renderTime, &without); err != nil {
		t.Fatalf("render: %v", err)
	}
	if with.Len() <= without.Len() {
		t.Fatalf("embedded image should grow the artifact (%d vs %d bytes)", with.Len(), without.Len())
	}
}

func TestPrepareImageResizesToFootprint(t *testing.T) {
	out, err := PrepareImage(encodePNG(t, 640, 480))
	if err != nil {
		t.Fatalf("prepare image: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode prepared image: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != imageWidthPx || b.Dy() != imageHeightPx {
		t.Fatalf("expected %dx%d, got %dx%d", imageWidthPx, imageHeightPx, b.Dx(), b.Dy())
	}
}

func TestPrepareImageRejectsGarbage(t *testing.T) {
	if _, err := PrepareImage([]byte("not an image at all")); err == nil {
		t.Fatalf("expected decode error")
	}
}
