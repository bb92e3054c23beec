// Package docrender renders the combined block sequence into the styled
// local PDF artifact, with featured images embedded below their headings.
package docrender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"

	"github.com/ajayambaliya/mcqcurrent/internal/content"
)

// Embedded image display size on the page.
const (
	displayWidthMM  = 63.5
	displayHeightMM = 47.625
	pageWidthMM     = 210
)

// ImageFetcher supplies featured image bytes. Payload validation (minimum
// size) happens inside the fetcher.
type ImageFetcher interface {
	GetImage(ctx context.Context, url string) ([]byte, error)
}

// Renderer turns a block sequence into one PDF document. Rendering is
// append-only and stateless across articles: blocks come out in input order.
type Renderer struct {
	// Images is used for featured images. Nil disables embedding.
	Images ImageFetcher
	// FontPath optionally points at a UTF-8 TTF file covering the target
	// script. Without it the built-in core fonts are used, which only cover
	// Latin text.
	FontPath string
}

// Render writes the artifact for blocks to w. Image failures skip the embed
// and keep rendering; only PDF assembly errors are returned.
func (r *Renderer) Render(ctx context.Context, blocks []content.Block, now time.Time, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 15, 20)
	pdf.SetAutoPageBreak(true, 15)

	family := "Helvetica"
	if r.FontPath != "" {
		family = "article"
		for _, style := range []string{"", "B", "I", "BI"} {
			pdf.AddUTF8Font(family, style, r.FontPath)
		}
	}

	pdf.AddPage()

	// Page title
	pdf.SetFont(family, "B", 22)
	pdf.SetTextColor(0, 102, 204)
	pdf.CellFormat(0, 12, "Current Affairs - "+now.Format("02 January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	imageSeq := 0
	for _, b := range blocks {
		switch b.Kind {
		case content.Heading:
			pdf.SetFont(family, "B", 16)
			pdf.SetTextColor(51, 51, 51)
			pdf.Ln(3)
			pdf.MultiCell(0, 8, b.Text, "", "L", false)
			if b.ImageURL != "" && r.Images != nil {
				imageSeq++
				r.embedImage(ctx, pdf, b.ImageURL, imageSeq)
			}
		case content.SubHeading:
			pdf.SetFont(family, "BI", 14)
			pdf.SetTextColor(0, 153, 76)
			pdf.Ln(2)
			pdf.MultiCell(0, 7, b.Text, "", "L", false)
		case content.SubSubHeading:
			pdf.SetFont(family, "B", 12)
			pdf.SetTextColor(102, 102, 102)
			pdf.Ln(2)
			pdf.MultiCell(0, 6, b.Text, "", "L", false)
		case content.Paragraph:
			pdf.SetFont(family, "", 12)
			pdf.SetTextColor(33, 33, 33)
			pdf.MultiCell(0, 6, b.Text, "", "L", false)
			// hairline separator under each paragraph
			pdf.SetDrawColor(200, 200, 200)
			pdf.SetLineWidth(0.2)
			y := pdf.GetY() + 1
			pdf.Line(20, y, pageWidthMM-20, y)
			pdf.Ln(3)
		case content.BulletItem:
			pdf.SetFont(family, "", 12)
			pdf.SetTextColor(66, 66, 66)
			pdf.MultiCell(0, 6, "• "+b.Text, "", "L", false)
			pdf.Ln(1)
		case content.NumberedItem:
			pdf.SetFont(family, "", 12)
			pdf.SetTextColor(66, 66, 66)
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", b.Ordinal, b.Text), "", "L", false)
			pdf.Ln(1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (r *Renderer) embedImage(ctx context.Context, pdf *gofpdf.Fpdf, imageURL string, seq int) {
	raw, err := r.Images.GetImage(ctx, imageURL)
	if err != nil {
		log.Warn().Err(err).Str("url", imageURL).Msg("featured image skipped")
		return
	}
	prepared, err := PrepareImage(raw)
	if err != nil {
		log.Warn().Err(err).Str("url", imageURL).Msg("featured image unusable; skipped")
		return
	}
	name := fmt.Sprintf("featured-%d", seq)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(prepared))
	x := (pageWidthMM - displayWidthMM) / 2
	y := pdf.GetY() + 2
	pdf.ImageOptions(name, x, y, displayWidthMM, displayHeightMM, false, opts, 0, "")
	pdf.SetY(y + displayHeightMM + 4)
}
