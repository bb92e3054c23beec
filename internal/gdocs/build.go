package gdocs

import (
	"fmt"
	"strings"
	"time"

	"github.com/ajayambaliya/mcqcurrent/internal/content"
)

// The remote model shifts every index after an insertion by the inserted
// length, so each style range must be computed before the next insert using
// the exact length that was written. All arithmetic here goes through
// textLen and is kept as a pure fold over (cursor, ops) so it can be tested
// without the network.

const separatorWidth = 50

// textLen returns the length of s in UTF-16 code units, the unit the remote
// document model uses for indexes. Byte or rune counts would desynchronize
// ranges on non-Latin text.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// BuildRequests turns a block sequence into the complete operation batch for
// one document: styled page title, separator, every block with its style
// (and list preset), and a trailing separator. The cursor starts at 1;
// position 0 is reserved by the remote model's leading structural element.
func BuildRequests(blocks []content.Block, now time.Time) []Request {
	cursor := 1
	var ops []Request

	title := "Current Affairs - " + now.Format("02 January 2006") + "\n"
	n := textLen(title)
	ops = append(ops,
		insertAt(cursor, title),
		styleRange(Range{cursor, cursor + n}, TextStyle{
			Bold:            true,
			FontSize:        pt(18),
			ForegroundColor: rgb(0, 0.4, 0.8),
		}),
	)
	cursor += n

	separator := strings.Repeat("-", separatorWidth) + "\n"
	ops = append(ops, insertAt(cursor, separator))
	cursor += textLen(separator)

	for _, b := range blocks {
		blockOps, advance := appendBlock(cursor, b)
		ops = append(ops, blockOps...)
		cursor += advance
	}

	trailer := "\n" + strings.Repeat("-", separatorWidth) + "\n\n"
	ops = append(ops, insertAt(cursor, trailer))

	return ops
}

// appendBlock emits the operations for a single block starting at cursor and
// reports how far the cursor advances: exactly the inserted length,
// prefix and trailing newlines included.
func appendBlock(cursor int, b content.Block) ([]Request, int) {
	var text string
	var style TextStyle
	var preset string

	switch b.Kind {
	case content.Heading:
		text = b.Text + "\n"
		style = TextStyle{Bold: true, FontSize: pt(14), ForegroundColor: rgb(0.2, 0.2, 0.2)}
	case content.Paragraph:
		text = b.Text + "\n\n"
		style = TextStyle{FontSize: pt(11), ForegroundColor: rgb(0.13, 0.13, 0.13)}
	case content.SubHeading:
		text = b.Text + "\n"
		style = TextStyle{Bold: true, Italic: true, FontSize: pt(12), ForegroundColor: rgb(0, 0.6, 0.3)}
	case content.SubSubHeading:
		text = b.Text + "\n"
		style = TextStyle{Bold: true, FontSize: pt(11), ForegroundColor: rgb(0.4, 0.4, 0.4)}
	case content.BulletItem:
		text = "• " + b.Text + "\n"
		style = TextStyle{FontSize: pt(11), ForegroundColor: rgb(0.26, 0.26, 0.26)}
		preset = BulletPresetDisc
	case content.NumberedItem:
		text = fmt.Sprintf("%d. %s\n", b.Ordinal, b.Text)
		style = TextStyle{FontSize: pt(11), ForegroundColor: rgb(0.26, 0.26, 0.26)}
		preset = BulletPresetNumbered
	default:
		return nil, 0
	}

	n := textLen(text)
	r := Range{StartIndex: cursor, EndIndex: cursor + n}
	ops := []Request{insertAt(cursor, text)}
	if preset != "" {
		ops = append(ops, Request{CreateParagraphBullets: &CreateParagraphBulletsRequest{
			Range:        r,
			BulletPreset: preset,
		}})
	}
	ops = append(ops, styleRange(r, style))
	return ops, n
}

func insertAt(index int, text string) Request {
	return Request{InsertText: &InsertTextRequest{Location: Location{Index: index}, Text: text}}
}

func styleRange(r Range, style TextStyle) Request {
	return Request{UpdateTextStyle: &UpdateTextStyleRequest{Range: r, TextStyle: style, Fields: "*"}}
}
