package content

// Kind identifies the structural role of a block within an article.
type Kind string

const (
	Heading       Kind = "heading"
	Paragraph     Kind = "paragraph"
	SubHeading    Kind = "heading_2"
	SubSubHeading Kind = "heading_4"
	BulletItem    Kind = "bullet_list"
	NumberedItem  Kind = "numbered_list"
)

// Language tags which side of the bilingual pair a block belongs to.
type Language string

const (
	Translated Language = "translated"
	Original   Language = "original"
)

// Block is the atomic unit of article content. Every semantic block appears
// twice in an article's sequence, the translated copy immediately before the
// original. ImageURL is set only on the first (translated) heading of an
// article. Ordinal is set only on numbered list items; the translated and
// original copies of the same item share it.
type Block struct {
	Kind     Kind
	Text     string
	Language Language
	ImageURL string
	Ordinal  int
}

// Article is one scraped URL's normalized bilingual content. Category is
// empty when no category marker was found on the page. Title holds the
// original-language heading, used as the article's display title in the
// delivery caption.
type Article struct {
	URL      string
	Category string
	Title    string
	Blocks   []Block
}
