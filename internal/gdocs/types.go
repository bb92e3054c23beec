package gdocs

// Wire types for the rich-document service's batchUpdate surface. Only the
// three operations the builder issues are modeled.

// Bullet presets accepted by createParagraphBullets.
const (
	BulletPresetDisc     = "BULLET_DISC_CIRCLE_SQUARE"
	BulletPresetNumbered = "NUMBERED_DECIMAL_ALPHA_ROMAN"
)

// Request is the union of operations in a batch submission. Exactly one
// field is set per request.
type Request struct {
	InsertText             *InsertTextRequest             `json:"insertText,omitempty"`
	UpdateTextStyle        *UpdateTextStyleRequest        `json:"updateTextStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBulletsRequest `json:"createParagraphBullets,omitempty"`
}

type Location struct {
	Index int `json:"index"`
}

// Range is a half-open [StartIndex, EndIndex) span of the document's text
// stream, counted in UTF-16 code units.
type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

type InsertTextRequest struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

type UpdateTextStyleRequest struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

type CreateParagraphBulletsRequest struct {
	Range        Range  `json:"range"`
	BulletPreset string `json:"bulletPreset"`
}

type TextStyle struct {
	Bold            bool           `json:"bold,omitempty"`
	Italic          bool           `json:"italic,omitempty"`
	FontSize        *Dimension     `json:"fontSize,omitempty"`
	ForegroundColor *OptionalColor `json:"foregroundColor,omitempty"`
}

type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

type OptionalColor struct {
	Color Color `json:"color"`
}

type Color struct {
	RGBColor RGBColor `json:"rgbColor"`
}

type RGBColor struct {
	Red   float64 `json:"red,omitempty"`
	Green float64 `json:"green,omitempty"`
	Blue  float64 `json:"blue,omitempty"`
}

func pt(magnitude float64) *Dimension {
	return &Dimension{Magnitude: magnitude, Unit: "PT"}
}

func rgb(r, g, b float64) *OptionalColor {
	return &OptionalColor{Color: Color{RGBColor: RGBColor{Red: r, Green: g, Blue: b}}}
}
