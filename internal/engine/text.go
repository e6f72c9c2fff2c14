package engine

import "github.com/qisge/qisge/internal/core"

// Text is a drawable proxy for a text box on the host screen. Width and
// height are in tiles; a zero width hides the box.
type Text struct {
	session *Session
	id      int

	text          string
	width, height float64
	x, y, z       float64
	fontColor     core.RGB
	bgColor       core.RGB
}

// NewText creates a text box with the given content and dimensions and
// journals its full initial field set.
func (s *Session) NewText(text string, width, height float64) *Text {
	t := &Text{
		session:   s,
		id:        s.nextID(KindText),
		text:      text,
		width:     width,
		height:    height,
		fontColor: core.ColorWhite,
		bgColor:   core.ColorBlack,
	}
	t.journalAll()
	return t
}

func (t *Text) journalAll() {
	l := t.session.ledger
	l.Record(KindText, t.id, "text", t.text)
	l.Record(KindText, t.id, "width", t.width)
	l.Record(KindText, t.id, "height", t.height)
	l.Record(KindText, t.id, "x", t.x)
	l.Record(KindText, t.id, "y", t.y)
	l.Record(KindText, t.id, "z", t.z)
	l.Record(KindText, t.id, "font_color", t.fontColor)
	l.Record(KindText, t.id, "background_color", t.bgColor)
}

func (t *Text) setFloat(field string, cur *float64, v float64) {
	if *cur == v {
		return
	}
	*cur = v
	t.session.ledger.Record(KindText, t.id, field, v)
}

// ID returns the text box's identity id.
func (t *Text) ID() int { return t.id }

// Text returns the displayed string.
func (t *Text) Text() string { return t.text }

// Width returns the box width in tiles.
func (t *Text) Width() float64 { return t.width }

// Height returns the box height in tiles.
func (t *Text) Height() float64 { return t.height }

// X returns the horizontal tile position.
func (t *Text) X() float64 { return t.x }

// Y returns the vertical tile position.
func (t *Text) Y() float64 { return t.y }

// Z returns the draw layer.
func (t *Text) Z() float64 { return t.z }

// FontColor returns the glyph color.
func (t *Text) FontColor() core.RGB { return t.fontColor }

// BackgroundColor returns the box fill color.
func (t *Text) BackgroundColor() core.RGB { return t.bgColor }

// SetText replaces the displayed string.
func (t *Text) SetText(v string) {
	if t.text == v {
		return
	}
	t.text = v
	t.session.ledger.Record(KindText, t.id, "text", v)
}

// SetWidth resizes the box; 0 hides it.
func (t *Text) SetWidth(v float64) { t.setFloat("width", &t.width, v) }

// SetHeight resizes the box.
func (t *Text) SetHeight(v float64) { t.setFloat("height", &t.height, v) }

// SetX moves the box horizontally.
func (t *Text) SetX(v float64) { t.setFloat("x", &t.x, v) }

// SetY moves the box vertically.
func (t *Text) SetY(v float64) { t.setFloat("y", &t.y, v) }

// SetZ changes the draw layer.
func (t *Text) SetZ(v float64) { t.setFloat("z", &t.z, v) }

// SetFontColor changes the glyph color.
func (t *Text) SetFontColor(c core.RGB) {
	if t.fontColor == c {
		return
	}
	t.fontColor = c
	t.session.ledger.Record(KindText, t.id, "font_color", c)
}

// SetBackgroundColor changes the box fill color.
func (t *Text) SetBackgroundColor(c core.RGB) {
	if t.bgColor == c {
		return
	}
	t.bgColor = c
	t.session.ledger.Record(KindText, t.id, "background_color", c)
}
