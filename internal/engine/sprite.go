package engine

// Sprite is a drawable proxy for one image instance on the host screen.
// Every setter compares the new value with the stored one and journals only
// real changes; writing the same value twice in a row produces one ledger
// entry. Sprites are never destroyed — an id stays valid for the whole
// session.
type Sprite struct {
	session *Session
	id      int

	imageID int
	x, y, z float64
	size    float64
	angle   float64
	flipH   bool
	flipV   bool
}

// NewSprite creates a sprite showing the given image at the origin and
// journals its full initial field set.
func (s *Session) NewSprite(imageID int) *Sprite {
	sp := &Sprite{
		session: s,
		id:      s.nextID(KindSprite),
		imageID: imageID,
		size:    1,
	}
	sp.journalAll()
	return sp
}

// NewSpriteAt creates a sprite at the given position.
func (s *Session) NewSpriteAt(imageID int, x, y, z float64) *Sprite {
	sp := &Sprite{
		session: s,
		id:      s.nextID(KindSprite),
		imageID: imageID,
		x:       x,
		y:       y,
		z:       z,
		size:    1,
	}
	sp.journalAll()
	return sp
}

func (sp *Sprite) journalAll() {
	l := sp.session.ledger
	l.Record(KindSprite, sp.id, "image_id", sp.imageID)
	l.Record(KindSprite, sp.id, "x", sp.x)
	l.Record(KindSprite, sp.id, "y", sp.y)
	l.Record(KindSprite, sp.id, "z", sp.z)
	l.Record(KindSprite, sp.id, "size", sp.size)
	l.Record(KindSprite, sp.id, "angle", sp.angle)
	l.Record(KindSprite, sp.id, "flip_h", sp.flipH)
	l.Record(KindSprite, sp.id, "flip_v", sp.flipV)
}

func (sp *Sprite) setFloat(field string, cur *float64, v float64) {
	if *cur == v {
		return
	}
	*cur = v
	sp.session.ledger.Record(KindSprite, sp.id, field, v)
}

func (sp *Sprite) setBool(field string, cur *bool, v bool) {
	if *cur == v {
		return
	}
	*cur = v
	sp.session.ledger.Record(KindSprite, sp.id, field, v)
}

// ID returns the sprite's identity id.
func (sp *Sprite) ID() int { return sp.id }

// ImageID returns the registry id of the displayed image.
func (sp *Sprite) ImageID() int { return sp.imageID }

// X returns the horizontal tile position.
func (sp *Sprite) X() float64 { return sp.x }

// Y returns the vertical tile position.
func (sp *Sprite) Y() float64 { return sp.y }

// Z returns the draw layer; higher values draw on top.
func (sp *Sprite) Z() float64 { return sp.z }

// Size returns the scale factor (1 is one tile).
func (sp *Sprite) Size() float64 { return sp.size }

// Angle returns the rotation in degrees.
func (sp *Sprite) Angle() float64 { return sp.angle }

// FlipH reports horizontal mirroring.
func (sp *Sprite) FlipH() bool { return sp.flipH }

// FlipV reports vertical mirroring.
func (sp *Sprite) FlipV() bool { return sp.flipV }

// SetImageID switches the displayed image.
func (sp *Sprite) SetImageID(id int) {
	if sp.imageID == id {
		return
	}
	sp.imageID = id
	sp.session.ledger.Record(KindSprite, sp.id, "image_id", id)
}

// SetX moves the sprite horizontally.
func (sp *Sprite) SetX(v float64) { sp.setFloat("x", &sp.x, v) }

// SetY moves the sprite vertically.
func (sp *Sprite) SetY(v float64) { sp.setFloat("y", &sp.y, v) }

// SetZ changes the draw layer.
func (sp *Sprite) SetZ(v float64) { sp.setFloat("z", &sp.z, v) }

// SetSize changes the scale factor.
func (sp *Sprite) SetSize(v float64) { sp.setFloat("size", &sp.size, v) }

// SetAngle changes the rotation in degrees.
func (sp *Sprite) SetAngle(v float64) { sp.setFloat("angle", &sp.angle, v) }

// SetFlipH toggles horizontal mirroring.
func (sp *Sprite) SetFlipH(v bool) { sp.setBool("flip_h", &sp.flipH, v) }

// SetFlipV toggles vertical mirroring.
func (sp *Sprite) SetFlipV(v bool) { sp.setBool("flip_v", &sp.flipV, v) }

// SetPosition moves the sprite in both axes.
func (sp *Sprite) SetPosition(x, y float64) {
	sp.SetX(x)
	sp.SetY(y)
}
