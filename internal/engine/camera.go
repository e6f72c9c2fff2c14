package engine

// Camera is the proxy for the host's viewport. Each session creates one at
// construction time; its position is the world coordinate at the view's
// lower-left corner and size is the zoom level in tiles.
type Camera struct {
	session *Session
	id      int

	x, y  float64
	size  float64
	angle float64
}

func (s *Session) newCamera() *Camera {
	c := &Camera{
		session: s,
		id:      s.nextID(KindCamera),
		size:    8,
	}
	c.journalAll()
	return c
}

func (c *Camera) journalAll() {
	l := c.session.ledger
	l.Record(KindCamera, c.id, "x", c.x)
	l.Record(KindCamera, c.id, "y", c.y)
	l.Record(KindCamera, c.id, "size", c.size)
	l.Record(KindCamera, c.id, "angle", c.angle)
}

func (c *Camera) setFloat(field string, cur *float64, v float64) {
	if *cur == v {
		return
	}
	*cur = v
	c.session.ledger.Record(KindCamera, c.id, field, v)
}

// ID returns the camera's identity id.
func (c *Camera) ID() int { return c.id }

// X returns the horizontal world position of the view center.
func (c *Camera) X() float64 { return c.x }

// Y returns the vertical world position of the view center.
func (c *Camera) Y() float64 { return c.y }

// Size returns the zoom level.
func (c *Camera) Size() float64 { return c.size }

// Angle returns the view rotation in degrees.
func (c *Camera) Angle() float64 { return c.angle }

// SetX pans the view horizontally.
func (c *Camera) SetX(v float64) { c.setFloat("x", &c.x, v) }

// SetY pans the view vertically.
func (c *Camera) SetY(v float64) { c.setFloat("y", &c.y, v) }

// SetSize changes the zoom level.
func (c *Camera) SetSize(v float64) { c.setFloat("size", &c.size, v) }

// SetAngle rotates the view.
func (c *Camera) SetAngle(v float64) { c.setFloat("angle", &c.angle, v) }
