// Package host implements the development host: it consumes frame payloads
// from a game, reconstructs the scene they describe, renders it to the
// terminal, and sends input snapshots back.
package host

import (
	"fmt"
	"sort"

	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
)

// SpriteState is the merged view of one sprite after every payload so far.
type SpriteState struct {
	ID      int
	ImageID int
	X, Y, Z float64
	Size    float64
	Angle   float64
	FlipH   bool
	FlipV   bool
}

// TextState is the merged view of one text block. A width of zero hides it.
type TextState struct {
	ID        int
	Text      string
	Width     float64
	Height    float64
	X, Y, Z   float64
	FontColor core.RGB
	BgColor   core.RGB
}

// SoundState is the merged view of one sound channel.
type SoundState struct {
	ID       int
	ClipID   int
	Playmode int
	Volume   float64
}

// CameraState is the merged view of the camera.
type CameraState struct {
	X, Y  float64
	Size  float64
	Angle float64
}

// Scene accumulates frame payloads into current object state. Games send only
// the fields that changed, so the scene is the fold of every payload since
// the session started.
type Scene struct {
	Images  map[int]string
	Clips   map[int]string
	Sprites map[int]*SpriteState
	Texts   map[int]*TextState
	Sounds  map[int]*SoundState
	Camera  CameraState
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		Images:  make(map[int]string),
		Clips:   make(map[int]string),
		Sprites: make(map[int]*SpriteState),
		Texts:   make(map[int]*TextState),
		Sounds:  make(map[int]*SoundState),
		Camera:  CameraState{Size: 8},
	}
}

// Apply merges one frame payload into the scene. It returns the sounds whose
// playmode the payload touched, so the caller can trigger playback.
func (sc *Scene) Apply(p engine.Payload) ([]*SoundState, error) {
	for _, img := range p.ImageChanges {
		sc.Images[img.ImageID] = img.Filename
	}
	for _, clip := range p.ClipChanges {
		sc.Clips[clip.ClipID] = clip.Filename
	}

	for _, cs := range p.SpriteChanges {
		id, ok := cs.ObjectID(engine.KindSprite)
		if !ok {
			return nil, fmt.Errorf("host: sprite change without id: %v", cs)
		}
		st, ok := sc.Sprites[id]
		if !ok {
			st = &SpriteState{ID: id, Size: 1}
			sc.Sprites[id] = st
		}
		if err := applySpriteFields(st, cs); err != nil {
			return nil, err
		}
	}

	for _, cs := range p.TextChanges {
		id, ok := cs.ObjectID(engine.KindText)
		if !ok {
			return nil, fmt.Errorf("host: text change without id: %v", cs)
		}
		st, ok := sc.Texts[id]
		if !ok {
			st = &TextState{ID: id, FontColor: core.ColorWhite}
			sc.Texts[id] = st
		}
		if err := applyTextFields(st, cs); err != nil {
			return nil, err
		}
	}

	var touched []*SoundState
	for _, cs := range p.SoundChanges {
		id, ok := cs.ObjectID(engine.KindSound)
		if !ok {
			return nil, fmt.Errorf("host: sound change without id: %v", cs)
		}
		st, ok := sc.Sounds[id]
		if !ok {
			st = &SoundState{ID: id, Volume: 1}
			sc.Sounds[id] = st
		}
		modeChanged, err := applySoundFields(st, cs)
		if err != nil {
			return nil, err
		}
		if modeChanged {
			touched = append(touched, st)
		}
	}

	for _, cs := range p.CameraChanges {
		if err := applyCameraFields(&sc.Camera, cs); err != nil {
			return nil, err
		}
	}

	return touched, nil
}

// SpritesByDepth returns the sprites ordered back to front.
func (sc *Scene) SpritesByDepth() []*SpriteState {
	out := make([]*SpriteState, 0, len(sc.Sprites))
	for _, st := range sc.Sprites {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// TextsByDepth returns the visible text blocks ordered back to front.
func (sc *Scene) TextsByDepth() []*TextState {
	out := make([]*TextState, 0, len(sc.Texts))
	for _, st := range sc.Texts {
		if st.Width <= 0 {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func applySpriteFields(st *SpriteState, cs engine.ChangeSet) error {
	for field, v := range cs {
		var err error
		switch field {
		case "sprite_id":
		case "image_id":
			st.ImageID, err = asInt(field, v)
		case "x":
			st.X, err = asFloat(field, v)
		case "y":
			st.Y, err = asFloat(field, v)
		case "z":
			st.Z, err = asFloat(field, v)
		case "size":
			st.Size, err = asFloat(field, v)
		case "angle":
			st.Angle, err = asFloat(field, v)
		case "flip_h":
			st.FlipH, err = asBool(field, v)
		case "flip_v":
			st.FlipV, err = asBool(field, v)
		default:
			err = fmt.Errorf("host: unknown sprite field %q", field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyTextFields(st *TextState, cs engine.ChangeSet) error {
	for field, v := range cs {
		var err error
		switch field {
		case "text_id":
		case "text":
			if s, ok := v.(string); ok {
				st.Text = s
			} else {
				err = fmt.Errorf("host: field text is %T, want string", v)
			}
		case "width":
			st.Width, err = asFloat(field, v)
		case "height":
			st.Height, err = asFloat(field, v)
		case "x":
			st.X, err = asFloat(field, v)
		case "y":
			st.Y, err = asFloat(field, v)
		case "z":
			st.Z, err = asFloat(field, v)
		case "font_color":
			st.FontColor, err = asRGB(field, v)
		case "background_color":
			st.BgColor, err = asRGB(field, v)
		default:
			err = fmt.Errorf("host: unknown text field %q", field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applySoundFields(st *SoundState, cs engine.ChangeSet) (bool, error) {
	modeChanged := false
	for field, v := range cs {
		var err error
		switch field {
		case "sound_id":
		case "clip_id":
			st.ClipID, err = asInt(field, v)
		case "playmode":
			st.Playmode, err = asInt(field, v)
			modeChanged = err == nil
		case "volume":
			st.Volume, err = asFloat(field, v)
		default:
			err = fmt.Errorf("host: unknown sound field %q", field)
		}
		if err != nil {
			return false, err
		}
	}
	return modeChanged, nil
}

func applyCameraFields(st *CameraState, cs engine.ChangeSet) error {
	for field, v := range cs {
		var err error
		switch field {
		case "camera_id":
		case "x":
			st.X, err = asFloat(field, v)
		case "y":
			st.Y, err = asFloat(field, v)
		case "size":
			st.Size, err = asFloat(field, v)
		case "angle":
			st.Angle, err = asFloat(field, v)
		default:
			err = fmt.Errorf("host: unknown camera field %q", field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Decoded JSON numbers arrive as float64; values applied straight from a
// ledger payload keep their Go types. Both shapes are accepted.

func asFloat(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("host: field %s is %T, want number", field, v)
}

func asInt(field string, v any) (int, error) {
	f, err := asFloat(field, v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func asBool(field string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("host: field %s is %T, want bool", field, v)
	}
	return b, nil
}

func asRGB(field string, v any) (core.RGB, error) {
	switch c := v.(type) {
	case core.RGB:
		return c, nil
	case []any:
		if len(c) != 3 {
			return core.RGB{}, fmt.Errorf("host: field %s has %d components, want 3", field, len(c))
		}
		var rgb core.RGB
		for i, comp := range c {
			f, err := asFloat(field, comp)
			if err != nil {
				return core.RGB{}, err
			}
			rgb[i] = uint8(f)
		}
		return rgb, nil
	}
	return core.RGB{}, fmt.Errorf("host: field %s is %T, want color", field, v)
}
