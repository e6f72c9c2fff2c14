package engine

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a drawable object category. Each kind has its own identity
// id counter and its own change list in the frame payload.
type Kind string

const (
	KindSprite Kind = "sprite"
	KindText   Kind = "text"
	KindSound  Kind = "sound"
	KindCamera Kind = "camera"
)

// idField returns the key under which an object's identity id travels in its
// change records ("sprite_id", "text_id", ...).
func (k Kind) idField() string {
	return string(k) + "_id"
}

// ChangeSet is a partial field record for one object. It always contains the
// object's identity id under the kind's id field.
type ChangeSet map[string]any

// ImageChange records a registration or overwrite in the image registry.
type ImageChange struct {
	ImageID  int    `json:"image_id"`
	Filename string `json:"filename"`
}

// ClipChange records a registration or overwrite in the sound clip registry.
type ClipChange struct {
	ClipID   int    `json:"clip_id"`
	Filename string `json:"filename"`
}

// Payload is the serialized batch of changes shipped to the host once per
// synchronization call. Lists are always present (possibly empty) so the host
// can decode without key probing.
type Payload struct {
	ImageChanges  []ImageChange `json:"image_changes"`
	ClipChanges   []ClipChange  `json:"clip_changes"`
	SpriteChanges []ChangeSet   `json:"sprite_changes"`
	TextChanges   []ChangeSet   `json:"text_changes"`
	SoundChanges  []ChangeSet   `json:"sound_changes"`
	CameraChanges []ChangeSet   `json:"camera_changes"`
}

// emptyPayload returns a payload with all lists allocated and empty.
func emptyPayload() Payload {
	return Payload{
		ImageChanges:  []ImageChange{},
		ClipChanges:   []ClipChange{},
		SpriteChanges: []ChangeSet{},
		TextChanges:   []ChangeSet{},
		SoundChanges:  []ChangeSet{},
		CameraChanges: []ChangeSet{},
	}
}

// Empty reports whether the payload carries no changes at all.
func (p Payload) Empty() bool {
	return len(p.ImageChanges) == 0 &&
		len(p.ClipChanges) == 0 &&
		len(p.SpriteChanges) == 0 &&
		len(p.TextChanges) == 0 &&
		len(p.SoundChanges) == 0 &&
		len(p.CameraChanges) == 0
}

// Changes returns the object change list for the given kind.
func (p Payload) Changes(kind Kind) []ChangeSet {
	switch kind {
	case KindSprite:
		return p.SpriteChanges
	case KindText:
		return p.TextChanges
	case KindSound:
		return p.SoundChanges
	case KindCamera:
		return p.CameraChanges
	}
	return nil
}

// Encode serializes the payload to its wire form.
func (p Payload) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

// DecodePayload parses a wire payload back into its structured form. Used by
// the host side of the bridge.
func DecodePayload(data []byte) (Payload, error) {
	p := emptyPayload()
	if len(data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return emptyPayload(), fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

// ObjectID extracts the identity id from a change record for the given kind.
// JSON numbers decode as float64, so both forms are accepted.
func (c ChangeSet) ObjectID(kind Kind) (int, bool) {
	v, ok := c[kind.idField()]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
