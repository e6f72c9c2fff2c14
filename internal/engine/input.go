package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Numeric key codes are a contract with the host, not something this layer
// defines. The host delivers whichever of these were pressed since the
// previous frame.
const (
	KeyUp     = 0
	KeyRight  = 1
	KeyDown   = 2
	KeyLeft   = 3
	KeyAction = 4
	KeyNext   = 5
	KeyBack   = 6
	KeyQuit   = 7
)

// Click is a pointer event in tile coordinates.
type Click struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
}

// Snapshot is the host's input state for one frame.
type Snapshot struct {
	KeyPresses []int   `json:"key_presses"`
	Clicks     []Click `json:"clicks"`
}

// EmptySnapshot returns the zero-event default a silent host decodes to.
func EmptySnapshot() Snapshot {
	return Snapshot{KeyPresses: []int{}, Clicks: []Click{}}
}

// Pressed reports whether the given key code arrived this frame.
func (s Snapshot) Pressed(code int) bool {
	for _, k := range s.KeyPresses {
		if k == code {
			return true
		}
	}
	return false
}

// Quit reports whether the host asked the game to exit.
func (s Snapshot) Quit() bool {
	return s.Pressed(KeyQuit)
}

// Encode serializes the snapshot to its wire form. Used by the host side.
func (s Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a raw input payload. An absent or blank payload
// decodes to the zero-event default; anything else must parse or the error
// propagates to the caller.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return EmptySnapshot(), nil
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return EmptySnapshot(), fmt.Errorf("decode input: %w", err)
	}
	if s.KeyPresses == nil {
		s.KeyPresses = []int{}
	}
	if s.Clicks == nil {
		s.Clicks = []Click{}
	}
	return s, nil
}
