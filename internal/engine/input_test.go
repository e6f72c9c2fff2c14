package engine

import "testing"

func TestDecodeSnapshotEmpty(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, []byte("  \n")} {
		s, err := DecodeSnapshot(raw)
		if err != nil {
			t.Fatalf("DecodeSnapshot(%q) failed: %v", raw, err)
		}
		if s.KeyPresses == nil || s.Clicks == nil {
			t.Error("Empty decode should return non-nil slices")
		}
		if len(s.KeyPresses) != 0 || len(s.Clicks) != 0 {
			t.Errorf("Empty decode should be the zero-event default, got %+v", s)
		}
	}
}

func TestDecodeSnapshotEvents(t *testing.T) {
	raw := []byte(`{"key_presses":[0,3,7],"clicks":[{"x":12.5,"y":4,"button":1}]}`)
	s, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("DecodeSnapshot() failed: %v", err)
	}

	if !s.Pressed(KeyUp) || !s.Pressed(KeyLeft) {
		t.Errorf("Expected up and left pressed: %+v", s)
	}
	if s.Pressed(KeyRight) {
		t.Error("Right was not pressed")
	}
	if !s.Quit() {
		t.Error("Quit key should be reported")
	}
	if len(s.Clicks) != 1 || s.Clicks[0].X != 12.5 || s.Clicks[0].Button != 1 {
		t.Errorf("Click decoded wrong: %+v", s.Clicks)
	}
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	if _, err := DecodeSnapshot([]byte(`{"key_presses":"oops"}`)); err == nil {
		t.Error("Malformed snapshot should fail to decode")
	}
}

func TestSnapshotEncodeRoundTrip(t *testing.T) {
	in := Snapshot{KeyPresses: []int{KeyAction}, Clicks: []Click{{X: 1, Y: 2}}}
	data, err := in.Encode()
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	out, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() failed: %v", err)
	}
	if !out.Pressed(KeyAction) || len(out.Clicks) != 1 {
		t.Errorf("Round trip lost events: %+v", out)
	}
}
