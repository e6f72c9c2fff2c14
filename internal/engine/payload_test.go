package engine

import (
	"testing"

	"github.com/qisge/qisge/internal/core"
)

// normalize maps ledger-side values onto their JSON-decoded shapes so both
// sides of a round trip compare equal.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case core.RGB:
		return []any{float64(n[0]), float64(n[1]), float64(n[2])}
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}

func equalNormalized(a, b any) bool {
	na, nb := normalize(a), normalize(b)
	if la, ok := na.([]any); ok {
		lb, ok := nb.([]any)
		if !ok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !equalNormalized(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	return na == nb
}

func TestPayloadRoundTrip(t *testing.T) {
	l := NewLedger()
	l.RecordImage(0, "water.png")
	l.RecordImage(1, "grass.png")
	l.RecordClip(0, "pop.wav")
	l.Record(KindSprite, 0, "x", 5.0)
	l.Record(KindSprite, 0, "flip_h", true)
	l.Record(KindSprite, 2, "image_id", 4)
	l.Record(KindText, 1, "text", "score: 10")
	l.Record(KindText, 1, "font_color", core.NewRGB(0, 0, 255))
	l.Record(KindCamera, 0, "size", 8.0)

	sent := l.Drain()
	data, err := sent.Encode()
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, err := DecodePayload(data)
	if err != nil {
		t.Fatalf("DecodePayload() failed: %v", err)
	}

	for _, kind := range []Kind{KindSprite, KindText, KindSound, KindCamera} {
		want := sent.Changes(kind)
		have := got.Changes(kind)
		if len(want) != len(have) {
			t.Fatalf("%s: %d records sent, %d decoded", kind, len(want), len(have))
		}
		for i := range want {
			if len(want[i]) != len(have[i]) {
				t.Errorf("%s[%d]: field count %d vs %d", kind, i, len(want[i]), len(have[i]))
			}
			for field, v := range want[i] {
				if !equalNormalized(v, have[i][field]) {
					t.Errorf("%s[%d].%s: sent %v, decoded %v", kind, i, field, v, have[i][field])
				}
			}
		}
	}

	if len(got.ImageChanges) != 2 || got.ImageChanges[1].Filename != "grass.png" {
		t.Errorf("Image changes did not survive the round trip: %+v", got.ImageChanges)
	}
	if len(got.ClipChanges) != 1 || got.ClipChanges[0].ClipID != 0 {
		t.Errorf("Clip changes did not survive the round trip: %+v", got.ClipChanges)
	}
}

func TestDrainOrdersRecordsByID(t *testing.T) {
	l := NewLedger()
	l.Record(KindSprite, 5, "x", 1.0)
	l.Record(KindSprite, 1, "x", 2.0)
	l.Record(KindSprite, 3, "x", 3.0)

	p := l.Drain()
	var ids []int
	for _, set := range p.SpriteChanges {
		id, ok := set.ObjectID(KindSprite)
		if !ok {
			t.Fatalf("Record missing id: %v", set)
		}
		ids = append(ids, id)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 5 {
		t.Errorf("Expected ids [1 3 5], got %v", ids)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	p, err := DecodePayload(nil)
	if err != nil {
		t.Fatalf("DecodePayload(nil) failed: %v", err)
	}
	if !p.Empty() {
		t.Errorf("Nil payload should decode empty, got %+v", p)
	}

	if _, err := DecodePayload([]byte("{not json")); err == nil {
		t.Error("Malformed payload should fail to decode")
	}
}
