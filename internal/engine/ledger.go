// Package engine implements the presentation bridge: drawable proxies whose
// mutations are journaled into a change ledger, and a session that flushes the
// ledger to the host once per frame and hands back the host's input snapshot.
package engine

import "sort"

// Ledger accumulates pending mutations between frame flushes. Object changes
// are keyed by (kind, id, field), so re-recording a field before a drain
// overwrites the previous value instead of appending. Asset registrations are
// an append-only event list.
//
// Value-based de-duplication (dropping writes that do not change the stored
// value) is the proxies' responsibility; the ledger records what it is given.
type Ledger struct {
	images  []ImageChange
	clips   []ClipChange
	pending map[Kind]map[int]ChangeSet
}

// NewLedger creates an empty change ledger.
func NewLedger() *Ledger {
	return &Ledger{
		pending: make(map[Kind]map[int]ChangeSet),
	}
}

// RecordImage journals a registration or overwrite in the image registry.
func (l *Ledger) RecordImage(id int, filename string) {
	l.images = append(l.images, ImageChange{ImageID: id, Filename: filename})
}

// RecordClip journals a registration or overwrite in the clip registry.
func (l *Ledger) RecordClip(id int, filename string) {
	l.clips = append(l.clips, ClipChange{ClipID: id, Filename: filename})
}

// Record journals a field mutation for one object. The object's identity id
// is added to its change record on first touch.
func (l *Ledger) Record(kind Kind, id int, field string, value any) {
	byID, ok := l.pending[kind]
	if !ok {
		byID = make(map[int]ChangeSet)
		l.pending[kind] = byID
	}
	set, ok := byID[id]
	if !ok {
		set = ChangeSet{kind.idField(): id}
		byID[id] = set
	}
	set[field] = value
}

// Pending reports whether any changes are waiting for the next drain.
func (l *Ledger) Pending() bool {
	if len(l.images) > 0 || len(l.clips) > 0 {
		return true
	}
	for _, byID := range l.pending {
		if len(byID) > 0 {
			return true
		}
	}
	return false
}

// Drain returns everything recorded since the previous drain as a payload
// snapshot and resets the ledger. Each recorded change is delivered exactly
// once; a drain with no intervening records yields an empty payload.
func (l *Ledger) Drain() Payload {
	p := emptyPayload()
	p.ImageChanges = append(p.ImageChanges, l.images...)
	p.ClipChanges = append(p.ClipChanges, l.clips...)
	p.SpriteChanges = l.drainKind(KindSprite)
	p.TextChanges = l.drainKind(KindText)
	p.SoundChanges = l.drainKind(KindSound)
	p.CameraChanges = l.drainKind(KindCamera)

	l.images = nil
	l.clips = nil
	l.pending = make(map[Kind]map[int]ChangeSet)
	return p
}

// drainKind collects one kind's change records ordered by object id.
func (l *Ledger) drainKind(kind Kind) []ChangeSet {
	byID := l.pending[kind]
	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]ChangeSet, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out
}
