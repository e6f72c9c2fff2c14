package engine

// Playback modes for a Sound channel.
const (
	PlaymodeStop = 0
	PlaymodeOnce = 1
	PlaymodeLoop = -1
)

// Sound is a proxy for one audio channel on the host. Like all proxies its
// writes are value-deduplicated: calling Play twice without an intervening
// Stop journals a single change.
type Sound struct {
	session *Session
	id      int

	clipID   int
	playmode int
	volume   float64
}

// NewSound creates an audio channel bound to the given clip and journals its
// full initial field set.
func (s *Session) NewSound(clipID int) *Sound {
	sd := &Sound{
		session: s,
		id:      s.nextID(KindSound),
		clipID:  clipID,
		volume:  1,
	}
	sd.journalAll()
	return sd
}

func (sd *Sound) journalAll() {
	l := sd.session.ledger
	l.Record(KindSound, sd.id, "clip_id", sd.clipID)
	l.Record(KindSound, sd.id, "playmode", sd.playmode)
	l.Record(KindSound, sd.id, "volume", sd.volume)
}

// ID returns the channel's identity id.
func (sd *Sound) ID() int { return sd.id }

// ClipID returns the registry id of the bound clip.
func (sd *Sound) ClipID() int { return sd.clipID }

// Playmode returns the current playback mode.
func (sd *Sound) Playmode() int { return sd.playmode }

// Volume returns the channel volume in [0, 1].
func (sd *Sound) Volume() float64 { return sd.volume }

// SetClipID rebinds the channel to another clip.
func (sd *Sound) SetClipID(id int) {
	if sd.clipID == id {
		return
	}
	sd.clipID = id
	sd.session.ledger.Record(KindSound, sd.id, "clip_id", id)
}

// SetPlaymode changes the playback mode.
func (sd *Sound) SetPlaymode(mode int) {
	if sd.playmode == mode {
		return
	}
	sd.playmode = mode
	sd.session.ledger.Record(KindSound, sd.id, "playmode", mode)
}

// SetVolume changes the channel volume.
func (sd *Sound) SetVolume(v float64) {
	if sd.volume == v {
		return
	}
	sd.volume = v
	sd.session.ledger.Record(KindSound, sd.id, "volume", v)
}

// Play starts one-shot playback.
func (sd *Sound) Play() { sd.SetPlaymode(PlaymodeOnce) }

// Loop starts looping playback.
func (sd *Sound) Loop() { sd.SetPlaymode(PlaymodeLoop) }

// Stop halts playback.
func (sd *Sound) Stop() { sd.SetPlaymode(PlaymodeStop) }
