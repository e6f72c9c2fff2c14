package host

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const audioSampleRate = beep.SampleRate(48000)

// AudioPlayer plays sound clips referenced by payload sound channels. Clips
// are WAV files resolved against the asset directory. One speaker serves all
// channels through a shared mixer; looping channels keep a control handle so
// a later stop can pause them.
type AudioPlayer struct {
	mu       sync.Mutex
	assetDir string
	mixer    *beep.Mixer
	active   map[int]*beep.Ctrl
	ready    bool
}

// NewAudioPlayer creates a player for clips under assetDir.
func NewAudioPlayer(assetDir string) *AudioPlayer {
	return &AudioPlayer{
		assetDir: assetDir,
		mixer:    &beep.Mixer{},
		active:   make(map[int]*beep.Ctrl),
	}
}

// Init opens the speaker. Safe to call more than once.
func (p *AudioPlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Close pauses every channel and clears the mixer.
func (p *AudioPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	for _, ctrl := range p.active {
		ctrl.Paused = true
	}
	p.mixer.Clear()
	speaker.Unlock()
	p.active = make(map[int]*beep.Ctrl)
	p.ready = false
}

// Update reacts to one sound channel's new state: playmode 1 plays the clip
// once, -1 loops it, 0 stops the channel.
func (p *AudioPlayer) Update(st *SoundState, clipFile string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return nil
	}

	speaker.Lock()
	if ctrl, ok := p.active[st.ID]; ok {
		ctrl.Paused = true
		delete(p.active, st.ID)
	}
	speaker.Unlock()

	if st.Playmode == 0 {
		return nil
	}

	streamer, err := p.openClip(clipFile)
	if err != nil {
		return err
	}
	if st.Playmode < 0 {
		streamer = beep.Loop(-1, toSeeker(streamer))
	}

	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   volumeGain(st.Volume),
		Silent:   st.Volume <= 0,
	}
	ctrl := &beep.Ctrl{Streamer: vol}

	speaker.Lock()
	p.active[st.ID] = ctrl
	p.mixer.Add(ctrl)
	speaker.Unlock()
	return nil
}

// openClip decodes a WAV file and resamples it to the speaker rate.
func (p *AudioPlayer) openClip(name string) (beep.Streamer, error) {
	f, err := os.Open(filepath.Join(p.assetDir, name))
	if err != nil {
		return nil, fmt.Errorf("audio: open clip: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode clip %s: %w", name, err)
	}
	if format.SampleRate == audioSampleRate {
		return streamer, nil
	}
	return beep.Resample(4, format.SampleRate, audioSampleRate, streamer), nil
}

func toSeeker(s beep.Streamer) beep.StreamSeeker {
	if seeker, ok := s.(beep.StreamSeeker); ok {
		return seeker
	}
	// Resampled streams cannot seek; buffer them once so looping works.
	buf := beep.NewBuffer(beep.Format{SampleRate: audioSampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf.Streamer(0, buf.Len())
}

// volumeGain maps the linear 0..1 channel volume onto beep's exponential
// scale, where 0 is unity gain.
func volumeGain(v float64) float64 {
	if v <= 0 {
		return -10
	}
	if v >= 1 {
		return 0
	}
	return (v - 1) * 4
}
