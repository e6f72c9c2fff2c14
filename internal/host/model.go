package host

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
	"github.com/qisge/qisge/internal/transport"
)

// TickMsg drives one host frame: poll payloads, publish input, redraw.
type TickMsg time.Time

// tickCmd returns a command that sends tick messages at the given rate.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Options configures the host model.
type Options struct {
	// FPS is the poll and redraw rate.
	FPS int
	// Screen is the logical play area in cells.
	ScreenW, ScreenH int
	// Audio, when non-nil, plays the scene's sound channels.
	Audio *AudioPlayer
	// Logger receives transport errors. nil disables logging.
	Logger *log.Logger
}

// Model is the Bubble Tea model for the development host. Each tick it folds
// every payload the game has produced into the scene, publishes the input
// collected since the previous tick, and redraws.
type Model struct {
	side   transport.HostSide
	scene  *Scene
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	opts   Options

	pending  []int
	clicks   []engine.Click
	frames   int
	lastErr  error
	quitting bool
}

// NewModel creates a host model reading from the given transport side.
func NewModel(side transport.HostSide, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = core.DefaultConfig().FPS
	}
	if opts.ScreenW <= 0 || opts.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.ScreenW, opts.ScreenH = def.ScreenW, def.ScreenH
	}

	return Model{
		side:   side,
		scene:  NewScene(),
		screen: core.NewScreen(opts.ScreenW, opts.ScreenH),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		opts:   opts,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and advances the host state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	code, ok := m.keys.Code(msg)
	if !ok {
		return m, nil
	}

	m.pending = append(m.pending, code)
	if code == engine.KeyQuit {
		// Forward the quit code once, then leave on the next tick so the
		// game sees it.
		m.quitting = true
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	// Terminal cell -> world tile, inverting the render transform.
	m.clicks = append(m.clicks, engine.Click{
		X:      float64(msg.X) + m.scene.Camera.X,
		Y:      float64(m.screen.Height()-1-msg.Y) + m.scene.Camera.Y,
		Button: int(msg.Button),
	})
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.drainFrames()
	m.publishInput()

	if m.quitting {
		return m, tea.Quit
	}
	return m, tickCmd(m.opts.FPS)
}

// drainFrames folds every waiting payload into the scene.
func (m *Model) drainFrames() {
	for {
		data, ok, err := m.side.PollFrame()
		if err != nil {
			m.fail(err)
			return
		}
		if !ok {
			return
		}

		payload, err := engine.DecodePayload(data)
		if err != nil {
			m.fail(err)
			return
		}
		touched, err := m.scene.Apply(payload)
		if err != nil {
			m.fail(err)
			return
		}
		m.frames++

		if m.opts.Audio != nil {
			for _, st := range touched {
				clip := m.scene.Clips[st.ClipID]
				if err := m.opts.Audio.Update(st, clip); err != nil && m.opts.Logger != nil {
					m.opts.Logger.Warn("audio playback failed", "error", err)
				}
			}
		}
	}
}

// publishInput sends the keys and clicks collected since the previous tick.
func (m *Model) publishInput() {
	snap := engine.Snapshot{KeyPresses: m.pending, Clicks: m.clicks}
	if snap.KeyPresses == nil {
		snap.KeyPresses = []int{}
	}
	if snap.Clicks == nil {
		snap.Clicks = []engine.Click{}
	}

	data, err := snap.Encode()
	if err != nil {
		m.fail(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.side.SendInput(ctx, data); err != nil {
		m.fail(err)
		return
	}

	m.pending = nil
	m.clicks = nil
}

func (m *Model) fail(err error) {
	m.lastErr = err
	if m.opts.Logger != nil {
		m.opts.Logger.Error("host frame failed", "error", err)
	}
	m.quitting = true
}

// Err returns the error that stopped the host, if any.
func (m Model) Err() error {
	return m.lastErr
}

// View renders the reconstructed scene plus a help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Render(m.scene, m.screen)
	return Styled(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for the host and blocks until it exits.
func Run(side transport.HostSide, opts Options) error {
	model := NewModel(side, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.lastErr != nil {
		return m.lastErr
	}
	return nil
}
