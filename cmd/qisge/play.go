package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/qisge/qisge/internal/config"
	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
	"github.com/qisge/qisge/internal/host"
	"github.com/qisge/qisge/internal/loop"
	"github.com/qisge/qisge/internal/registry"
	"github.com/qisge/qisge/internal/storage"
	"github.com/qisge/qisge/internal/transport"
	"github.com/qisge/qisge/internal/transport/exchange"
	"github.com/qisge/qisge/internal/transport/memory"
	"github.com/qisge/qisge/internal/transport/wsbridge"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Run a game",
	Long: `Run the specified game against the configured transport.

With the memory transport (the default when nothing else is configured on the
command line) the terminal host runs in the same process, so a single command
gives a playable game. With the exchange or ws transports the game publishes
frames for a separately started 'qisge host'.

Examples:
  qisge play park
  qisge play bounce --transport exchange --exchange /tmp/bounce
  qisge play park --transport ws`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'qisge list' to see available games.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// No explicit transport means local play with the in-process host.
	if flagTransport == "" {
		cfg.Transport.Type = "memory"
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		store = nil
	}

	var stats loop.Stats
	var runErr error
	if cfg.Transport.Type == "memory" {
		stats, runErr = playLocal(game, cfg)
	} else {
		stats, runErr = playRemote(game, cfg)
	}

	if store != nil {
		if _, saveErr := store.SaveSession(gameID, stats.Frames, stats.Duration); saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save session: %v\n", saveErr)
		}
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playLocal runs the game loop and the terminal host in one process, joined
// by the loopback transport.
func playLocal(game registry.Game, cfg config.Config) (loop.Stats, error) {
	gameEnd, hostEnd := memory.NewPair()

	s, err := engine.NewSession(gameEnd)
	if err != nil {
		return loop.Stats{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		stats loop.Stats
		err   error
	}
	done := make(chan result, 1)
	go func() {
		r := &loop.Runner{Session: s}
		stats, err := r.Run(ctx, game, runtimeConfig(cfg))
		s.Close()
		done <- result{stats, err}
	}()

	hostErr := host.Run(hostEnd, hostOptions(cfg))

	// The host quit; unblock the game if it is still looping.
	cancel()
	r := <-done

	if r.err != nil && ctx.Err() == nil {
		return r.stats, r.err
	}
	return r.stats, hostErr
}

// playRemote runs only the game loop against an external host.
func playRemote(game registry.Game, cfg config.Config) (loop.Stats, error) {
	t, err := openTransport(cfg)
	if err != nil {
		return loop.Stats{}, err
	}

	s, err := engine.NewSession(t, engine.WithLogger(newLogger("qisge")))
	if err != nil {
		return loop.Stats{}, err
	}
	defer s.Close()

	r := &loop.Runner{Session: s, Logger: newLogger("qisge")}
	return r.Run(context.Background(), game, runtimeConfig(cfg))
}

// openTransport builds the game-side transport the config names.
func openTransport(cfg config.Config) (transport.Transport, error) {
	switch cfg.Transport.Type {
	case "exchange":
		return exchange.Open(exchange.Options{
			Dir:          cfg.Transport.ExchangeDir,
			PollInterval: cfg.Transport.PollInterval(),
			HostTimeout:  cfg.Transport.HostTimeout(),
			NoWait:       cfg.Transport.NoWait,
		})
	case "ws":
		dialTimeout := cfg.Transport.HostTimeout()
		if dialTimeout <= 0 {
			dialTimeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		defer cancel()
		return wsbridge.Dial(ctx, cfg.Transport.WSURL)
	case "memory":
		// Local play builds its own loopback pair in playLocal; a lone
		// game-side endpoint would block forever with nobody draining it.
		return nil, fmt.Errorf("memory transport has no external host; run 'qisge play' without --transport")
	}
	return nil, fmt.Errorf("unknown transport type %q", cfg.Transport.Type)
}

func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW: cfg.Screen.Width,
		ScreenH: cfg.Screen.Height,
		FPS:     cfg.Screen.FPS,
		Seed:    cfg.Screen.Seed,
	}
}

func hostOptions(cfg config.Config) host.Options {
	opts := host.Options{
		FPS:     cfg.Screen.FPS,
		ScreenW: cfg.Screen.Width,
		ScreenH: cfg.Screen.Height,
	}
	if cfg.Host.Audio {
		player := host.NewAudioPlayer(cfg.Host.AssetDir)
		if err := player.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: audio disabled: %v\n", err)
		} else {
			opts.Audio = player
		}
	}
	return opts
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
