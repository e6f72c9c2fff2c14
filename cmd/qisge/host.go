package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qisge/qisge/internal/config"
	"github.com/qisge/qisge/internal/host"
	"github.com/qisge/qisge/internal/transport"
	"github.com/qisge/qisge/internal/transport/exchange"
	"github.com/qisge/qisge/internal/transport/wsbridge"
)

var (
	flagAudio    bool
	flagAssetDir string
	flagFitTerm  bool
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Run the terminal host",
	Long: `Run the terminal host: consume frame payloads from a game, render the
scene, and publish key presses and clicks back.

With the exchange transport the host polls the frame file a game writes into
the exchange directory. With the ws transport the host listens for the game to
connect.

Examples:
  qisge host --transport exchange --exchange /tmp/park
  qisge host --transport ws
  qisge host --audio --assets ./assets`,
	Run: runHost,
}

func init() {
	hostCmd.Flags().BoolVar(&flagAudio, "audio", false, "Play sound channels")
	hostCmd.Flags().StringVar(&flagAssetDir, "assets", "", "Directory holding sound clips")
	hostCmd.Flags().BoolVar(&flagFitTerm, "fit", false, "Size the play area to the terminal")
}

func runHost(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagAudio {
		cfg.Host.Audio = true
	}
	if flagAssetDir != "" {
		cfg.Host.AssetDir = flagAssetDir
	}

	if flagFitTerm {
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			cfg.Screen.Width = w
			cfg.Screen.Height = h - 1 // keep room for the help line
		}
	}

	side, cleanup, err := openHostSide(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := host.Run(side, hostOptions(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running host: %v\n", err)
		os.Exit(1)
	}
}

// openHostSide builds the host side of the transport the config names.
func openHostSide(cfg config.Config) (transport.HostSide, func(), error) {
	switch cfg.Transport.Type {
	case "exchange":
		h, err := exchange.OpenHost(cfg.Transport.ExchangeDir)
		if err != nil {
			return nil, nil, err
		}
		return h, func() { h.Close() }, nil
	case "ws":
		srv := wsbridge.NewServer(cfg.Transport.WSListen, newLogger("qisge-ws"))
		if err := srv.Start(); err != nil {
			return nil, nil, err
		}
		return srv, func() { srv.Close() }, nil
	}
	return nil, nil, fmt.Errorf("transport %q has no standalone host side", cfg.Transport.Type)
}
