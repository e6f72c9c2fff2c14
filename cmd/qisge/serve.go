package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/qisge/qisge/internal/config"
	"github.com/qisge/qisge/internal/host"
	"github.com/qisge/qisge/internal/transport"
	"github.com/qisge/qisge/internal/transport/exchange"
)

var (
	flagSSHAddr    string
	flagSSHHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the host over SSH",
	Long: `Start an SSH server that serves the terminal host to remote clients.
Each connection polls the configured exchange directory, so a game running on
this machine can be watched and controlled from any terminal with ssh.

Examples:
  qisge serve
  qisge serve --ssh :2222 --exchange /tmp/park`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (default from config)")
	serveCmd.Flags().StringVar(&flagSSHHostKey, "host-key", "", "Path to the SSH host key")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Transport.Type != "exchange" {
		fmt.Fprintln(os.Stderr, "Error: serve requires the exchange transport")
		os.Exit(1)
	}

	srvCfg := host.SSHServerConfig{
		Address:     cfg.Host.SSHListen,
		HostKeyPath: cfg.Host.SSHHostKey,
		FPS:         cfg.Screen.FPS,
		ScreenW:     cfg.Screen.Width,
		ScreenH:     cfg.Screen.Height,
		IdleTimeout: 30 * time.Minute,
	}
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagSSHHostKey != "" {
		srvCfg.HostKeyPath = flagSSHHostKey
	}
	if srvCfg.Address == "" {
		srvCfg.Address = host.DefaultSSHServerConfig().Address
	}
	srvCfg.HostKeyPath = config.ExpandHome(srvCfg.HostKeyPath)

	dir := cfg.Transport.ExchangeDir
	factory := func() (transport.HostSide, error) {
		return exchange.OpenHost(dir)
	}

	srv, err := host.NewSSHServer(srvCfg, factory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
