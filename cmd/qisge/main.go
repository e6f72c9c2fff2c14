// qisge runs quantum terminal games against a presentation host.
//
// Usage:
//
//	qisge list               - List available games
//	qisge play <game>        - Run a game against the configured transport
//	qisge host               - Run the terminal host that renders frames
//	qisge serve              - Expose the host over SSH
//	qisge sessions [game]    - Show the session log
//	qisge scrub              - Remove leftover exchange files
//
// Global flags:
//
//	--config <path>    - Path to a config YAML
//	--fps <rate>       - Frame rate override
//	--transport <t>    - Transport override: exchange, ws, memory
//	--exchange <dir>   - Exchange directory override
//	--db <path>        - Session database override
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qisge/qisge/internal/config"

	// Import games to register them
	_ "github.com/qisge/qisge/internal/games/bounce"
	_ "github.com/qisge/qisge/internal/games/park"
)

var (
	// Global flags
	flagConfig    string
	flagFPS       int
	flagSeed      int64
	flagTransport string
	flagExchange  string
	flagDBPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qisge",
	Short: "Quantum terminal games over a presentation bridge",
	Long: `qisge runs small quantum-flavored games that describe their scene as a
stream of change payloads, and a terminal host that renders those payloads.
Game and host talk over a file exchange, a websocket, or an in-process pipe.

Examples:
  qisge list
  qisge play park                 (in-process host)
  qisge play park --transport exchange --exchange /tmp/park
  qisge host --transport exchange --exchange /tmp/park
  qisge serve --ssh :23234
  qisge sessions park`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagTransport, "transport", "", "Transport: exchange, ws, memory")
	rootCmd.PersistentFlags().StringVar(&flagExchange, "exchange", "", "Exchange directory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to session database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(scrubCmd)
}

// loadConfig loads the YAML config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagFPS > 0 {
		cfg.Screen.FPS = flagFPS
	}
	if flagSeed != 0 {
		cfg.Screen.Seed = flagSeed
	}
	if flagTransport != "" {
		cfg.Transport.Type = flagTransport
	}
	if flagExchange != "" {
		cfg.Transport.ExchangeDir = flagExchange
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}

	return cfg, cfg.Validate()
}
