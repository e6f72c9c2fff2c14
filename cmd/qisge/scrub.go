package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qisge/qisge/internal/transport/exchange"
)

var scrubCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Remove leftover exchange files",
	Long: `Delete stale frame and input files from the exchange directory. Run this
when a crashed game or host left files behind, so the next run starts from a
clean slate.

Examples:
  qisge scrub --exchange /tmp/park`,
	Run: runScrub,
}

func runScrub(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ex, err := exchange.Open(exchange.Options{Dir: cfg.Transport.ExchangeDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer ex.Close()

	if err := ex.Scrub(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scrubbed %s\n", cfg.Transport.ExchangeDir)
}
