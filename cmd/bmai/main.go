// Package main provides the bmai CLI: a line-oriented stdin/stdout
// driver around the Button Men decision engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pappde/bmai-sub000/protocol"
	"github.com/pappde/bmai-sub000/stats"
)

// CLI flags
var (
	seed    int64
	debug   string
	verbose bool
)

func init() {
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 = use current time)")
	flag.StringVar(&debug, "debug", "", "Comma-free debug category to enable at startup (e.g. BMAI)")
	flag.BoolVar(&verbose, "verbose", false, "Enable all debug categories")
}

func main() {
	flag.Parse()

	log := stats.NewDefaultLogger()
	if verbose {
		for _, cat := range []string{"PARSER", "SIMULATION", "ROUND", "GAME", "QAI", "BMAI"} {
			log.SetLogging(cat, true)
		}
	} else if debug != "" {
		if !log.SetLogging(debug, true) {
			fmt.Fprintf(os.Stderr, "unknown debug category: %s\n", debug)
			os.Exit(1)
		}
	}

	d := protocol.NewDriver(os.Stdin, os.Stdout, seed, log)
	if err := d.Run(); err != nil {
		fmt.Fprintln(os.Stderr, protocol.Fatal(err))
		os.Exit(1)
	}
}
