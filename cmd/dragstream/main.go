// Package main is the entry point for the dragstream demo.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/dragstream/internal/app"
	"github.com/dshills/dragstream/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := parseFlags()

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	terminal, err := term.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	application.SetTerminal(terminal)

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Config {
	var cfg app.Config
	var showVersion bool
	var showHelp bool

	flag.IntVar(&cfg.Items, "items", 6, "Number of list items")
	flag.IntVar(&cfg.Items, "n", 6, "Number of list items (shorthand)")
	flag.BoolVar(&cfg.Horizontal, "horizontal", false, "Lay the list out left-to-right")
	flag.StringVar(&cfg.SettingsPath, "settings", "", "Path to an engine settings file")
	flag.StringVar(&cfg.SettingsPath, "s", "", "Path to an engine settings file (shorthand)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&cfg.Verbose, "d", false, "Enable debug logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Dragstream - drag-and-drop lifecycle demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dragstream [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dragstream                  Drag a vertical list\n")
		fmt.Fprintf(os.Stderr, "  dragstream -horizontal      Drag a horizontal list\n")
		fmt.Fprintf(os.Stderr, "  dragstream -s drag.json     Load engine settings\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Dragstream %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return cfg
}
