// sotftools edits Sons Of The Forest save slots.
// Usage: sotftools [--version] [--plain] [--trace] [--script <file>] [--write] <save_dir>
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nathoo/sotftools/cli"
	"github.com/nathoo/sotftools/config"
	"github.com/nathoo/sotftools/engine"
	"github.com/nathoo/sotftools/script"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: sotftools [--version] [--plain] [--trace] [--script <file>] [--write] <save_dir>\n"

func main() {
	plain := false
	trace := false
	write := false
	var saveDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("sotftools %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--write":
			write = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if saveDir == "" {
				saveDir = args[i]
			}
		}
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if saveDir == "" {
		saveDir = cfg.SaveDir
	}
	if saveDir == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	level := new(slog.LevelVar)
	if trace || cfg.Trace {
		level.Set(slog.LevelDebug)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	eng, err := engine.Open(saveDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading save: %v\n", err)
		os.Exit(1)
	}
	eng.RevivalHealth = cfg.RevivalHealth()

	if scriptFile != "" {
		if err := script.Run(scriptFile, eng, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if write && eng.Dirty() {
			if err := eng.Write(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}

	c := cli.New(eng)
	c.Level = level
	c.Trace = trace || cfg.Trace
	c.Plain = plain || !isTerminal(os.Stdout)
	c.EchoInput = !isTerminal(os.Stdin)
	c.Run()
}

// isTerminal returns true if f is a terminal (not piped/redirected).
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
