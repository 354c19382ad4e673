// cachekit is a small shell for poking at the cachekit structures.
//
// Usage:
//
//	cachekit [flags] [script]
//
// Flags:
//
//	-c, --capacity      Index slot count (default 64)
//	-l, --load-factor   Index admission ceiling in (0, 1] (default 0.75)
//	    --cache-size    Evicting cache size (default 16)
//	    --config        JSONC config file (default ./.cachekit.json if present)
//	    --history       Interactive history file
//	-v, --verbose       Echo each command to stderr
//
// With a script argument, or when stdin is not a terminal, commands are read
// line by line and the first failing command stops the run. Otherwise an
// interactive prompt is started. Type 'help' for the command list.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out, errOut io.Writer) error {
	flagSet := flag.NewFlagSet("cachekit", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	capacity := flagSet.IntP("capacity", "c", 0, "index slot count")
	loadFactor := flagSet.Float64P("load-factor", "l", 0, "index admission ceiling in (0, 1]")
	cacheSize := flagSet.Int("cache-size", 0, "evicting cache size")
	configPath := flagSet.String("config", "", "JSONC config file")
	history := flagSet.String("history", "", "interactive history file")
	verbose := flagSet.BoolP("verbose", "v", false, "echo each command to stderr")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("%w: at most one script, got %d", errUsage, flagSet.NArg())
	}

	path, mustExist := ConfigFileName, false
	if flagSet.Changed("config") {
		path, mustExist = *configPath, true
	}
	cfg, err := LoadConfig(path, mustExist)
	if err != nil {
		return err
	}

	if flagSet.Changed("capacity") {
		cfg.Capacity = *capacity
	}
	if flagSet.Changed("load-factor") {
		cfg.LoadFactor = *loadFactor
	}
	if flagSet.Changed("cache-size") {
		cfg.CacheSize = *cacheSize
	}
	if flagSet.Changed("history") {
		cfg.History = *history
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	s, err := newSession(cfg, out, errOut, *verbose)
	if err != nil {
		return err
	}

	if flagSet.NArg() == 1 {
		f, err := os.Open(flagSet.Arg(0))
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		return runScript(s, f)
	}

	if isTerminal(in) && liner.TerminalSupported() {
		return runInteractive(s, cfg.History)
	}
	return runScript(s, in)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// runScript executes commands from r, stopping at the first error.
func runScript(s *session, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		err := s.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

func runInteractive(s *session, historyPath string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completer)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintf(s.out, "cachekit (capacity=%d, load_factor=%.2f, cache_size=%d)\n",
		s.cfg.Capacity, s.cfg.LoadFactor, s.cfg.CacheSize)
	fmt.Fprintln(s.out, "Type 'help' for available commands.")

	for {
		input, err := line.Prompt("cachekit> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		err = s.exec(input)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		}
	}

	return saveHistory(line, historyPath)
}

// saveHistory replaces the history file in one rename so an interrupted
// write never truncates it.
func saveHistory(line *liner.State, path string) error {
	if path == "" {
		return nil
	}
	var buf bytes.Buffer
	if _, err := line.WriteHistory(&buf); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func completer(line string) []string {
	var out []string
	for _, name := range helpOrder {
		if strings.HasPrefix(name, line) {
			out = append(out, name)
		}
	}
	return out
}
