// Package main is an interactive demo shell for the keyline editing
// engine: it reads lines with full Emacs/vi editing and echoes them.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/digraph"
	"github.com/dshills/keyline/internal/input/keymap"
	"github.com/dshills/keyline/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

const prompt = "> "

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		mode        string
		debug       bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&mode, "mode", "", "Editing mode: emacs or vi (overrides config)")
	flag.BoolVar(&debug, "debug", false, "Write diagnostics to keyline.log")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("keyline %s (%s)\n", version, commit)
		return 0
	}

	logger, closeLog, err := newLogger(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if mode != "" {
		cfg.Mode = mode
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	digraphs, err := buildDigraphs(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	sess, err := session.New(session.Options{
		Mode:          cfg.EditingMode(),
		History:       history.NewMemoryStore(cfg.History.MaxEntries),
		Registry:      registry,
		Digraphs:      digraphs,
		EscapeTimeout: cfg.EscapeTimeout(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("session started", "id", sess.ID(), "mode", cfg.EditingMode())

	// Live-reload inline bindings when the config file changes.
	// Register replaces keymaps by name, so reloading is additive.
	if _, err := os.Stat(configPath); err == nil {
		w, werr := config.Watch(context.Background(), configPath, func(path string) {
			next, lerr := config.Load(path)
			if lerr != nil {
				logger.Warn("config reload failed", "error", lerr)
				return
			}
			if _, lerr := reloadBindings(registry, next); lerr != nil {
				logger.Warn("config reload failed", "error", lerr)
				return
			}
			logger.Info("config reloaded", "path", path)
		})
		if werr != nil {
			logger.Warn("config watch unavailable", "error", werr)
		} else {
			defer w.Close()
		}
	}

	return interact(sess, logger)
}

// interact owns the terminal: raw mode, the read loop, and the escape
// timeout.
func interact(sess *session.Session, logger *slog.Logger) int {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal")
		return 1
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: raw mode: %v\n", err)
		return 1
	}
	restore := func() {
		os.Stdout.WriteString("\x1b[?2004l") // bracketed paste off
		_ = term.Restore(fd, oldState)
	}
	defer restore()
	os.Stdout.WriteString("\x1b[?2004h") // bracketed paste on

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM)

	input := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				readErr <- err
				return
			}
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			input <- chunk
		}
	}()

	for {
		render(sess.Snapshot())

		var timeout <-chan time.Time
		if sess.EscapePending() {
			timeout = time.After(sess.EscapeTimeout())
		}

		var outcome session.Outcome
		select {
		case chunk := <-input:
			outcome = sess.Feed(chunk)
		case <-timeout:
			outcome = sess.ResolveEscape()
		case err := <-readErr:
			if err != io.EOF {
				logger.Error("stdin read failed", "error", err)
			}
			os.Stdout.WriteString("\r\n")
			return 0
		case <-signals:
			os.Stdout.WriteString("\r\n")
			return 0
		}

		if sess.TakeClearRequest() {
			os.Stdout.WriteString("\x1b[2J\x1b[H")
		}

		switch outcome {
		case session.OutcomeAccept:
			render(sess.Snapshot())
			line := sess.Accepted()
			logger.Info("line accepted", "length", len(line))
			fmt.Printf("\r\nyou typed: %s\r\n", line)
			sess.Reset()
		case session.OutcomeInterrupt:
			os.Stdout.WriteString("^C\r\n")
			sess.Reset()
		case session.OutcomeEndOfInput:
			os.Stdout.WriteString("\r\n")
			return 0
		}
	}
}

// render redraws the line in place. Newlines in a multiline buffer are
// shown as a visible marker; the demo renders a single row.
func render(snap session.Snapshot) {
	text := strings.ReplaceAll(snap.Text, "\n", "⏎")

	var sb strings.Builder
	sb.WriteString("\r\x1b[2K")
	sb.WriteString(prompt)
	sb.WriteString(text)
	if snap.Pending != "" {
		sb.WriteString("  [")
		sb.WriteString(snap.Pending)
		sb.WriteString("]")
	}
	// Reposition the hardware cursor over the logical one.
	sb.WriteString("\r")
	if col := len(prompt) + snap.DisplayCol; col > 0 {
		fmt.Fprintf(&sb, "\x1b[%dC", col)
	}
	os.Stdout.WriteString(sb.String())
}

// reloadBindings layers a changed config's inline bindings over the
// live registry.
func reloadBindings(registry *keymap.Registry, cfg config.Config) (*keymap.Registry, error) {
	fresh, err := cfg.BuildRegistry()
	if err != nil {
		return nil, err
	}
	// Re-register the inline keymaps into the live registry; names are
	// stable so updated maps replace their previous versions.
	for _, name := range []string{
		"config-inline",
		"config-inline-" + keymap.ModeEmacs,
		"config-inline-" + keymap.ModeViNormal,
		"config-inline-" + keymap.ModeViInsert,
		"config-inline-" + keymap.ModeViReplace,
	} {
		if km := fresh.Get(name); km != nil {
			if err := registry.Register(km.Keymap); err != nil {
				return nil, err
			}
		}
	}
	return registry, nil
}

func buildDigraphs(cfg config.Config) (*digraph.Table, error) {
	table := digraph.Default()
	for _, path := range cfg.DigraphFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("digraph file: %w", err)
		}
		if err := table.MergeYAML(data); err != nil {
			return nil, fmt.Errorf("digraph file %s: %w", path, err)
		}
	}
	return table, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "keyline.toml"
	}
	return dir + "/keyline/keyline.toml"
}

func newLogger(debug bool) (*slog.Logger, func(), error) {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile("keyline.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
