// Package main is the entry point for the richline editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/richline/internal/app"
	"github.com/dshills/richline/internal/logging"
	"github.com/dshills/richline/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	app         app.Options
	dump        string
	showVersion bool
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "richline %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if opts.dump != "" {
		if err := application.Dump(stdout, opts.dump); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	err = application.Run()
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Print the final buffer.
	fmt.Fprintln(stdout, application.Text())
	return 0
}

// parseFlags parses args. Only flags given explicitly override the
// configuration file and environment.
func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("richline", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		file      string
		transform string
		language  string
		script    string
		logLevel  string
		logFile   string
		text      string
	)
	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&file, "file", "", "Read the initial text from a file (never written)")
	fs.StringVar(&text, "text", "", "Initial text")
	fs.StringVar(&transform, "transform", "", "Transform: plain, classes, highlight or lua")
	fs.StringVar(&language, "language", "", "Highlighter language for the highlight transform")
	fs.StringVar(&script, "lua", "", "Lua script for the lua transform")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&logFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&opts.dump, "dump", "", "Print the rendered initial text as markup or json and exit")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "richline - a rich-text line editor\n\n")
		fmt.Fprintf(stderr, "Usage: richline [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nKeys: Ctrl-K starts a digraph, Ctrl-L redraws, Ctrl-Q quits.\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  richline -transform classes          Style #, * and -\n")
		fmt.Fprintf(stderr, "  richline -lua tags.lua                Render with a Lua script\n")
		fmt.Fprintf(stderr, "  richline -file notes.md -dump json    Print the rendered tree\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	settings := map[string]any{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			settings["editor.file"] = file
		case "text":
			settings["editor.initialText"] = text
		case "transform":
			settings["transform.name"] = transform
		case "language":
			settings["transform.language"] = language
		case "lua":
			settings["transform.script"] = script
			if _, ok := settings["transform.name"]; !ok {
				settings["transform.name"] = "lua"
			}
		case "log-level":
			settings["logging.level"] = logLevel
		case "log-file":
			settings["logging.file"] = logFile
		}
	})
	if _, ok := settings["transform.language"]; ok {
		if _, named := settings["transform.name"]; !named {
			settings["transform.name"] = "highlight"
		}
	}

	if lvl, ok := settings["logging.level"]; ok {
		if _, valid := logging.ParseLevel(lvl.(string)); !valid {
			return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", lvl)
		}
	}
	switch opts.dump {
	case "", app.FormatMarkup, app.FormatJSON:
	default:
		return opts, fmt.Errorf("invalid dump format %q (must be %s or %s)", opts.dump, app.FormatMarkup, app.FormatJSON)
	}

	opts.app.Settings = settings
	return opts, nil
}
