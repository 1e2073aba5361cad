// Package cli holds the state shared by the command line subcommands.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/cosmiccatalog/cosmic-catalog/internal/app"
	"github.com/cosmiccatalog/cosmic-catalog/internal/conf"
	"github.com/cosmiccatalog/cosmic-catalog/internal/logger"
)

// Context is created once per process and filled in by the root command
// before any subcommand runs.
type Context struct {
	ConfigFile string
	JSON       bool

	Settings *conf.Settings
	Logger   logger.Logger
	App      *app.App

	Out    io.Writer
	ErrOut io.Writer
}

// NewContext returns a context writing to the process streams.
func NewContext() *Context {
	return &Context{Out: os.Stdout, ErrOut: os.Stderr}
}

// Load reads the configuration and builds the logger.
func (c *Context) Load() error {
	settings, err := conf.Load(c.ConfigFile)
	if err != nil {
		return err
	}
	c.Settings = settings
	c.Logger = NewLogger(settings, c.ErrOut)
	return nil
}

// Open wires the application. Load must have succeeded first.
func (c *Context) Open() error {
	a, err := app.New(c.Settings, c.Logger)
	if err != nil {
		return err
	}
	c.App = a
	return nil
}

// Close releases the application if it was opened. It is safe to call
// more than once.
func (c *Context) Close() error {
	if c.App == nil {
		return nil
	}
	a := c.App
	c.App = nil
	return a.Close()
}

// Printer returns the output printer for this invocation.
func (c *Context) Printer() *Printer {
	tz := c.Settings.Location()
	return NewPrinter(c.Out, c.JSON || !isTerminal(c.Out), tz)
}

// NewLogger builds the process logger from the log settings. An empty
// format picks console output for terminals and JSON otherwise.
func NewLogger(settings *conf.Settings, w io.Writer) logger.Logger {
	level := logger.ParseLevel(settings.Log.Level)
	if settings.Debug && level != logger.LogLevelTrace {
		level = logger.LogLevelDebug
	}

	format := settings.Log.Format
	if format == "" {
		format = "json"
		if isTerminal(w) {
			format = "console"
		}
	}

	var log logger.Logger
	if format == "console" {
		log = logger.NewConsoleLogger(w, level, settings.Location())
	} else {
		log = logger.NewSlogLogger(w, level, settings.Location())
	}
	return log.Module("catalog")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
