// Package buildinfo carries build-time metadata injected through ldflags.
package buildinfo

import "runtime/debug"

const unknown = "unknown"

// Set by -ldflags "-X github.com/cosmiccatalog/cosmic-catalog/internal/buildinfo.version=..."
var (
	version   = ""
	buildDate = ""
)

// BuildInfo provides access to build-time metadata.
type BuildInfo interface {
	GetVersion() string
	GetBuildDate() string
}

// Context contains build-time metadata that is not user-configurable.
type Context struct {
	Version   string
	BuildDate string
}

// Current returns the metadata of the running binary. When no version was
// injected at link time, the main module version recorded by the Go
// toolchain is used.
func Current() *Context {
	c := &Context{Version: version, BuildDate: buildDate}
	if c.Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			c.Version = info.Main.Version
		}
	}
	return c
}

// GetVersion implements BuildInfo.GetVersion
func (c *Context) GetVersion() string {
	if c == nil || c.Version == "" {
		return unknown
	}
	return c.Version
}

// GetBuildDate implements BuildInfo.GetBuildDate
func (c *Context) GetBuildDate() string {
	if c == nil || c.BuildDate == "" {
		return unknown
	}
	return c.BuildDate
}
