// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Onepace is the canonical application identifier used for filesystem paths and CLI branding.
	Onepace = "onepace"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the HTTP User-Agent sent to metadata, torrent and nyaa endpoints.
	UserAgent = "onepace-stremio/" + Version + " (+https://github.com/au2001/onepace-stremio)"
)

// Build metadata, injected with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
