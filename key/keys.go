// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog - these keys shape the assembled videos and where the catalog is written.
const (
	CatalogName        = "catalog.name"
	CatalogOutput      = "catalog.output"
	CatalogArcs        = "catalog.arcs"
	CatalogLanguage    = "catalog.language"
	CatalogMediaBase   = "catalog.media_base"
	CatalogPlaceholder = "catalog.placeholder"
	CatalogImageMime   = "catalog.image_mime"
	CatalogSpecials    = "catalog.specials"
)

// Metadata - location of the arc listing document.
const (
	MetadataSource = "metadata.source"
)

// Fetch - torrent metadata resolution and concurrency.
const (
	FetchEndpoint = "fetch.endpoint"
	FetchRate     = "fetch.rate"
	FetchBurst    = "fetch.burst"
	FetchWorkers  = "fetch.workers"
)

// Subtitles
const (
	SubtitlesDir       = "subtitles.dir"
	SubtitlesPublicURL = "subtitles.public_url"
	SubtitlesFFmpeg    = "subtitles.ffmpeg"
)

// Kai fill-in
const (
	KaiPath = "kai.path"
)

// Nyaa
const (
	NyaaRate = "nyaa.rate"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment
const (
	CliColored = "cli.colored"
)
