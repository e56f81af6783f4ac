// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/au2001/onepace-stremio/color"
	"github.com/au2001/onepace-stremio/constant"
	"github.com/au2001/onepace-stremio/icon"
	"github.com/au2001/onepace-stremio/key"
	"github.com/au2001/onepace-stremio/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
	Constraints []Constraint
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Onepace + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register adds a new configuration field to the global registry.
	register := func(k string, v any, desc string, constraints ...Constraint) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc, Constraints: constraints}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.CatalogName, constant.Onepace, "Catalog name.\nThe catalog is written to meta/series/<name>.json", NotEmpty)
	register(key.CatalogOutput, ".", "Directory holding meta/, stream/ and static/")
	register(key.CatalogArcs, "", "Path to a JSON object mapping arc titles to id prefixes.\nThe built-in table is used if empty")
	register(key.CatalogLanguage, "en", "Language code of the preferred episode translation", NotEmpty)
	register(key.CatalogMediaBase, "https://onepace.net/images/", "Base URL for thumbnails", NotEmpty)
	register(key.CatalogPlaceholder, "unreleased-placeholder-16x9.jpg", "Thumbnail used when an episode has no image, relative to the media base")
	register(key.CatalogImageMime, "image/webp", "Preferred thumbnail mime type")
	register(key.CatalogSpecials, constant.Specials, "Anime specials accepted as \"Episode of <name>\" in episode ranges")
	register(key.MetadataSource, "arcs.json", "Arc listing document.\nEither a local path or an http(s) URL", NotEmpty)
	register(key.FetchEndpoint, "https://onepace.net/torrents/%s.torrent", "Torrent file URL template, %s is replaced by the info hash", Containing("%s"))
	register(key.FetchRate, 3.0, "Torrent downloads allowed per second.\n0 disables the limit", AtLeast(0))
	register(key.FetchBurst, 3, "Torrent downloads allowed in a single burst", AtLeast(1))
	register(key.FetchWorkers, 16, "Episodes resolved concurrently", AtLeast(1))
	register(key.SubtitlesDir, "", "Directory with .ass subtitle releases.\nSubtitles are skipped if empty")
	register(key.SubtitlesPublicURL, "https://onepace.arl.sh/", "Public URL the static/ directory is served from")
	register(key.SubtitlesFFmpeg, "ffmpeg", "ffmpeg executable used to convert subtitles", NotEmpty)
	register(key.KaiPath, "", "Path to the Kai fill-in document.\nKai episodes are skipped if empty")
	register(key.NyaaRate, 1.0, "nyaa.si requests allowed per second.\n0 disables the limit", AtLeast(0))
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, nerd (nerd-font required)", OneOf(icon.AvailableVariants()...))
	register(key.LogsWrite, false, "Write logs to a daily file")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace",
		OneOf("panic", "fatal", "error", "warn", "info", "debug", "trace"))
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
