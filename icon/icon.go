// Package icon renders status symbols in the variant chosen by the user.
package icon

import (
	"github.com/au2001/onepace-stremio/key"
	"github.com/spf13/viper"
)

// Variants
const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns every supported icon variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Mark
	Added
	Removed
	Changed
	Cache
)

// iconDef holds the representations of one symbol.
type iconDef struct {
	emoji string
	nerd  string
	plain string
}

// Get renders the definition in the configured variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "🎉", nerd: "", plain: "✓"},
	Fail:     {emoji: "💀", nerd: "", plain: "✗"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!"},
	Progress: {emoji: "⏳", nerd: "", plain: "…"},
	Mark:     {emoji: "➡️", nerd: "", plain: "→"},
	Added:    {emoji: "🆕", nerd: "", plain: "+"},
	Removed:  {emoji: "🗑️", nerd: "", plain: "-"},
	Changed:  {emoji: "✏️", nerd: "", plain: "~"},
	Cache:    {emoji: "📦", nerd: "", plain: "#"},
}

// Get returns the rendered symbol of an icon.
func Get(i Icon) string {
	return icons[i].Get()
}
