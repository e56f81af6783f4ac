// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/au2001/onepace-stremio/constant"
	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "ONEPACE_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the ONEPACE_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Onepace))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Onepace))
}

// Torrents resolves the directory holding raw torrent files, one per info hash or URI.
func Torrents() string {
	return ensureDir(filepath.Join(Cache(), "torrents"))
}

// Nyaa resolves the nyaa.si id to info hash map.
func Nyaa() string {
	return filepath.Join(Cache(), "nyaa.json")
}

// Logs resolves the absolute path to the directory used for application diagnostic and audit logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Output resolves the catalog output directory, which holds meta/, stream/ and static/.
func Output() string {
	dir := viper.GetString(key.CatalogOutput)
	if dir == "" {
		dir = "."
	}
	return ensureDir(dir)
}

// Temp resolves a volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Onepace))
}
