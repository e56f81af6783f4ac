package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/au2001/onepace-stremio/color"
	"github.com/au2001/onepace-stremio/key"
	"github.com/au2001/onepace-stremio/style"
	"github.com/au2001/onepace-stremio/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type location struct {
	flag  string
	about string
	path  func() string
}

// locations lists the directories and files a build reads or writes, in the order they are printed.
var locations = []location{
	{"config", "settings file directory", where.Config},
	{"catalog", "catalog document", func() string {
		return filepath.Join(where.Output(), "meta", "series", viper.GetString(key.CatalogName)+".json")
	}},
	{"output", "catalog output root", where.Output},
	{"torrents", "cached torrent metadata", where.Torrents},
	{"nyaa", "cached nyaa lookups", where.Nyaa},
	{"logs", "log files", where.Logs},
	{"temp", "subtitle conversion scratch space", where.Temp},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().Bool(l.flag, false, "Print only the "+l.about+" path")
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths a build reads and writes",
	Run: func(cmd *cobra.Command, args []string) {
		selected, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		})
		if ok {
			cmd.Println(selected.path())
			return
		}

		width := lo.Max(lo.Map(locations, func(l location, _ int) int {
			return len(l.flag)
		}))
		for _, l := range locations {
			cmd.Printf("%s %s %s\n",
				style.Fg(color.Purple)(fmt.Sprintf("%-*s", width, l.flag)),
				l.path(),
				style.Faint("("+l.about+")"),
			)
		}
	},
}
