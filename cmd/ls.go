package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/au2001/onepace-stremio/catalog"
	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/key"
	"github.com/au2001/onepace-stremio/where"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().IntP("season", "s", 0, "Only list videos of this season")
	lsCmd.Flags().BoolP("missing", "m", false, "Only list videos without a stream")

	lsCmd.SetOut(os.Stdout)
}

// lsCmd prints the persisted catalog.
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the videos of the catalog on disk",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			season  = lo.Must(cmd.Flags().GetInt("season"))
			missing = lo.Must(cmd.Flags().GetBool("missing"))
			store   = catalog.NewStore(filesystem.API(), where.Output(), viper.GetString(key.CatalogName))
		)

		doc, err := store.Load()
		handleErr(err)

		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.AppendHeader(table.Row{"ID", "S", "E", "Title", "Released", "Stream", "Subtitles"})

		for _, v := range doc.Videos {
			if season > 0 && v.Season != season {
				continue
			}

			stream, err := store.LoadStream(v.ID)
			handleErr(err)

			if missing && stream.IsPresent() {
				continue
			}

			var target, langs string
			if s, ok := stream.Get(); ok {
				target = s.String()
				langs = strings.Join(lo.Map(s.Subtitles, func(sub catalog.Subtitle, _ int) string {
					return sub.Lang
				}), ",")
			}

			released, _, _ := strings.Cut(v.Released, "T")
			tw.AppendRow(table.Row{v.ID, strconv.Itoa(v.Season), strconv.Itoa(v.Episode), v.Title, released, target, langs})
		}

		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
			{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
			{Number: 4, WidthMax: 48},
		})
		tw.Render()
	},
}
