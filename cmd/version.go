package cmd

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"

	"github.com/au2001/onepace-stremio/constant"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Print build information as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")

	versionCmd.SetOut(os.Stdout)
}

type buildInfo struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	BuiltAt   string `json:"builtAt"`
	BuiltBy   string `json:"builtBy"`
	Go        string `json:"go"`
	Platform  string `json:"platform"`
	UserAgent string `json:"userAgent"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:   constant.Version,
		Revision:  constant.Revision,
		BuiltAt:   strings.TrimSpace(constant.BuiltAt),
		BuiltBy:   constant.BuiltBy,
		Go:        runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		UserAgent: constant.UserAgent,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		info := currentBuild()

		switch {
		case lo.Must(cmd.Flags().GetBool("short")):
			cmd.Println(info.Version)
		case lo.Must(cmd.Flags().GetBool("json")):
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			handleErr(enc.Encode(info))
		default:
			tw := table.NewWriter()
			tw.SetStyle(table.StyleLight)
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetTitle(constant.Onepace + " " + info.Version)
			tw.AppendRows([]table.Row{
				{"revision", info.Revision},
				{"built", info.BuiltAt + " by " + info.BuiltBy},
				{"go", info.Go},
				{"platform", info.Platform},
				{"user agent", info.UserAgent},
			})
			tw.Render()
		}
	},
}
