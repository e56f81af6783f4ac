// Package cmd implements the command-line interface of the catalog builder.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/au2001/onepace-stremio/color"
	"github.com/au2001/onepace-stremio/constant"
	"github.com/au2001/onepace-stremio/icon"
	"github.com/au2001/onepace-stremio/key"
	"github.com/au2001/onepace-stremio/log"
	"github.com/au2001/onepace-stremio/style"
	"github.com/au2001/onepace-stremio/util"
	"github.com/au2001/onepace-stremio/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("output", "o", "", "Directory holding meta/, stream/ and static/")
	lo.Must0(viper.BindPFlag(key.CatalogOutput, rootCmd.PersistentFlags().Lookup("output")))

	// Leftovers of interrupted runs.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point of the catalog builder.
var rootCmd = &cobra.Command{
	Use:   constant.Onepace,
	Short: "Build a Stremio catalog of One Pace episodes",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Build a Stremio catalog of One Pace episodes"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
