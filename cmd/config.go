package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/au2001/onepace-stremio/color"
	"github.com/au2001/onepace-stremio/config"
	"github.com/au2001/onepace-stremio/constant"
	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/icon"
	"github.com/au2001/onepace-stremio/style"
	"github.com/au2001/onepace-stremio/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd, configCheckCmd, configWriteCmd)

	configInfoCmd.Flags().BoolP("json", "j", false, "Print the fields as JSON")

	configResetCmd.Flags().BoolP("all", "a", false, "Reset every field")

	configWriteCmd.Flags().BoolP("force", "f", false, "Replace an existing config file")

	for _, c := range configCmd.Commands() {
		c.SetOut(os.Stdout)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change build settings",
	Long: `Inspect and change build settings.
Settings are read from the config file, then overridden by ` + "ONEPACE_*" + ` environment variables and flags.`,
}

// lookupField returns the field registered under k, suggesting the closest key otherwise.
func lookupField(k string) (config.Field, error) {
	if field, ok := config.Default[k]; ok {
		return field, nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
	return config.Field{}, fmt.Errorf("unknown key %s, did you mean %s?", style.Fg(color.Red)(k), style.Fg(color.Yellow)(closest))
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func configFile() string {
	return filepath.Join(where.Config(), constant.Onepace+".toml")
}

// saveConfig writes the in-memory settings, creating the file on first use.
func saveConfig() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

func sortedFields() []config.Field {
	fields := lo.Values(config.Default)
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Key < fields[j].Key
	})
	return fields
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe settings with their current and default values",
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fields := sortedFields()

		if len(args) > 0 {
			fields = make([]config.Field, 0, len(args))
			for _, k := range args {
				field, err := lookupField(k)
				handleErr(err)
				fields = append(fields, field)
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i, field := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(field.Pretty())
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the current value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := lookupField(args[0])
		handleErr(err)
		cmd.Println(field.Current())
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value...>",
	Short:             "Change a setting in the config file",
	Example:           "  onepace config set fetch.rate 1.5\n  onepace config set catalog.specials Nami Luffy Merry",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := lookupField(args[0])
		handleErr(err)

		value, err := field.Parse(args[1:])
		handleErr(err)
		handleErr(field.Check(value))

		viper.Set(field.Key, value)
		handleErr(saveConfig())

		cmd.Printf("%s %s = %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(field.Key),
			style.Fg(color.Yellow)(fmt.Sprint(value)),
		)
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore settings to their defaults",
	ValidArgsFunction: completeKeys,
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) > 0) {
			handleErr(errors.New("pass either keys or --all"))
		}

		fields := sortedFields()
		if !all {
			fields = fields[:0]
			for _, k := range args {
				field, err := lookupField(k)
				handleErr(err)
				fields = append(fields, field)
			}
		}

		for _, field := range fields {
			viper.Set(field.Key, field.Value)
		}
		handleErr(saveConfig())

		cmd.Printf("%s reset %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), lo.Ternary(all, "all settings", fmt.Sprint(args)))
	},
}

// configCheckCmd validates the effective settings the way build does before it starts.
var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the effective settings",
	Run: func(cmd *cobra.Command, args []string) {
		var failed bool
		for _, field := range sortedFields() {
			if err := field.Check(field.Current()); err != nil {
				failed = true
				cmd.Printf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), err)
			}
		}

		if failed {
			os.Exit(1)
		}
		cmd.Printf("%s all settings are valid\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the effective settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			err := filesystem.API().Remove(path)
			if !os.IsNotExist(err) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		cmd.Printf("%s wrote %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}
