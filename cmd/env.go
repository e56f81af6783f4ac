package cmd

import (
	"os"

	"github.com/au2001/onepace-stremio/color"
	"github.com/au2001/onepace-stremio/style"
	"github.com/au2001/onepace-stremio/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)

	envCmd.Flags().BoolP("set", "s", false, "Only list variables present in the environment")

	envCmd.SetOut(os.Stdout)
}

type envVar struct {
	name string
	key  string
}

func envVars() []envVar {
	vars := []envVar{{name: where.EnvConfigPath}}
	for _, field := range sortedFields() {
		vars = append(vars, envVar{name: field.Env(), key: field.Key})
	}
	return vars
}

// envCmd lists the variables overriding settings, with the key each one replaces.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables overriding settings",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set"))

		for _, v := range envVars() {
			value, present := os.LookupEnv(v.name)
			if setOnly && !present {
				continue
			}

			line := style.Fg(color.Purple)(v.name) + "=" + lo.Ternary(present, style.Fg(color.Green)(value), style.Faint("unset"))
			if v.key != "" {
				line += " " + style.Faint("("+v.key+")")
			}
			cmd.Println(line)
		}
	},
}
