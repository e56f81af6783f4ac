// Package main is the entry point of the One Pace catalog builder.
package main

import (
	"github.com/au2001/onepace-stremio/cmd"
	"github.com/au2001/onepace-stremio/config"
	"github.com/au2001/onepace-stremio/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
