package cmd

import (
	"github.com/urfave/cli"

	"github.com/glintlab/go-rough-dielectric/log"
)

var logger = log.New("roughglass")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
