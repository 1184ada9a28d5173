package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/glintlab/go-rough-dielectric/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "roughglass"
	app.Usage = "inspect and verify rough dielectric scattering models"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	materialFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "params, p",
			Usage: "JSON material parameter file (default: rough BK7 glass)",
		},
		cli.IntFlag{
			Name:  "samples, n",
			Value: 100000,
			Usage: "Monte Carlo sample count",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "random seed",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "validate",
			Usage: "validate material parameter files",
			Description: `
Load one or more JSON material parameter files, run the construction-time
consistency checks (index of refraction, anisotropy support) and print a
summary of each material.`,
			ArgsUsage: "params1.json params2.json ...",
			Action:    cmd.Validate,
		},
		{
			Name:  "furnace",
			Usage: "run a white-furnace energy conservation test",
			Flags: append(materialFlags,
				cli.Float64Flag{
					Name:  "angle",
					Value: 30.0,
					Usage: "incidence angle in degrees",
				},
				cli.StringFlag{
					Name:  "mode",
					Value: "radiance",
					Usage: "transport mode: radiance or importance",
				},
			),
			Action: cmd.Furnace,
		},
		{
			Name:   "lobes",
			Usage:  "tabulate the reflection/transmission split across incidence angles",
			Flags:  materialFlags,
			Action: cmd.Lobes,
		},
	}

	app.Run(os.Args)
}
