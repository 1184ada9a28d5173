package cmd

import (
	"github.com/urfave/cli"

	"github.com/glintlab/go-rough-dielectric/pkg/material"
)

// loadMaterial builds the material under test from the --params flag, or
// the default rough BK7/air interface when no file is given
func loadMaterial(ctx *cli.Context) (*material.RoughDielectric, error) {
	path := ctx.String("params")
	if path == "" {
		logger.Info("no parameter file given, using default rough glass")
		return material.DefaultRoughGlass(), nil
	}

	params, err := material.LoadParamsFile(path)
	if err != nil {
		return nil, err
	}
	return params.Build()
}
