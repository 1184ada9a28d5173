package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/glintlab/go-rough-dielectric/pkg/material"
)

// Validate loads material parameter files, runs the construction-time
// consistency checks and prints a summary of each material.
func Validate(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing parameter file argument")
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"File", "Distribution", "ext/int IOR", "Anisotropic", "Spatially varying", "R at normal incidence"})

	for idx := 0; idx < ctx.NArg(); idx++ {
		path := ctx.Args().Get(idx)

		params, err := material.LoadParamsFile(path)
		if err != nil {
			return err
		}

		m, err := params.Build()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		logger.Infof("validated material from %s", path)
		table.Append([]string{
			path,
			m.Distribution().String(),
			fmt.Sprintf("%.6g / %.6g", m.ExtIOR(), m.IntIOR()),
			fmt.Sprintf("%t", m.Anisotropic()),
			fmt.Sprintf("%t", m.SpatiallyVarying()),
			fmt.Sprintf("%.4f", material.FresnelDielectric(1.0, m.ExtIOR(), m.IntIOR())),
		})
	}

	table.Render()
	fmt.Print(buf.String())
	return nil
}
