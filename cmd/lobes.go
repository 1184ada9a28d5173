package cmd

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/glintlab/go-rough-dielectric/pkg/core"
	"github.com/glintlab/go-rough-dielectric/pkg/material"
)

// Lobes tabulates, per incidence angle, the smooth-interface Fresnel
// reflectance next to the fraction of samples the rough model actually
// scatters into each lobe. Useful for eyeballing how roughness and total
// internal reflection reshape the reflection/transmission split.
func Lobes(ctx *cli.Context) error {
	setupLogging(ctx)

	m, err := loadMaterial(ctx)
	if err != nil {
		return err
	}

	samples := ctx.Int("samples")
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(ctx.Int64("seed"))))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Angle", "Fresnel R", "Sampled R", "Sampled T", "Rejected"})

	for angle := 0.0; angle <= 85.0; angle += 5.0 {
		theta := angle * math.Pi / 180.0
		wi := core.NewVec3(math.Sin(theta), 0, math.Cos(theta))
		fresnel := material.FresnelDielectric(math.Cos(theta), m.ExtIOR(), m.IntIOR())

		var reflected, transmitted, rejected int
		for i := 0; i < samples; i++ {
			rec := material.NewScatterQuery(wi)
			weight := m.Sample(rec, sampler.Get2D(), sampler)
			if weight.IsZero() {
				rejected++
				continue
			}
			if rec.SampledComponent == material.ReflectionComponent {
				reflected++
			} else {
				transmitted++
			}
		}

		table.Append([]string{
			fmt.Sprintf("%.0f deg", angle),
			fmt.Sprintf("%.4f", fresnel),
			fmt.Sprintf("%.4f", float64(reflected)/float64(samples)),
			fmt.Sprintf("%.4f", float64(transmitted)/float64(samples)),
			fmt.Sprintf("%d", rejected),
		})
	}

	table.Render()
	fmt.Print(buf.String())
	return nil
}
