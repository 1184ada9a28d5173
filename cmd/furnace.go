package cmd

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/stat"

	"github.com/glintlab/go-rough-dielectric/pkg/core"
	"github.com/glintlab/go-rough-dielectric/pkg/material"
)

// Furnace runs a white-furnace test: it Monte-Carlo integrates the
// cosine-weighted scattered energy over the sphere using the material's own
// sampling routine. For unit reflectance/transmittance the estimate must
// converge to a directional albedo <= 1, so a value above one flags an
// energy gain in the model or its sampling weights.
func Furnace(ctx *cli.Context) error {
	setupLogging(ctx)

	m, err := loadMaterial(ctx)
	if err != nil {
		return err
	}

	samples := ctx.Int("samples")
	angle := ctx.Float64("angle")
	mode := material.Radiance
	if ctx.String("mode") == "importance" {
		mode = material.Importance
	}

	theta := angle * math.Pi / 180.0
	wi := core.NewVec3(math.Sin(theta), 0, math.Cos(theta))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(ctx.Int64("seed"))))

	weights := make([]float64, 0, samples)
	var rejected, reflected, transmitted int
	for i := 0; i < samples; i++ {
		rec := material.NewScatterQuery(wi)
		rec.Mode = mode

		value, pdf := m.SampleWithPDF(rec, sampler.Get2D(), sampler)
		if pdf == 0 {
			rejected++
			weights = append(weights, 0)
			continue
		}

		if rec.SampledComponent == material.ReflectionComponent {
			reflected++
		} else {
			transmitted++
		}
		weights = append(weights, value.Average()*core.AbsCosTheta(rec.Wo)/pdf)
	}

	albedo := stat.Mean(weights, nil)
	stderr := stat.StdDev(weights, nil) / math.Sqrt(float64(len(weights)))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Quantity", "Value"})
	table.Append([]string{"Distribution", m.Distribution().String()})
	table.Append([]string{"ext/int IOR", fmt.Sprintf("%.6g / %.6g", m.ExtIOR(), m.IntIOR())})
	table.Append([]string{"Incidence angle", fmt.Sprintf("%.1f deg", angle)})
	table.Append([]string{"Transport mode", ctx.String("mode")})
	table.Append([]string{"Samples", fmt.Sprintf("%d", samples)})
	table.Append([]string{"Rejected", fmt.Sprintf("%d", rejected)})
	table.Append([]string{"Reflection share", fmt.Sprintf("%.3f", float64(reflected)/float64(samples))})
	table.Append([]string{"Transmission share", fmt.Sprintf("%.3f", float64(transmitted)/float64(samples))})
	table.Append([]string{"Directional albedo", fmt.Sprintf("%.5f +/- %.5f", albedo, stderr)})
	table.Render()
	fmt.Print(buf.String())

	if albedo > 1.0+3*stderr {
		logger.Warningf("directional albedo %.5f exceeds 1: the model gains energy at this configuration", albedo)
	}
	return nil
}
