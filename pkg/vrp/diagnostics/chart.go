// Package diagnostics renders the periodic population dump the driver
// triggers every 1000th generation as an HTML line chart of best cost per
// generation across the whole run.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Sample is one generation's reportable best cost, as recorded in the
// objective.RefinementContext's cost history.
type Sample struct {
	Generation int
	Cost       float64
}

// RenderCostHistory writes an HTML line chart of best cost per generation
// to w, the population-dump artifact referenced by the driver's logging
// checkpoint.
func RenderCostHistory(w io.Writer, runName string, samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("diagnostics: no samples to render for %s", runName)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Best cost per generation — %s", runName),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "generation"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "cost",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	xAxis := make([]string, len(samples))
	data := make([]opts.LineData, len(samples))
	for i, s := range samples {
		xAxis[i] = fmt.Sprintf("%d", s.Generation)
		data[i] = opts.LineData{Value: s.Cost}
	}

	line.SetXAxis(xAxis).
		AddSeries("best cost", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)

	return line.Render(w)
}
