// Package plot renders the activity chart as a standalone HTML page.
package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/osmfang/internal/activity"
)

const (
	chartWidth  = "1200px"
	chartHeight = "600px"
	lineWidth   = 2
)

// WriteActivityChart renders daily active editors and the rolling 365-day
// distinct-editor total across the observed range.
func WriteActivityChart(ix *activity.Index, w io.Writer) error {
	labels, daily, rolling := buildSeries(ix)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Editor Activity",
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Editor Activity",
			Subtitle: "Daily active editors and rolling 365-day total",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	line.SetXAxis(labels)
	line.AddSeries("Daily active editors", daily,
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)
	line.AddSeries("Rolling 365-day editors", rolling,
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)

	err := line.Render(w)
	if err != nil {
		return fmt.Errorf("render activity chart: %w", err)
	}

	return nil
}

func buildSeries(ix *activity.Index) (labels []string, daily, rolling []opts.LineData) {
	minDay, maxDay := ix.DayRange()
	span := int(maxDay-minDay) + 1

	labels = make([]string, 0, span)
	daily = make([]opts.LineData, 0, span)
	rolling = make([]opts.LineData, 0, span)

	for day := minDay; day <= maxDay; day++ {
		labels = append(labels, day.String())
		daily = append(daily, opts.LineData{Value: ix.DailyActiveUsers(day)})
		rolling = append(rolling, opts.LineData{Value: len(ix.RollingWindow(day))})
	}

	return labels, daily, rolling
}
