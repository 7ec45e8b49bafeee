/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package analytics

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
)

var ErrNoData = errors.New("nothing to chart")

const (
	chartHeight   = 480
	chartBarWidth = 14
	chartSpacing  = 4
	chartMinWidth = 480
	chartMaxWidth = 4096
)

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// RenderBarChart writes a PNG bar chart of bars to w.
func RenderBarChart(w io.Writer, title string, yName string, bars []Bar) error {
	if len(bars) == 0 {
		return ErrNoData
	}

	maxVal := 0.0
	values := make([]chart.Value, 0, len(bars))
	for _, b := range bars {
		if b.Value > maxVal {
			maxVal = b.Value
		}
		values = append(values, chart.Value{Label: b.Label, Value: b.Value})
	}

	width := 120 + len(bars)*(chartBarWidth+chartSpacing)
	if width < chartMinWidth {
		width = chartMinWidth
	}
	if width > chartMaxWidth {
		width = chartMaxWidth
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16,
			Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal + 1},
		},
		Bars: values,
	}

	err := graph.Render(chart.PNG, w)
	if err != nil {
		return fmt.Errorf("analytics: failed to render %q: %w", title, err)
	}
	return nil
}

// ChampionshipsChart renders the championship tally as Team / Wins bars.
func (f *Frame) ChampionshipsChart(w io.Writer) error {
	tally, err := f.Championships()
	if err != nil {
		return err
	}
	bars := make([]Bar, 0, len(tally))
	for _, tc := range tally {
		bars = append(bars, Bar{Label: tc.Team, Value: float64(tc.Count)})
	}
	return RenderBarChart(w, "World Cup titles by team", "Wins", bars)
}

// MatchesPerYearChart renders the number of matches played per year.
func (f *Frame) MatchesPerYearChart(w io.Writer) error {
	counts, err := f.MatchesPerYear()
	if err != nil {
		return err
	}
	bars := make([]Bar, 0, len(counts))
	for _, yc := range counts {
		bars = append(bars, Bar{Label: strconv.Itoa(yc.Year),
			Value: float64(yc.Count)})
	}
	return RenderBarChart(w, "Matches played per year", "Matches played", bars)
}
