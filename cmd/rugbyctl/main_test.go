/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/rugby"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testFrame(t *testing.T) *analytics.Frame {
	t.Helper()
	f, err := analytics.NewFrame([]rugby.Match{
		{Date: day(2015, 10, 31), HomeTeam: "New Zealand", AwayTeam: "Australia",
			HomeScore: 34, AwayScore: 17, Competition: "Rugby World Cup Final 2015",
			Stadium: "Twickenham"},
		{Date: day(2020, 1, 1), HomeTeam: "A", AwayTeam: "B", HomeScore: 20,
			AwayScore: 10, Competition: "Six Nations"},
		{Date: day(2020, 2, 1), HomeTeam: "B", AwayTeam: "A", HomeScore: 15,
			AwayScore: 15, Competition: "Six Nations"},
	}, rugby.DefaultClassifier())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

func TestCommandsHaveHelp(t *testing.T) {
	for name := range commands {
		if !strings.Contains(helpText, name) {
			t.Errorf("help.txt does not mention %v", name)
		}
	}
}

func TestRenderOutputs(t *testing.T) {
	f := testFrame(t)
	now := day(2024, 6, 1)

	cases := []struct {
		name   string
		render func(buf *bytes.Buffer) error
		want   []string
	}{
		{"summary", func(buf *bytes.Buffer) error {
			renderSummary(buf, f)
			return nil
		}, []string{"TOTAL MATCHES", "3"}},
		{"winpct", func(buf *bytes.Buffer) error {
			return renderWinPct(buf, f, "A", analytics.Total)
		}, []string{"A (Total): won 1 of 2, 50.00%"}},
		{"h2h", func(buf *bytes.Buffer) error {
			return renderH2H(buf, f, "A", "B", 10, now)
		}, []string{"Draw", "20-10", "Six Nations"}},
		{"h2h same team", func(buf *bytes.Buffer) error {
			return renderH2H(buf, f, "A", "A", 10, now)
		}, []string{"two different teams"}},
		{"h2h none", func(buf *bytes.Buffer) error {
			return renderH2H(buf, f, "A", "New Zealand", 3, now)
		}, []string{"have not played each other in the last 3 years"}},
		{"worldcup", func(buf *bytes.Buffer) error {
			return renderWorldCup(buf, f, "New Zealand", []int{2015})
		}, []string{"Total matches played: 1", "Total matches won: 1"}},
		{"worldcup empty", func(buf *bytes.Buffer) error {
			return renderWorldCup(buf, f, "A", []int{2015})
		}, []string{"No data available for A"}},
		{"finals", func(buf *bytes.Buffer) error {
			return renderFinals(buf, f, "New Zealand")
		}, []string{"Twickenham", "has won 1 World Cup final(s)"}},
		{"finals none", func(buf *bytes.Buffer) error {
			return renderFinals(buf, f, "Australia")
		}, []string{"Australia has not won a World Cup final."}},
		{"ranking", func(buf *bytes.Buffer) error {
			return renderRanking(buf, f, analytics.CumulativeOptions{}, 1)
		}, []string{"Six Nations"}},
		{"champions", func(buf *bytes.Buffer) error {
			return renderChampions(buf, f)
		}, []string{"New Zealand", "1"}},
		{"peryear", func(buf *bytes.Buffer) error {
			return renderPerYear(buf, f)
		}, []string{"2015", "2020"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := c.render(&buf); err != nil {
				t.Fatalf("render failed: %v", err)
			}
			for _, w := range c.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%v", w, buf.String())
				}
			}
		})
	}
}

func TestParseYears(t *testing.T) {
	years, err := parseYears("2015, 2019,,2023")
	if err != nil {
		t.Fatalf("parseYears failed: %v", err)
	}
	if len(years) != 3 || years[0] != 2015 || years[2] != 2023 {
		t.Errorf("parseYears = %v", years)
	}
	if _, err := parseYears("2015,last"); err == nil {
		t.Errorf("expected error for non-numeric year")
	}
}

func TestWriteCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := writeCharts(context.Background(), testFrame(t), dir)
	if err != nil {
		t.Fatalf("writeCharts failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %v charts; want 2", len(paths))
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %v: %v", p, err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("%v is not a PNG", p)
		}
	}

	empty, err := analytics.NewFrame(nil, rugby.DefaultClassifier())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	_, err = writeCharts(context.Background(), empty, t.TempDir())
	if err == nil {
		t.Errorf("expected error charting an empty frame")
	}
}
