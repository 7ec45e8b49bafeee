/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/rugby"
	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func dateStr(r rugby.Result) string {
	if r.Date.IsZero() {
		return "-"
	}
	return r.Date.Format(rugby.DateLayout)
}

func winnerStr(r rugby.Result) string {
	if r.Winner == "" {
		return "Draw"
	}
	return r.Winner
}

func renderSummary(w io.Writer, f *analytics.Frame) {
	s := f.Summary()
	table := newTable(w, "Total matches", "Number of teams", "Competitions")
	table.Append([]string{strconv.Itoa(s.Matches), strconv.Itoa(s.Teams),
		strconv.Itoa(s.Competitions)})
	table.Render()
}

func renderWinPct(w io.Writer, f *analytics.Frame, team string,
	loc analytics.Location) error {

	rec, err := f.WinRecord(team, loc)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v (%v): won %v of %v, %.2f%%\n", team, loc, rec.Won,
		rec.Played, rec.Percentage)
	return nil
}

func renderH2H(w io.Writer, f *analytics.Frame, team1, team2 string,
	years int, now time.Time) error {

	rows, err := f.HeadToHead(team1, team2, years, now)
	if errors.Is(err, analytics.ErrSameTeam) {
		fmt.Fprintln(w, "Please select two different teams.")
		return nil
	} else if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "%v and %v have not played each other", team1, team2)
		if years > 0 {
			fmt.Fprintf(w, " in the last %v years", years)
		}
		fmt.Fprintln(w, ".")
		return nil
	}

	table := newTable(w, "Date", "Competition", "Winner", "Home", "Away",
		"Score", "Stadium")
	for _, r := range rows {
		table.Append([]string{dateStr(r), r.Competition, winnerStr(r),
			r.HomeTeam, r.AwayTeam,
			fmt.Sprintf("%v-%v", r.HomeScore, r.AwayScore), r.Stadium})
	}
	table.Render()
	return nil
}

func renderWorldCup(w io.Writer, f *analytics.Frame, team string,
	years []int) error {

	perf, err := f.WorldCupPerformance(team, years)
	if err != nil {
		return err
	}
	if perf.Empty() {
		fmt.Fprintf(w, "No data available for %v in the selected years.\n", team)
		return nil
	}

	fmt.Fprintf(w, "Total matches played: %v\n", perf.Played)
	fmt.Fprintf(w, "Total matches won: %v\n", perf.Won)
	table := newTable(w, "Date", "Home", "Away", "Score", "Winner")
	for _, r := range perf.Matches {
		table.Append([]string{dateStr(r), r.HomeTeam, r.AwayTeam,
			fmt.Sprintf("%v-%v", r.HomeScore, r.AwayScore), winnerStr(r)})
	}
	table.Render()
	return nil
}

func renderFinals(w io.Writer, f *analytics.Frame, team string) error {
	rows, err := f.WorldCupFinalWins(team)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "%v has not won a World Cup final.\n", team)
		return nil
	}

	table := newTable(w, "Date", "Competition", "Home", "Away", "Score", "Stadium")
	for _, r := range rows {
		table.Append([]string{dateStr(r), r.Competition, r.HomeTeam, r.AwayTeam,
			fmt.Sprintf("%v-%v", r.HomeScore, r.AwayScore), r.Stadium})
	}
	table.Render()
	fmt.Fprintf(w, "%v has won %v World Cup final(s).\n", team,
		analytics.CountParticipations(rows, team))
	return nil
}

func renderRanking(w io.Writer, f *analytics.Frame,
	opts analytics.CumulativeOptions, limit int) error {

	ranking, err := f.CumulativeWins(opts)
	if err != nil {
		return err
	}
	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}

	table := newTable(w, "Competition", "Team", "Wins")
	for _, cw := range ranking {
		table.Append([]string{cw.Competition, cw.Team, strconv.Itoa(cw.Wins)})
	}
	table.Render()
	return nil
}

func renderChampions(w io.Writer, f *analytics.Frame) error {
	tally, err := f.Championships()
	if err != nil {
		return err
	}

	table := newTable(w, "Team", "Wins")
	for _, tc := range tally {
		table.Append([]string{tc.Team, strconv.Itoa(tc.Count)})
	}
	table.Render()
	return nil
}

func renderPerYear(w io.Writer, f *analytics.Frame) error {
	counts, err := f.MatchesPerYear()
	if err != nil {
		return err
	}

	table := newTable(w, "Year", "Matches played")
	for _, yc := range counts {
		table.Append([]string{strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)})
	}
	table.Render()
	return nil
}
