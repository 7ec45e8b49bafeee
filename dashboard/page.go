/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dashboard

import (
	"errors"
	"time"

	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/dashboard/templates"
	"github.com/mikeb26/rugbystats/rugby"
)

const rankingLimit = 20

// BuildPage computes every panel for sel.
func BuildPage(f *analytics.Frame, sel Selections,
	now time.Time) (templates.PageData, error) {

	sum := f.Summary()
	data := templates.PageData{
		Counters: templates.Counters{
			Matches:      sum.Matches,
			Teams:        sum.Teams,
			Competitions: sum.Competitions,
		},
		HomeTeams: f.HomeTeams(),
		AwayTeams: f.AwayTeams(),
		MaxYears:  MaxYears,
		Form: templates.Form{
			Team:       sel.Team,
			Location:   string(sel.Location),
			Team1:      sel.Team1,
			Team2:      sel.Team2,
			Years:      sel.Years,
			WCTeam:     sel.WCTeam,
			WCYears:    sel.WCYears,
			FinalsTeam: sel.FinalsTeam,
		},
	}
	for _, l := range analytics.Locations {
		data.Locations = append(data.Locations, string(l))
	}

	var err error
	data.WorldCupYears, err = f.WorldCupYears()
	if err != nil {
		return data, err
	}

	data.WinPercentage, err = f.WinPercentage(sel.Team, sel.Location)
	if err != nil {
		return data, err
	}

	h2h, err := f.HeadToHead(sel.Team1, sel.Team2, sel.Years, now)
	switch {
	case errors.Is(err, analytics.ErrSameTeam):
		data.SameTeam = true
	case err != nil:
		return data, err
	default:
		data.HeadToHead = toRows(h2h)
	}

	perf, err := f.WorldCupPerformance(sel.WCTeam, sel.WCYears)
	if err != nil {
		return data, err
	}
	data.WorldCup = templates.WorldCupPanel{
		Team:   sel.WCTeam,
		Years:  sel.WCYears,
		Played: perf.Played,
		Won:    perf.Won,
		Rows:   toRows(perf.Matches),
	}

	finals, err := f.WorldCupFinalWins(sel.FinalsTeam)
	if err != nil {
		return data, err
	}
	data.Finals = templates.FinalsPanel{
		Team:  sel.FinalsTeam,
		Rows:  toRows(finals),
		Count: analytics.CountParticipations(finals, sel.FinalsTeam),
	}

	tally, err := f.Championships()
	if err != nil {
		return data, err
	}
	for _, tc := range tally {
		data.Championships = append(data.Championships,
			templates.TeamCount{Team: tc.Team, Count: tc.Count})
	}

	perYear, err := f.MatchesPerYear()
	if err != nil {
		return data, err
	}
	data.HasPerYear = len(perYear) > 0

	ranking, err := f.CumulativeWins(analytics.CumulativeOptions{})
	if err != nil {
		return data, err
	}
	if len(ranking) > rankingLimit {
		ranking = ranking[:rankingLimit]
	}
	for _, cw := range ranking {
		data.Ranking = append(data.Ranking, templates.RankRow{
			Competition: cw.Competition,
			Team:        cw.Team,
			Wins:        cw.Wins,
		})
	}

	return data, nil
}

func toRows(results []rugby.Result) []templates.MatchRow {
	ret := make([]templates.MatchRow, 0, len(results))
	for _, r := range results {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format(rugby.DateLayout)
		}
		ret = append(ret, templates.MatchRow{
			Date:        date,
			HomeTeam:    r.HomeTeam,
			AwayTeam:    r.AwayTeam,
			HomeScore:   r.HomeScore,
			AwayScore:   r.AwayScore,
			Competition: r.Competition,
			Winner:      r.Winner,
			Stadium:     r.Stadium,
		})
	}
	return ret
}
