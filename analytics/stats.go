/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package analytics

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/mikeb26/rugbystats/rugby"
)

type Location string

const (
	Home  Location = "Home"
	Away  Location = "Away"
	Total Location = "Total"
)

var Locations = []Location{Home, Away, Total}

var ErrSameTeam = errors.New("select two different teams")

// ParseLocation accepts Home, Away or Total in any case.
func ParseLocation(s string) (Location, error) {
	for _, l := range Locations {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("analytics: invalid location %q; must be one of Home, Away or Total", s)
}

// Record is a team's win record over some set of matches.
type Record struct {
	Played     int
	Won        int
	Percentage float64
}

// WinRecord counts the matches team played at loc and how many it won.
// Draws count as played but never as won.
func (f *Frame) WinRecord(team string, loc Location) (Record, error) {
	var played dataframe.DataFrame
	var err error

	switch loc {
	case Home:
		played, err = filter(f.df, eq(colHomeTeam, team))
	case Away:
		played, err = filter(f.df, eq(colAwayTeam, team))
	case Total:
		played, err = filter(f.df, eq(colHomeTeam, team), eq(colAwayTeam, team))
	default:
		return Record{}, fmt.Errorf("analytics: invalid location %q", loc)
	}
	if err != nil {
		return Record{}, err
	}

	won, err := filter(played, eq(colWinner, team))
	if err != nil {
		return Record{}, err
	}

	rec := Record{Played: played.Nrow()}
	if rec.Played > 0 {
		rec.Won = won.Nrow()
		rec.Percentage = float64(rec.Won) / float64(rec.Played) * 100
	}
	return rec, nil
}

// WinPercentage returns the share of team's matches at loc that it won, in
// [0,100]. It is 0 when team played no such match.
func (f *Frame) WinPercentage(team string, loc Location) (float64, error) {
	rec, err := f.WinRecord(team, loc)
	if err != nil {
		return 0, err
	}
	return rec.Percentage, nil
}

// HeadToHead returns every match between team1 and team2, most recent
// first. When lastYears > 0 only matches from now.Year()-lastYears onward
// are kept.
func (f *Frame) HeadToHead(team1, team2 string, lastYears int,
	now time.Time) ([]rugby.Result, error) {

	if team1 == team2 {
		return nil, ErrSameTeam
	}

	df, err := filter(f.df, eq(colPair, pairKey(team1, team2)))
	if err != nil {
		return nil, err
	}
	if lastYears > 0 {
		df, err = filter(df, dataframe.F{Colname: colYear,
			Comparator: series.GreaterEq, Comparando: now.Year() - lastYears})
		if err != nil {
			return nil, err
		}
	}
	if df.Nrow() > 1 {
		df = df.Arrange(dataframe.RevSort(colDate))
		if df.Err != nil {
			return nil, fmt.Errorf("analytics.HeadToHead: sort failed: %w", df.Err)
		}
	}

	return f.rowsOf(df)
}

// Performance is a team's record over a set of matches.
type Performance struct {
	Team    string
	Played  int
	Won     int
	Matches []rugby.Result
}

func (p Performance) Empty() bool {
	return p.Played == 0
}

// WorldCupPerformance returns team's World Cup matches played in any of
// years, in source order.
func (f *Frame) WorldCupPerformance(team string, years []int) (Performance, error) {
	perf := Performance{Team: team, Matches: []rugby.Result{}}
	if len(years) == 0 {
		return perf, nil
	}

	df, err := and(f.df, eq(colIsWorldCup, true))
	if err != nil {
		return perf, err
	}
	df, err = filter(df, eq(colHomeTeam, team), eq(colAwayTeam, team))
	if err != nil {
		return perf, err
	}
	df, err = filter(df, dataframe.F{Colname: colYear, Comparator: series.In,
		Comparando: years})
	if err != nil {
		return perf, err
	}

	perf.Matches, err = f.rowsOf(df)
	if err != nil {
		return perf, err
	}
	perf.Played = len(perf.Matches)
	for _, r := range perf.Matches {
		if r.Winner == team {
			perf.Won++
		}
	}

	return perf, nil
}

// WorldCupFinalWins returns the World Cup finals team won.
func (f *Frame) WorldCupFinalWins(team string) ([]rugby.Result, error) {
	df, err := and(f.df,
		eq(colIsWCFinal, true),
		eq(colStage, rugby.StageFinal),
		eq(colWinner, team),
	)
	if err != nil {
		return nil, err
	}

	return f.rowsOf(df)
}

// CountParticipations counts the rows team played in, home or away.
func CountParticipations(rows []rugby.Result, team string) int {
	n := 0
	for _, r := range rows {
		if r.Involves(team) {
			n++
		}
	}
	return n
}

// CompetitionWins is one row of the cumulative wins ranking.
type CompetitionWins struct {
	Competition string
	Team        string
	Wins        int
}

type CumulativeOptions struct {
	// CountAwayWins credits away wins too. By default only home wins are
	// counted and teams are grouped by the home side.
	CountAwayWins bool
}

// CumulativeWins counts wins per (competition, team), ordered by
// competition descending, then wins descending, then team.
func (f *Frame) CumulativeWins(opts CumulativeOptions) ([]CompetitionWins, error) {
	ret := []CompetitionWins{}
	if f.Len() == 0 {
		return ret, nil
	}

	comps := f.df.Col(colCompetition).Records()
	homes := f.df.Col(colHomeTeam).Records()
	aways := f.df.Col(colAwayTeam).Records()
	homeWins, err := f.df.Col(colHomeWin).Bool()
	if err != nil {
		return nil, fmt.Errorf("analytics.CumulativeWins: %w", err)
	}
	awayWins, err := f.df.Col(colAwayWin).Bool()
	if err != nil {
		return nil, fmt.Errorf("analytics.CumulativeWins: %w", err)
	}

	type key struct{ comp, team string }
	index := make(map[key]int)
	credit := func(comp, team string, won bool) {
		k := key{comp, team}
		i, ok := index[k]
		if !ok {
			i = len(ret)
			index[k] = i
			ret = append(ret, CompetitionWins{Competition: comp, Team: team})
		}
		if won {
			ret[i].Wins++
		}
	}
	for i := range comps {
		credit(comps[i], homes[i], homeWins[i])
		if opts.CountAwayWins {
			credit(comps[i], aways[i], awayWins[i])
		}
	}

	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Competition != ret[j].Competition {
			return ret[i].Competition > ret[j].Competition
		}
		if ret[i].Wins != ret[j].Wins {
			return ret[i].Wins > ret[j].Wins
		}
		return ret[i].Team < ret[j].Team
	})

	return ret, nil
}

// Summary holds the dashboard counters.
type Summary struct {
	Matches      int
	Teams        int
	Competitions int
}

// Summary counts matches, distinct home teams and distinct non-empty
// competitions.
func (f *Frame) Summary() Summary {
	s := Summary{Matches: f.Len()}
	if s.Matches == 0 {
		return s
	}
	s.Teams = len(distinct(f.df.Col(colHomeTeam).Records(), true))
	s.Competitions = len(distinct(f.df.Col(colCompetition).Records(), false))
	return s
}

// TeamCount pairs a label with a count.
type TeamCount struct {
	Team  string
	Count int
}

// Championships tallies the winners of championship deciders, most titles
// first and ties broken by name.
func (f *Frame) Championships() ([]TeamCount, error) {
	df, err := and(f.df, eq(colIsChampionship, true))
	if err != nil {
		return nil, err
	}
	df, err = filter(df, dataframe.F{Colname: colWinner, Comparator: series.Neq,
		Comparando: ""})
	if err != nil {
		return nil, err
	}

	ret := []TeamCount{}
	if df.Nrow() == 0 {
		return ret, nil
	}
	counts := make(map[string]int)
	for _, w := range df.Col(colWinner).Records() {
		counts[w]++
	}
	for team, n := range counts {
		ret = append(ret, TeamCount{Team: team, Count: n})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Count != ret[j].Count {
			return ret[i].Count > ret[j].Count
		}
		return ret[i].Team < ret[j].Team
	})

	return ret, nil
}

// YearCount is the number of matches played in a calendar year.
type YearCount struct {
	Year  int
	Count int
}

// MatchesPerYear counts matches per calendar year in ascending year order.
// Matches with an unknown date are left out.
func (f *Frame) MatchesPerYear() ([]YearCount, error) {
	ret := []YearCount{}
	df, err := filter(f.df, dataframe.F{Colname: colYear,
		Comparator: series.Greater, Comparando: 0})
	if err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return ret, nil
	}

	years, err := df.Col(colYear).Int()
	if err != nil {
		return nil, fmt.Errorf("analytics.MatchesPerYear: %w", err)
	}
	counts := make(map[int]int)
	for _, y := range years {
		counts[y]++
	}
	for y, n := range counts {
		ret = append(ret, YearCount{Year: y, Count: n})
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Year < ret[j].Year
	})

	return ret, nil
}

// HomeTeams returns the distinct home teams in first-seen order.
func (f *Frame) HomeTeams() []string {
	if f.Len() == 0 {
		return []string{}
	}
	return distinct(f.df.Col(colHomeTeam).Records(), false)
}

// AwayTeams returns the distinct away teams in first-seen order.
func (f *Frame) AwayTeams() []string {
	if f.Len() == 0 {
		return []string{}
	}
	return distinct(f.df.Col(colAwayTeam).Records(), false)
}

var yearRE = regexp.MustCompile(`\d{4}`)

// WorldCupYears returns the years named in World Cup competitions,
// ascending.
func (f *Frame) WorldCupYears() ([]int, error) {
	ret := []int{}
	df, err := and(f.df, eq(colIsWorldCup, true))
	if err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return ret, nil
	}

	seen := make(map[int]bool)
	for _, comp := range df.Col(colCompetition).Records() {
		m := yearRE.FindString(comp)
		if m == "" {
			continue
		}
		y, err := strconv.Atoi(m)
		if err != nil || seen[y] {
			continue
		}
		seen[y] = true
		ret = append(ret, y)
	}
	sort.Ints(ret)

	return ret, nil
}

func distinct(vals []string, keepEmpty bool) []string {
	seen := make(map[string]bool, len(vals))
	ret := make([]string, 0)
	for _, v := range vals {
		if (v == "" && !keepEmpty) || seen[v] {
			continue
		}
		seen[v] = true
		ret = append(ret, v)
	}
	return ret
}
