/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package analytics computes descriptive statistics over a loaded match
// collection. All operations are pure functions of the frame and their
// arguments; a Frame is immutable once built and safe for concurrent use.
package analytics

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/mikeb26/rugbystats/rugby"
)

const (
	colRow            = "row"
	colDate           = "date"
	colYear           = "year"
	colHomeTeam       = "home_team"
	colAwayTeam       = "away_team"
	colHomeScore      = "home_score"
	colAwayScore      = "away_score"
	colCompetition    = "competition"
	colStadium        = "stadium"
	colCity           = "city"
	colCountry        = "country"
	colNeutral        = "neutral"
	colWorldCup       = "world_cup"
	colWinner         = "winner"
	colStage          = "stage"
	colHomeWin        = "home_win"
	colAwayWin        = "away_win"
	colIsWorldCup     = "is_world_cup"
	colIsWCFinal      = "is_wc_final"
	colIsChampionship = "is_championship"
	colPair           = "pair"
)

// Frame is a match collection with its derived columns, held in a gota
// data frame. Filters run on the frame; the row column maps filtered rows
// back to the typed results.
type Frame struct {
	df      dataframe.DataFrame
	results []rugby.Result
	cls     rugby.Classifier
}

// NewFrame derives winner and stage for every match and builds the frame.
func NewFrame(matches []rugby.Match, cls rugby.Classifier) (*Frame, error) {
	results := rugby.Derive(matches, cls)
	n := len(results)

	rows := make([]int, n)
	dates := make([]string, n)
	years := make([]int, n)
	homeTeams := make([]string, n)
	awayTeams := make([]string, n)
	homeScores := make([]int, n)
	awayScores := make([]int, n)
	competitions := make([]string, n)
	stadiums := make([]string, n)
	cities := make([]string, n)
	countries := make([]string, n)
	neutrals := make([]bool, n)
	worldCups := make([]bool, n)
	winners := make([]string, n)
	stages := make([]string, n)
	homeWins := make([]bool, n)
	awayWins := make([]bool, n)
	isWorldCup := make([]bool, n)
	isWCFinal := make([]bool, n)
	isChampionship := make([]bool, n)
	pairs := make([]string, n)

	for i, r := range results {
		rows[i] = i
		if !r.Date.IsZero() {
			dates[i] = r.Date.Format(rugby.DateLayout)
		}
		years[i] = r.Year()
		homeTeams[i] = r.HomeTeam
		awayTeams[i] = r.AwayTeam
		homeScores[i] = r.HomeScore
		awayScores[i] = r.AwayScore
		competitions[i] = r.Competition
		stadiums[i] = r.Stadium
		cities[i] = r.City
		countries[i] = r.Country
		neutrals[i] = r.Neutral
		worldCups[i] = r.WorldCup
		winners[i] = r.Winner
		stages[i] = r.Stage
		homeWins[i] = r.Winner != "" && r.Winner == r.HomeTeam
		awayWins[i] = r.Winner != "" && r.Winner == r.AwayTeam
		isWorldCup[i] = cls.IsWorldCup(r.Competition)
		isWCFinal[i] = cls.IsWorldCupFinal(r.Competition)
		isChampionship[i] = cls.IsChampionship(r.Competition)
		pairs[i] = pairKey(r.HomeTeam, r.AwayTeam)
	}

	df := dataframe.New(
		series.New(rows, series.Int, colRow),
		series.New(dates, series.String, colDate),
		series.New(years, series.Int, colYear),
		series.New(homeTeams, series.String, colHomeTeam),
		series.New(awayTeams, series.String, colAwayTeam),
		series.New(homeScores, series.Int, colHomeScore),
		series.New(awayScores, series.Int, colAwayScore),
		series.New(competitions, series.String, colCompetition),
		series.New(stadiums, series.String, colStadium),
		series.New(cities, series.String, colCity),
		series.New(countries, series.String, colCountry),
		series.New(neutrals, series.Bool, colNeutral),
		series.New(worldCups, series.Bool, colWorldCup),
		series.New(winners, series.String, colWinner),
		series.New(stages, series.String, colStage),
		series.New(homeWins, series.Bool, colHomeWin),
		series.New(awayWins, series.Bool, colAwayWin),
		series.New(isWorldCup, series.Bool, colIsWorldCup),
		series.New(isWCFinal, series.Bool, colIsWCFinal),
		series.New(isChampionship, series.Bool, colIsChampionship),
		series.New(pairs, series.String, colPair),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("analytics.NewFrame: %w", df.Err)
	}

	return &Frame{
		df:      df,
		results: results,
		cls:     cls,
	}, nil
}

// Len returns the number of matches in the frame.
func (f *Frame) Len() int {
	return len(f.results)
}

// Results returns the derived records in source order.
func (f *Frame) Results() []rugby.Result {
	return f.results
}

func (f *Frame) Classifier() rugby.Classifier {
	return f.cls
}

// DataFrame exposes the underlying gota frame.
func (f *Frame) DataFrame() dataframe.DataFrame {
	return f.df
}

// pairKey identifies an unordered pair of teams.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x1f" + b
}

func eq(col string, val interface{}) dataframe.F {
	return dataframe.F{Colname: col, Comparator: series.Eq, Comparando: val}
}

// filter applies filters with OR semantics; call it repeatedly for AND.
// An empty frame is returned unchanged since gota cannot compare columns
// with no elements.
func filter(df dataframe.DataFrame, filters ...dataframe.F) (dataframe.DataFrame, error) {
	if df.Nrow() == 0 {
		return df, nil
	}
	ret := df.Filter(filters...)
	if ret.Err != nil {
		return ret, fmt.Errorf("analytics: filter failed: %w", ret.Err)
	}
	return ret, nil
}

// and applies each filter in turn.
func and(df dataframe.DataFrame, filters ...dataframe.F) (dataframe.DataFrame, error) {
	var err error
	for _, flt := range filters {
		df, err = filter(df, flt)
		if err != nil {
			return df, err
		}
	}
	return df, nil
}

// rowsOf maps a filtered frame back to its typed results, keeping the
// frame's row order.
func (f *Frame) rowsOf(df dataframe.DataFrame) ([]rugby.Result, error) {
	if df.Nrow() == 0 {
		return []rugby.Result{}, nil
	}
	idx, err := df.Col(colRow).Int()
	if err != nil {
		return nil, fmt.Errorf("analytics: bad row column: %w", err)
	}
	ret := make([]rugby.Result, 0, len(idx))
	for _, i := range idx {
		ret = append(ret, f.results[i])
	}
	return ret, nil
}
