/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/mikeb26/rugbystats/rugby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func match(date time.Time, home, away string, hs, as int, comp string) rugby.Match {
	return rugby.Match{
		Date:        date,
		HomeTeam:    home,
		AwayTeam:    away,
		HomeScore:   hs,
		AwayScore:   as,
		Competition: comp,
		WorldCup:    strings.Contains(strings.ToLower(comp), "world cup"),
	}
}

func newFrame(t *testing.T, matches ...rugby.Match) *Frame {
	t.Helper()
	f, err := NewFrame(matches, rugby.DefaultClassifier())
	require.NoError(t, err)
	return f
}

func sampleFrame(t *testing.T) *Frame {
	return newFrame(t,
		match(day(2015, 9, 24), "New Zealand", "Argentina", 26, 16, "Rugby World Cup 2015"),
		match(day(2015, 10, 31), "New Zealand", "Australia", 34, 17, "Rugby World Cup Final 2015"),
		match(day(2019, 10, 12), "England", "France", 0, 0, "Rugby World Cup 2019"),
		match(day(2019, 11, 2), "England", "South Africa", 12, 32, "Rugby World Cup Final 2019"),
		match(day(2020, 1, 1), "A", "B", 20, 10, "Six Nations"),
		match(day(2020, 2, 1), "B", "A", 15, 15, "Six Nations"),
		match(day(2021, 3, 1), "A", "B", 7, 9, "Six Nations"),
		match(time.Time{}, "A", "C", 3, 0, ""),
	)
}

func TestScenarioAWinPercentage(t *testing.T) {
	f := newFrame(t,
		match(day(2020, 1, 1), "A", "B", 20, 10, "Six Nations"),
		match(day(2020, 2, 1), "B", "A", 15, 15, "Six Nations"),
	)

	home, err := f.WinPercentage("A", Home)
	require.NoError(t, err)
	assert.Equal(t, 100.0, home)

	total, err := f.WinPercentage("A", Total)
	require.NoError(t, err)
	assert.Equal(t, 50.0, total)

	away, err := f.WinRecord("A", Away)
	require.NoError(t, err)
	assert.Equal(t, Record{Played: 1, Won: 0, Percentage: 0}, away)
}

func TestWinPercentageBounds(t *testing.T) {
	f := sampleFrame(t)
	for _, team := range append(f.HomeTeams(), "Nobody") {
		for _, loc := range Locations {
			pct, err := f.WinPercentage(team, loc)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pct, 0.0, "%v %v", team, loc)
			assert.LessOrEqual(t, pct, 100.0, "%v %v", team, loc)
		}
	}

	pct, err := f.WinPercentage("Nobody", Total)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)

	_, err = f.WinPercentage("A", Location("Neutral"))
	assert.Error(t, err)

	rec, err := f.WinRecord("A", Total)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Played)
	assert.Equal(t, 2, rec.Won)
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("away")
	require.NoError(t, err)
	assert.Equal(t, Away, loc)

	_, err = ParseLocation("somewhere")
	assert.Error(t, err)
}

func TestHeadToHead(t *testing.T) {
	f := sampleFrame(t)
	now := day(2024, 6, 1)

	rows, err := f.HeadToHead("A", "B", 0, now)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		pair := []string{r.HomeTeam, r.AwayTeam}
		assert.ElementsMatch(t, []string{"A", "B"}, pair)
	}
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].Date.After(rows[i-1].Date),
			"row %v is newer than row %v", i, i-1)
	}
	assert.Equal(t, day(2021, 3, 1), rows[0].Date)
	assert.Equal(t, "B", rows[0].Winner)
	assert.Equal(t, "", rows[1].Winner)

	// argument order does not matter
	swapped, err := f.HeadToHead("B", "A", 0, now)
	require.NoError(t, err)
	assert.Equal(t, rows, swapped)

	recent, err := f.HeadToHead("A", "B", 3, now)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 2021, recent[0].Year())

	none, err := f.HeadToHead("A", "New Zealand", 0, now)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.HeadToHead("A", "A", 10, now)
	assert.ErrorIs(t, err, ErrSameTeam)
}

func TestWorldCupPerformance(t *testing.T) {
	f := sampleFrame(t)

	perf, err := f.WorldCupPerformance("New Zealand", []int{2015, 2019})
	require.NoError(t, err)
	assert.Equal(t, 2, perf.Played)
	assert.Equal(t, 2, perf.Won)
	assert.False(t, perf.Empty())
	assert.Equal(t, day(2015, 9, 24), perf.Matches[0].Date)

	perf, err = f.WorldCupPerformance("England", []int{2019})
	require.NoError(t, err)
	assert.Equal(t, 2, perf.Played)
	assert.Equal(t, 0, perf.Won)

	// Six Nations matches are never World Cup matches
	perf, err = f.WorldCupPerformance("A", []int{2020, 2021})
	require.NoError(t, err)
	assert.True(t, perf.Empty())

	perf, err = f.WorldCupPerformance("New Zealand", nil)
	require.NoError(t, err)
	assert.True(t, perf.Empty())
	assert.NotNil(t, perf.Matches)
}

func TestScenarioBWorldCupFinalWins(t *testing.T) {
	f := newFrame(t,
		match(day(2015, 10, 31), "New Zealand", "Australia", 34, 17, "Rugby World Cup Final 2015"),
	)

	rows, err := f.WorldCupFinalWins("New Zealand")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Australia", rows[0].AwayTeam)
	assert.Equal(t, 1, CountParticipations(rows, "New Zealand"))

	rows, err = f.WorldCupFinalWins("Australia")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWorldCupFinalWinsOnlyFinals(t *testing.T) {
	f := newFrame(t,
		match(day(2015, 10, 31), "New Zealand", "Australia", 34, 17, "Rugby World Cup Final 2015"),
		match(day(2015, 10, 24), "New Zealand", "South Africa", 20, 18, "Rugby World Cup 2015"),
		match(day(2016, 5, 28), "New Zealand", "Canterbury", 30, 3, "Provincial Final"),
		match(day(2014, 8, 17), "New Zealand", "England", 21, 9, "Women's World Cup Final"),
	)

	rows, err := f.WorldCupFinalWins("New Zealand")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	for _, r := range rows {
		assert.Contains(t, strings.ToLower(r.Competition), "rugby world cup final")
		assert.Equal(t, rugby.StageFinal, r.Stage)
	}
}

func TestCumulativeWins(t *testing.T) {
	f := sampleFrame(t)

	ranking, err := f.CumulativeWins(CumulativeOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, ranking)
	assert.Equal(t, "Six Nations", ranking[0].Competition)
	assert.Equal(t, CompetitionWins{"Six Nations", "A", 1}, ranking[0])
	assert.Equal(t, CompetitionWins{"Six Nations", "B", 0}, ranking[1])
	assert.Equal(t, "", ranking[len(ranking)-1].Competition)
	for i := 1; i < len(ranking); i++ {
		assert.GreaterOrEqual(t, ranking[i-1].Competition, ranking[i].Competition)
	}

	all, err := f.CumulativeWins(CumulativeOptions{CountAwayWins: true})
	require.NoError(t, err)
	byKey := map[string]int{}
	for _, cw := range all {
		byKey[cw.Competition+"/"+cw.Team] = cw.Wins
	}
	assert.Equal(t, 1, byKey["Six Nations/B"])
	assert.Equal(t, 1, byKey["Rugby World Cup Final 2019/South Africa"])
}

func TestSummaryAndSelectors(t *testing.T) {
	f := sampleFrame(t)

	s := f.Summary()
	assert.Equal(t, Summary{Matches: 8, Teams: 4, Competitions: 5}, s)
	// counters are a pure function of the frame
	assert.Equal(t, s, f.Summary())

	assert.Equal(t, []string{"New Zealand", "England", "A", "B"}, f.HomeTeams())
	assert.Equal(t, []string{"Argentina", "Australia", "France", "South Africa", "B", "A", "C"},
		f.AwayTeams())

	years, err := f.WorldCupYears()
	require.NoError(t, err)
	assert.Equal(t, []int{2015, 2019}, years)
}

func TestChampionships(t *testing.T) {
	f := newFrame(t,
		match(day(2015, 10, 31), "New Zealand", "Australia", 34, 17, "Rugby World Cup Final 2015"),
		match(day(2011, 10, 23), "New Zealand", "France", 8, 7, "Rugby World Cup Final 2011"),
		match(day(2019, 11, 2), "England", "South Africa", 12, 32, "Rugby World Cup Final 2019"),
		match(day(2017, 8, 26), "New Zealand", "England", 32, 41, "Women's World Cup Final"),
		match(day(2019, 10, 12), "England", "France", 0, 0, "Rugby World Cup 2019"),
	)

	tally, err := f.Championships()
	require.NoError(t, err)
	assert.Equal(t, []TeamCount{
		{"New Zealand", 2},
		{"England", 1},
		{"South Africa", 1},
	}, tally)
}

func TestMatchesPerYear(t *testing.T) {
	f := sampleFrame(t)

	counts, err := f.MatchesPerYear()
	require.NoError(t, err)
	assert.Equal(t, []YearCount{
		{2015, 2},
		{2019, 2},
		{2020, 2},
		{2021, 1},
	}, counts)
}

func TestEmptyFrame(t *testing.T) {
	f := newFrame(t)

	assert.Equal(t, Summary{}, f.Summary())
	pct, err := f.WinPercentage("A", Total)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)

	rows, err := f.HeadToHead("A", "B", 10, time.Now())
	require.NoError(t, err)
	assert.Empty(t, rows)

	perf, err := f.WorldCupPerformance("A", []int{2019})
	require.NoError(t, err)
	assert.True(t, perf.Empty())

	rows, err = f.WorldCupFinalWins("A")
	require.NoError(t, err)
	assert.Empty(t, rows)

	ranking, err := f.CumulativeWins(CumulativeOptions{})
	require.NoError(t, err)
	assert.Empty(t, ranking)

	tally, err := f.Championships()
	require.NoError(t, err)
	assert.Empty(t, tally)

	counts, err := f.MatchesPerYear()
	require.NoError(t, err)
	assert.Empty(t, counts)

	years, err := f.WorldCupYears()
	require.NoError(t, err)
	assert.Empty(t, years)
	assert.Empty(t, f.HomeTeams())
}
