/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	matches, stats, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, sampleMatches(), matches)
	assert.Equal(t, 3, stats.Rows)
	// stadium, city and country of the second row
	assert.Equal(t, 3, stats.FilledCells)
}

func TestReadCSVZeroFill(t *testing.T) {
	csv := `date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup,extra
NaN,A,B,,NA,,x,y,z,,1,ignored
`
	matches, stats, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.True(t, m.Date.IsZero())
	assert.Equal(t, 0, m.HomeScore)
	assert.Equal(t, 0, m.AwayScore)
	assert.Equal(t, "", m.Competition)
	assert.False(t, m.Neutral)
	assert.True(t, m.WorldCup)
	assert.Equal(t, 5, stats.FilledCells)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	matches, stats, err := ReadCSV(strings.NewReader(strings.SplitN(sampleCSV, "\n", 2)[0] + "\n"))
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
	assert.Equal(t, 0, stats.Rows)
}

func TestReadCSVShortRows(t *testing.T) {
	csv := `date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup
2019-11-02,England,South Africa,12,32,Rugby World Cup
2020-01-01,A,B,20,10,Six Nations,Stade de France,Saint-Denis,France,False,False
`
	matches, stats, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, Match{Date: day(2019, 11, 2), HomeTeam: "England",
		AwayTeam: "South Africa", HomeScore: 12, AwayScore: 32,
		Competition: "Rugby World Cup"}, matches[0])
	assert.Equal(t, sampleMatches()[0], matches[1])
	assert.Equal(t, 2, stats.Rows)
	// stadium, city, country, neutral and world_cup of the first row
	assert.Equal(t, 5, stats.FilledCells)
}

func TestReadCSVLongRow(t *testing.T) {
	csv := "date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup\n" +
		"2020-01-01,A,B,3,10,X,,,,False,False,surplus\n"
	_, _, err := ReadCSV(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestReadCSVByteOrderMark(t *testing.T) {
	matches, stats, err := ReadCSV(strings.NewReader("\ufeff" + sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, sampleMatches(), matches)
	assert.Equal(t, 3, stats.Rows)
}

func TestReadCSVErrors(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"negative score", "date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup\n" +
			"2020-01-01,A,B,-3,10,X,,,,False,False\n"},
		{"fractional score", "date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup\n" +
			"2020-01-01,A,B,3.5,10,X,,,,False,False\n"},
		{"bad bool", "date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup\n" +
			"2020-01-01,A,B,3,10,X,,,,maybe,False\n"},
		{"bad date", "date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup\n" +
			"someday,A,B,3,10,X,,,,False,False\n"},
		{"empty", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := ReadCSV(strings.NewReader(c.csv))
			assert.Error(t, err)
		})
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	csv := "date,home_team,away_team,home_score,away_score,competition\n2020-01-01,A,B,1,2,X\n"
	_, _, err := ReadCSV(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrMissingColumn)
}
