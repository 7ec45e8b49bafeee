/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferWinner(t *testing.T) {
	cases := []struct {
		name string
		m    Match
		want string
	}{
		{"home", Match{HomeTeam: "A", AwayTeam: "B", HomeScore: 20, AwayScore: 10}, "A"},
		{"away", Match{HomeTeam: "A", AwayTeam: "B", HomeScore: 3, AwayScore: 10}, "B"},
		{"draw", Match{HomeTeam: "A", AwayTeam: "B", HomeScore: 15, AwayScore: 15}, ""},
		{"nil-nil", Match{HomeTeam: "A", AwayTeam: "B"}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, InferWinner(c.m))
		})
	}
}

func TestMatchJSONRoundTrip(t *testing.T) {
	in := Envelope{Partidos: sampleMatches()}
	in.Partidos = append(in.Partidos, Match{HomeTeam: "C", AwayTeam: "D"})

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var raw map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	rows := raw["partidos"]
	require.Len(t, rows, 4)
	assert.Equal(t, "2020-01-01", rows[0]["date"])
	assert.Equal(t, float64(20), rows[0]["home_score"])
	assert.Equal(t, true, rows[2]["world_cup"])
	assert.Equal(t, "", rows[3]["date"])
	for _, key := range RequiredColumns {
		assert.Contains(t, rows[1], key)
	}

	var out Envelope
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
	assert.True(t, out.Partidos[3].Date.IsZero())
	assert.Equal(t, 0, out.Partidos[3].Year())
}

func TestMatchUnmarshalRejectsNegativeScore(t *testing.T) {
	var m Match
	err := json.Unmarshal([]byte(`{"date":"2020-01-01","home_score":-1}`), &m)
	assert.Error(t, err)
}

func TestMatchUnmarshalLenientDate(t *testing.T) {
	var m Match
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2019-11-02 00:00:00"}`), &m))
	assert.Equal(t, day(2019, 11, 2), m.Date)

	require.NoError(t, json.Unmarshal([]byte(`{"date":null}`), &m))
	assert.True(t, m.Date.IsZero())
}

func TestInvolves(t *testing.T) {
	m := sampleMatches()[0]
	assert.True(t, m.Involves("A"))
	assert.True(t, m.Involves("B"))
	assert.False(t, m.Involves("C"))
	assert.Equal(t, 2020, m.Year())
}
