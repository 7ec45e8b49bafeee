/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestErrorPageEscapes(t *testing.T) {
	doc := render(t, ErrorPage(`<script>alert("x")</script>`))
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find("#error pre").Text())
	assert.Equal(t, 0, doc.Find("script").Length())
}

func TestPageSelections(t *testing.T) {
	data := PageData{
		HomeTeams:     []string{"A & B", "C"},
		AwayTeams:     []string{"C"},
		Locations:     []string{"Home", "Away", "Total"},
		WorldCupYears: []int{2015, 2019},
		MaxYears:      150,
		Form: Form{Team: "C", Location: "Away", Team1: "A & B", Team2: "C",
			Years: 10, WCTeam: "C", WCYears: []int{2019}, FinalsTeam: "C"},
		WinPercentage: 12.5,
		HeadToHead: []MatchRow{{Date: "2020-01-01", HomeTeam: "A & B",
			AwayTeam: "C", HomeScore: 3, AwayScore: 0, Winner: "A & B"}},
		Finals: FinalsPanel{Team: "C"},
	}
	doc := render(t, Page(data))

	assert.Equal(t, "C", doc.Find("#team option[selected]").Text())
	assert.Equal(t, "A & B", doc.Find("#team option").First().AttrOr("value", ""))
	assert.Equal(t, "Away", doc.Find(`input[name="location"][checked]`).AttrOr("value", ""))
	assert.Equal(t, "12.50%", doc.Find("#win-pct").Text())
	assert.Equal(t, "2019", doc.Find("#wc_years option[selected]").Text())
	assert.Equal(t, "A & B", doc.Find("#h2h-table td.winner").Text())
	assert.Equal(t, 1, doc.Find("#worldcup-info").Length())
	assert.Contains(t, doc.Find("#finals-info").Text(), "C has not won a World Cup final.")
	assert.Contains(t, doc.Find("#per-year").Text(), "No dated matches")
}
