/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package rugby holds the match record model shared by the data service,
// the dashboard and the command line tools, along with the loaders that read
// it from CSV, S3 and SQL backing sources.
package rugby

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mikeb26/rugbystats/internal"
)

const DateLayout = "2006-01-02"

// Match is one played fixture. Missing source cells are normalised to the
// zero value at load so every field is always present.
type Match struct {
	Date        time.Time `json:"date"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	HomeScore   int       `json:"home_score"`
	AwayScore   int       `json:"away_score"`
	Competition string    `json:"competition"`
	Stadium     string    `json:"stadium"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Neutral     bool      `json:"neutral"`
	WorldCup    bool      `json:"world_cup"`
}

// Envelope is the body served at /retrieve_data/.
type Envelope struct {
	Partidos []Match `json:"partidos"`
}

func (m Match) MarshalJSON() ([]byte, error) {
	type Alias Match
	date := ""
	if !m.Date.IsZero() {
		date = m.Date.Format(DateLayout)
	}
	return json.Marshal(&struct {
		Date string `json:"date"`
		*Alias
	}{
		Date:  date,
		Alias: (*Alias)(&m),
	})
}

func (m *Match) UnmarshalJSON(data []byte) error {
	type Alias Match
	aux := &struct {
		Date *string `json:"date"`
		*Alias
	}{
		Alias: (*Alias)(m),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	m.Date = time.Time{}
	if aux.Date != nil {
		d, err := internal.ParseDateOrZero(*aux.Date)
		if err != nil {
			return fmt.Errorf("rugby.Match: invalid date %q: %w", *aux.Date, err)
		}
		m.Date = d
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("rugby.Match: negative score %v-%v", m.HomeScore,
			m.AwayScore)
	}

	return nil
}

// InferWinner returns the team with the strictly higher score, or "" for a
// draw.
func InferWinner(m Match) string {
	switch {
	case m.HomeScore > m.AwayScore:
		return m.HomeTeam
	case m.AwayScore > m.HomeScore:
		return m.AwayTeam
	}
	return ""
}

// Year returns the calendar year the match was played in, or 0 when the
// date is unknown.
func (m Match) Year() int {
	if m.Date.IsZero() {
		return 0
	}
	return m.Date.Year()
}

// Involves reports whether team played in m, either home or away.
func (m Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

func (m Match) String() string {
	date := "????-??-??"
	if !m.Date.IsZero() {
		date = m.Date.Format(DateLayout)
	}
	return fmt.Sprintf("%v %v %v-%v %v (%v)", date, m.HomeTeam, m.HomeScore,
		m.AwayScore, m.AwayTeam, strings.TrimSpace(m.Competition))
}
