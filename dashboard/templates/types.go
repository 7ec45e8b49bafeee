/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package templates

type Counters struct {
	Matches      int
	Teams        int
	Competitions int
}

type MatchRow struct {
	Date        string
	HomeTeam    string
	AwayTeam    string
	HomeScore   int
	AwayScore   int
	Competition string
	Winner      string
	Stadium     string
}

type TeamCount struct {
	Team  string
	Count int
}

type RankRow struct {
	Competition string
	Team        string
	Wins        int
}

// Form holds the current widget values.
type Form struct {
	Team       string
	Location   string
	Team1      string
	Team2      string
	Years      int
	WCTeam     string
	WCYears    []int
	FinalsTeam string
}

type WorldCupPanel struct {
	Team   string
	Years  []int
	Played int
	Won    int
	Rows   []MatchRow
}

type FinalsPanel struct {
	Team  string
	Rows  []MatchRow
	Count int
}

type PageData struct {
	SessionID string
	Counters  Counters

	HomeTeams     []string
	AwayTeams     []string
	Locations     []string
	WorldCupYears []int
	MaxYears      int
	Form          Form

	WinPercentage float64
	SameTeam      bool
	HeadToHead    []MatchRow
	WorldCup      WorldCupPanel
	Finals        FinalsPanel
	Championships []TeamCount
	Ranking       []RankRow
	HasPerYear    bool
}
