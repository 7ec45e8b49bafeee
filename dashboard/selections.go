/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package dashboard

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mikeb26/rugbystats/analytics"
)

const (
	MinYears     = 1
	MaxYears     = 150
	DefaultYears = 10
)

// Selections are the dashboard's widget values.
type Selections struct {
	Team       string
	Location   analytics.Location
	Team1      string
	Team2      string
	Years      int
	WCTeam     string
	WCYears    []int
	FinalsTeam string
}

// ParseSelections reads widget values from a query string. Missing or
// unknown teams fall back to the first option, like a select box with
// nothing chosen yet.
func ParseSelections(q url.Values, homeTeams []string,
	awayTeams []string) Selections {

	sel := Selections{
		Team:       pick(q.Get("team"), homeTeams),
		Team1:      pick(q.Get("team1"), homeTeams),
		Team2:      pick(q.Get("team2"), awayTeams),
		WCTeam:     pick(q.Get("wc_team"), homeTeams),
		FinalsTeam: pick(q.Get("finals_team"), homeTeams),
		Location:   analytics.Home,
		Years:      DefaultYears,
		WCYears:    []int{},
	}

	if v := q.Get("location"); v != "" {
		loc, err := analytics.ParseLocation(v)
		if err != nil {
			loc = analytics.Total
		}
		sel.Location = loc
	}

	if v := strings.TrimSpace(q.Get("years")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			sel.Years = clamp(n, MinYears, MaxYears)
		}
	}

	seen := make(map[int]bool)
	for _, v := range q["wc_years"] {
		for _, part := range strings.Split(v, ",") {
			y, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || seen[y] {
				continue
			}
			seen[y] = true
			sel.WCYears = append(sel.WCYears, y)
		}
	}

	return sel
}

func pick(v string, options []string) string {
	for _, o := range options {
		if o == v {
			return v
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return v
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
