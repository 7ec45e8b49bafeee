/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/rugby"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FrameLoader returns the current analytics frame.
type FrameLoader func(ctx context.Context) (*analytics.Frame, error)

type SummaryArgs struct{}

type WinPercentageArgs struct {
	Team     string `json:"team" jsonschema:"Team name (required)"`
	Location string `json:"location,omitempty" jsonschema:"Home|Away|Total (default Total)"`
}

type HeadToHeadArgs struct {
	Team1 string `json:"team1" jsonschema:"First team (required)"`
	Team2 string `json:"team2" jsonschema:"Second team (required)"`
	Years int    `json:"years,omitempty" jsonschema:"Only the last N years (0 = all)"`
}

type WorldCupPerformanceArgs struct {
	Team  string `json:"team" jsonschema:"Team name (required)"`
	Years []int  `json:"years,omitempty" jsonschema:"World Cup years to include (default every year named in a World Cup competition)"`
}

type TeamArgs struct {
	Team string `json:"team" jsonschema:"Team name (required)"`
}

type NoArgs struct{}

// matchRow is the tool output form of a derived match.
type matchRow struct {
	Date        string `json:"date"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
	Competition string `json:"competition"`
	Winner      string `json:"winner"`
	Stage       string `json:"stage,omitempty"`
}

func toMatchRows(results []rugby.Result) []matchRow {
	ret := make([]matchRow, 0, len(results))
	for _, r := range results {
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format(rugby.DateLayout)
		}
		ret = append(ret, matchRow{
			Date:        date,
			HomeTeam:    r.HomeTeam,
			AwayTeam:    r.AwayTeam,
			HomeScore:   r.HomeScore,
			AwayScore:   r.AwayScore,
			Competition: r.Competition,
			Winner:      r.Winner,
			Stage:       r.Stage,
		})
	}
	return ret
}

type toolset struct {
	load FrameLoader
	now  func() time.Time
}

func (ts *toolset) frame(ctx context.Context) (*analytics.Frame, error) {
	if ts.load == nil {
		return nil, errors.New("match data is not configured")
	}
	return ts.load(ctx)
}

func (ts *toolset) summary(ctx context.Context, req *mcp.CallToolRequest,
	args SummaryArgs) (*mcp.CallToolResult, any, error) {

	f, err := ts.frame(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	s := f.Summary()
	return toolJSON(map[string]int{
		"matches":      s.Matches,
		"teams":        s.Teams,
		"competitions": s.Competitions,
	})
}

func (ts *toolset) winPercentage(ctx context.Context, req *mcp.CallToolRequest,
	args WinPercentageArgs) (*mcp.CallToolResult, any, error) {

	team := strings.TrimSpace(args.Team)
	if team == "" {
		return toolError(fmt.Errorf("team is required")), nil, nil
	}
	loc := analytics.Total
	if args.Location != "" {
		var err error
		loc, err = analytics.ParseLocation(args.Location)
		if err != nil {
			return toolError(err), nil, nil
		}
	}
	f, err := ts.frame(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	rec, err := f.WinRecord(team, loc)
	if err != nil {
		return toolError(err), nil, nil
	}

	return toolJSON(map[string]any{
		"team":       team,
		"location":   loc,
		"played":     rec.Played,
		"won":        rec.Won,
		"percentage": rec.Percentage,
	})
}

func (ts *toolset) headToHead(ctx context.Context, req *mcp.CallToolRequest,
	args HeadToHeadArgs) (*mcp.CallToolResult, any, error) {

	team1, team2 := strings.TrimSpace(args.Team1), strings.TrimSpace(args.Team2)
	if team1 == "" || team2 == "" {
		return toolError(fmt.Errorf("team1 and team2 are required")), nil, nil
	}
	f, err := ts.frame(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	rows, err := f.HeadToHead(team1, team2, args.Years, ts.now())
	if err != nil {
		return toolError(err), nil, nil
	}

	return toolJSON(map[string]any{
		"team1":   team1,
		"team2":   team2,
		"matches": toMatchRows(rows),
	})
}

func (ts *toolset) worldCupPerformance(ctx context.Context,
	req *mcp.CallToolRequest,
	args WorldCupPerformanceArgs) (*mcp.CallToolResult, any, error) {

	team := strings.TrimSpace(args.Team)
	if team == "" {
		return toolError(fmt.Errorf("team is required")), nil, nil
	}
	f, err := ts.frame(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	years := args.Years
	if len(years) == 0 {
		years, err = f.WorldCupYears()
		if err != nil {
			return toolError(err), nil, nil
		}
	}
	perf, err := f.WorldCupPerformance(team, years)
	if err != nil {
		return toolError(err), nil, nil
	}

	return toolJSON(map[string]any{
		"team":    perf.Team,
		"years":   years,
		"played":  perf.Played,
		"won":     perf.Won,
		"matches": toMatchRows(perf.Matches),
	})
}

func (ts *toolset) worldCupFinalWins(ctx context.Context,
	req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {

	team := strings.TrimSpace(args.Team)
	if team == "" {
		return toolError(fmt.Errorf("team is required")), nil, nil
	}
	f, err := ts.frame(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	rows, err := f.WorldCupFinalWins(team)
	if err != nil {
		return toolError(err), nil, nil
	}

	return toolJSON(map[string]any{
		"team":    team,
		"count":   analytics.CountParticipations(rows, team),
		"matches": toMatchRows(rows),
	})
}

func (ts *toolset) championships(ctx context.Context, req *mcp.CallToolRequest,
	args NoArgs) (*mcp.CallToolResult, any, error) {

	f, err := ts.frame(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	tally, err := f.Championships()
	if err != nil {
		return toolError(err), nil, nil
	}

	type row struct {
		Team   string `json:"team"`
		Titles int    `json:"titles"`
	}
	ret := make([]row, 0, len(tally))
	for _, tc := range tally {
		ret = append(ret, row{Team: tc.Team, Titles: tc.Count})
	}
	return toolJSON(ret)
}

func (ts *toolset) matchesPerYear(ctx context.Context, req *mcp.CallToolRequest,
	args NoArgs) (*mcp.CallToolResult, any, error) {

	f, err := ts.frame(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	counts, err := f.MatchesPerYear()
	if err != nil {
		return toolError(err), nil, nil
	}

	type row struct {
		Year    int `json:"year"`
		Matches int `json:"matches"`
	}
	ret := make([]row, 0, len(counts))
	for _, yc := range counts {
		ret = append(ret, row{Year: yc.Year, Matches: yc.Count})
	}
	return toolJSON(ret)
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool,
	handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {

	*registry = append(*registry, toolInfo{Name: tool.Name,
		Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// newServer builds the MCP server with every rugby tool registered.
func newServer(ts *toolset, version string) (*mcp.Server, []toolInfo) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "rugby-mcp",
		Version: version,
	}, nil)

	registry := make([]toolInfo, 0, 8)
	addTool(server, &registry, &mcp.Tool{
		Name:        "summary",
		Description: "Number of matches, teams and competitions in the data",
	}, ts.summary)
	addTool(server, &registry, &mcp.Tool{
		Name:        "win_percentage",
		Description: "Win percentage of a team at home, away or in total",
	}, ts.winPercentage)
	addTool(server, &registry, &mcp.Tool{
		Name:        "head_to_head",
		Description: "Matches between two teams, most recent first",
	}, ts.headToHead)
	addTool(server, &registry, &mcp.Tool{
		Name:        "world_cup_performance",
		Description: "A team's World Cup record over the given years",
	}, ts.worldCupPerformance)
	addTool(server, &registry, &mcp.Tool{
		Name:        "world_cup_final_wins",
		Description: "World Cup finals won by a team",
	}, ts.worldCupFinalWins)
	addTool(server, &registry, &mcp.Tool{
		Name:        "championships",
		Description: "World Cup titles per team, most first",
	}, ts.championships)
	addTool(server, &registry, &mcp.Tool{
		Name:        "matches_per_year",
		Description: "Number of matches played per calendar year",
	}, ts.matchesPerYear)

	return server, registry
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	res, err := json.Marshal(v)
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
