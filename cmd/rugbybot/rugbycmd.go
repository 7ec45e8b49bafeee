/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/rugby"
)

type RugbySubCommand string

const (
	RugbyHelpCmd      RugbySubCommand = "help"
	RugbyWinPctCmd    RugbySubCommand = "winpct"
	RugbyH2HCmd       RugbySubCommand = "h2h"
	RugbyFinalsCmd    RugbySubCommand = "finals"
	RugbyChampionsCmd RugbySubCommand = "champions"
)

var rugbySubCmdHdlrs = map[RugbySubCommand]CmdHandler{
	RugbyHelpCmd:      rugbyHelpCmdHandler,
	RugbyWinPctCmd:    rugbyWinPctCmdHandler,
	RugbyH2HCmd:       rugbyH2HCmdHandler,
	RugbyFinalsCmd:    rugbyFinalsCmdHandler,
	RugbyChampionsCmd: rugbyChampionsCmdHandler,
}

var broadcastOpt = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionBoolean,
	Name:        "broadcast",
	Description: "Share with the rest of the channel instead of only to you (default is false)",
	Required:    false,
}

func teamOpt(name string, desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: desc,
		Required:    true,
	}
}

func rugbyCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(RugbyCmd),
		Description: "Rugby match statistics; try /rugby help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RugbyHelpCmd),
				Description: "Show usage for rugby",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RugbyWinPctCmd),
				Description: "Win percentage of a team",
				Options: []*discordgo.ApplicationCommandOption{
					teamOpt("team", "Team name"),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "location",
						Description: "Home, Away or Total (default is Total)",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Home", Value: string(analytics.Home)},
							{Name: "Away", Value: string(analytics.Away)},
							{Name: "Total", Value: string(analytics.Total)},
						},
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RugbyH2HCmd),
				Description: "Head-to-head results of two teams",
				Options: []*discordgo.ApplicationCommandOption{
					teamOpt("team1", "First team"),
					teamOpt("team2", "Second team"),
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "years",
						Description: "Only include the last N years (default is 10)",
						Required:    false,
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RugbyFinalsCmd),
				Description: "World Cup finals won by a team",
				Options: []*discordgo.ApplicationCommandOption{
					teamOpt("team", "Team name"),
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RugbyChampionsCmd),
				Description: "World Cup titles per team",
				Options: []*discordgo.ApplicationCommandOption{
					broadcastOpt,
				},
			},
		},
	}
}

func rugbyCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := rugbyHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := rugbySubCmdHdlrs[RugbySubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subOptions are the options given to the invoked subcommand.
type subOptions struct {
	strs      map[string]string
	ints      map[string]int64
	broadcast bool
}

func parseSubOptions(inter *discordgo.Interaction) subOptions {
	so := subOptions{
		strs: make(map[string]string),
		ints: make(map[string]int64),
	}
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return so
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			so.strs[opt.Name] = strings.TrimSpace(opt.StringValue())
		case discordgo.ApplicationCommandOptionInteger:
			so.ints[opt.Name] = opt.IntValue()
		case discordgo.ApplicationCommandOptionBoolean:
			if opt.Name == "broadcast" {
				so.broadcast = opt.BoolValue()
			}
		}
	}
	return so
}

func (so subOptions) apply(resp *discordgo.InteractionResponse) *discordgo.InteractionResponse {
	if so.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func frameOrError(ctx context.Context, resp *discordgo.InteractionResponse,
	cmd string) *analytics.Frame {

	if loadFrame == nil {
		resp.Data.Content = "Match data is not configured."
		log.Printf("rugbybot.%v: %v", cmd, resp.Data.Content)
		return nil
	}
	f, err := loadFrame(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching match data: %v", err)
		log.Printf("rugbybot.%v: %v", cmd, resp.Data.Content)
		return nil
	}
	return f
}

//go:embed help.md
var helpText string

func rugbyHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func rugbyWinPctCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	team := so.strs["team"]
	if team == "" {
		resp.Data.Content = "Please provide a team."
		return resp
	}
	loc := analytics.Total
	if v, ok := so.strs["location"]; ok && v != "" {
		var err error
		loc, err = analytics.ParseLocation(v)
		if err != nil {
			resp.Data.Content = err.Error()
			return resp
		}
	}

	f := frameOrError(ctx, resp, "winpct")
	if f == nil {
		return resp
	}
	rec, err := f.WinRecord(team, loc)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error computing win percentage: %v", err)
		log.Printf("rugbybot.winpct: %v", resp.Data.Content)
		return resp
	}
	resp.Data.Content = fmt.Sprintf("**%v** (%v): won %v of %v, %.2f%%", team,
		loc, rec.Won, rec.Played, rec.Percentage)

	return so.apply(resp)
}

func rugbyH2HCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	team1, team2 := so.strs["team1"], so.strs["team2"]
	if team1 == "" || team2 == "" {
		resp.Data.Content = "Please provide two teams."
		return resp
	}
	years, ok := so.ints["years"]
	if !ok {
		years = 10
	}
	// enforce bounds
	if years < 0 {
		years = 0
	} else if years > 150 {
		years = 150
	}

	f := frameOrError(ctx, resp, "h2h")
	if f == nil {
		return resp
	}
	rows, err := f.HeadToHead(team1, team2, int(years), time.Now())
	if errors.Is(err, analytics.ErrSameTeam) {
		resp.Data.Content = "Please select two different teams."
		return resp
	} else if err != nil {
		resp.Data.Content = fmt.Sprintf("Error computing head-to-head: %v", err)
		log.Printf("rugbybot.h2h: %v", resp.Data.Content)
		return resp
	}
	if len(rows) == 0 {
		resp.Data.Content = fmt.Sprintf("%v and %v have not played each other", team1, team2)
		if years > 0 {
			resp.Data.Content += fmt.Sprintf(" in the last %v years", years)
		}
		resp.Data.Content += "."
		return so.apply(resp)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%v vs %v** (%v matches)\n", team1, team2, len(rows)))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("- %v\n", resultLine(r)))
	}
	resp.Data.Content = truncateContent(sb.String())

	return so.apply(resp)
}

func rugbyFinalsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	team := so.strs["team"]
	if team == "" {
		resp.Data.Content = "Please provide a team."
		return resp
	}

	f := frameOrError(ctx, resp, "finals")
	if f == nil {
		return resp
	}
	rows, err := f.WorldCupFinalWins(team)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error computing finals: %v", err)
		log.Printf("rugbybot.finals: %v", resp.Data.Content)
		return resp
	}
	if len(rows) == 0 {
		resp.Data.Content = fmt.Sprintf("%v has not won a World Cup final.", team)
		return so.apply(resp)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%v** has won %v World Cup final(s)\n", team,
		analytics.CountParticipations(rows, team)))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("- %v\n", resultLine(r)))
	}
	resp.Data.Content = truncateContent(sb.String())

	return so.apply(resp)
}

func rugbyChampionsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)

	f := frameOrError(ctx, resp, "champions")
	if f == nil {
		return resp
	}
	tally, err := f.Championships()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error computing championships: %v", err)
		log.Printf("rugbybot.champions: %v", resp.Data.Content)
		return resp
	}
	if len(tally) == 0 {
		resp.Data.Content = "No World Cup finals found."
		return so.apply(resp)
	}

	var sb strings.Builder
	sb.WriteString("**World Cup titles**\n")
	for _, tc := range tally {
		sb.WriteString(fmt.Sprintf("- %v: %v\n", tc.Team, tc.Count))
	}
	resp.Data.Content = truncateContent(sb.String())

	return so.apply(resp)
}

func resultLine(r rugby.Result) string {
	winner := r.Winner
	if winner == "" {
		winner = "draw"
	}
	return fmt.Sprintf("%v (winner: %v)", r.Match, winner)
}

func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
