/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mikeb26/rugbystats/analytics"
	"github.com/mikeb26/rugbystats/internal"
	"github.com/mikeb26/rugbystats/rugby"
	"golang.org/x/sync/errgroup"
)

//go:embed help.txt
var helpText string

type cmdHandler func(ctx context.Context, args []string)

var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"summary":   handleSummary,
	"winpct":    handleWinPct,
	"h2h":       handleH2H,
	"worldcup":  handleWorldCup,
	"finals":    handleFinals,
	"ranking":   handleRanking,
	"champions": handleChampions,
	"peryear":   handlePerYear,
	"charts":    handleCharts,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// commonFlags are accepted by every data command.
type commonFlags struct {
	url        *string
	classifier *string
}

func newFlagSet(name string) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cf := &commonFlags{
		url: fs.String("url", internal.EnvOr("RUGBY_DATA_URL",
			internal.DefaultDataURL), "Data service endpoint"),
		classifier: fs.String("classifier", "",
			"JSON file overriding the competition substrings"),
	}
	return fs, cf
}

func parse(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
}

// frame fetches the collection once and builds the analytics frame.
func (cf *commonFlags) frame(ctx context.Context) *analytics.Frame {
	cls, err := rugby.ClassifierFromFlag(*cf.classifier)
	if err != nil {
		log.Fatalf("Error loading classifier: %v", err)
	}
	httpClient := internal.NewCachedHttpClient(ctx,
		internal.EnvOr("RUGBY_CACHE_BUCKET", ""), 10*time.Minute)
	matches, err := rugby.NewClient(httpClient, *cf.url).Load(ctx)
	if err != nil {
		log.Fatalf("Error fetching matches from %v: %v", *cf.url, err)
	}
	f, err := analytics.NewFrame(matches, cls)
	if err != nil {
		log.Fatalf("Error building frame: %v", err)
	}
	return f
}

func requireFlag(fs *flag.FlagSet, name string, val string) {
	if strings.TrimSpace(val) == "" {
		fmt.Fprintf(os.Stderr, "Please provide a valid --%v.\n", name)
		fs.Usage()
		os.Exit(1)
	}
}

func handleSummary(ctx context.Context, args []string) {
	fs, cf := newFlagSet("summary")
	parse(fs, args)

	renderSummary(os.Stdout, cf.frame(ctx))
}

func handleWinPct(ctx context.Context, args []string) {
	fs, cf := newFlagSet("winpct")
	team := fs.String("team", "", "Team name")
	location := fs.String("location", string(analytics.Total), "Home, Away or Total")
	parse(fs, args)
	requireFlag(fs, "team", *team)
	loc, err := analytics.ParseLocation(*location)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(1)
	}

	err = renderWinPct(os.Stdout, cf.frame(ctx), *team, loc)
	if err != nil {
		log.Fatalf("Error computing win percentage: %v", err)
	}
}

func handleH2H(ctx context.Context, args []string) {
	fs, cf := newFlagSet("h2h")
	team1 := fs.String("team1", "", "First team")
	team2 := fs.String("team2", "", "Second team")
	years := fs.Int("years", 10, "Only include the last N years (1-150, 0 for all)")
	parse(fs, args)
	requireFlag(fs, "team1", *team1)
	requireFlag(fs, "team2", *team2)
	// enforce bounds
	if *years < 0 {
		*years = 0
	} else if *years > 150 {
		*years = 150
	}

	err := renderH2H(os.Stdout, cf.frame(ctx), *team1, *team2, *years, time.Now())
	if err != nil {
		log.Fatalf("Error computing head-to-head: %v", err)
	}
}

func handleWorldCup(ctx context.Context, args []string) {
	fs, cf := newFlagSet("worldcup")
	team := fs.String("team", "", "Team name")
	yearsStr := fs.String("years", "", "Comma separated World Cup years")
	parse(fs, args)
	requireFlag(fs, "team", *team)
	years, err := parseYears(*yearsStr)
	if err != nil || len(years) == 0 {
		fmt.Fprintln(os.Stderr, "Please provide --years as a comma separated list, e.g. 2015,2019.")
		fs.Usage()
		os.Exit(1)
	}

	err = renderWorldCup(os.Stdout, cf.frame(ctx), *team, years)
	if err != nil {
		log.Fatalf("Error computing World Cup performance: %v", err)
	}
}

func handleFinals(ctx context.Context, args []string) {
	fs, cf := newFlagSet("finals")
	team := fs.String("team", "", "Team name")
	parse(fs, args)
	requireFlag(fs, "team", *team)

	err := renderFinals(os.Stdout, cf.frame(ctx), *team)
	if err != nil {
		log.Fatalf("Error computing World Cup finals: %v", err)
	}
}

func handleRanking(ctx context.Context, args []string) {
	fs, cf := newFlagSet("ranking")
	allWins := fs.Bool("all-wins", false, "Count away wins as well as home wins")
	limit := fs.Int("limit", 0, "Show at most N rows (0 for all)")
	parse(fs, args)

	err := renderRanking(os.Stdout, cf.frame(ctx),
		analytics.CumulativeOptions{CountAwayWins: *allWins}, *limit)
	if err != nil {
		log.Fatalf("Error computing ranking: %v", err)
	}
}

func handleChampions(ctx context.Context, args []string) {
	fs, cf := newFlagSet("champions")
	parse(fs, args)

	err := renderChampions(os.Stdout, cf.frame(ctx))
	if err != nil {
		log.Fatalf("Error computing championships: %v", err)
	}
}

func handlePerYear(ctx context.Context, args []string) {
	fs, cf := newFlagSet("peryear")
	parse(fs, args)

	err := renderPerYear(os.Stdout, cf.frame(ctx))
	if err != nil {
		log.Fatalf("Error computing matches per year: %v", err)
	}
}

func handleCharts(ctx context.Context, args []string) {
	fs, cf := newFlagSet("charts")
	out := fs.String("out", ".", "Directory to write the PNG files to")
	parse(fs, args)

	paths, err := writeCharts(ctx, cf.frame(ctx), *out)
	if err != nil {
		log.Fatalf("Error writing charts: %v", err)
	}
	for _, p := range paths {
		fmt.Printf("wrote %v\n", p)
	}
}

func parseYears(s string) ([]int, error) {
	var ret []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", part, err)
		}
		ret = append(ret, y)
	}
	return ret, nil
}

// writeCharts renders both charts concurrently over the same frame.
func writeCharts(ctx context.Context, f *analytics.Frame,
	dir string) ([]string, error) {

	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}

	charts := []struct {
		name   string
		render func(io.Writer) error
	}{
		{"championships.png", f.ChampionshipsChart},
		{"matches-per-year.png", f.MatchesPerYearChart},
	}
	paths := make([]string, len(charts))

	eg, _ := errgroup.WithContext(ctx)
	for i, c := range charts {
		path := filepath.Join(dir, c.name)
		paths[i] = path
		eg.Go(func() error {
			out, err := os.Create(path)
			if err != nil {
				return err
			}
			err = c.render(out)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(path)
				return fmt.Errorf("%v: %w", c.name, err)
			}
			return nil
		})
	}
	err = eg.Wait()
	if err != nil {
		return nil, err
	}

	return paths, nil
}
