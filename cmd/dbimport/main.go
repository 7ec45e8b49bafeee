/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// dbimport copies a match table from any supported source into a SQL
// table the data service can serve from.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mikeb26/rugbystats/internal"
	"github.com/mikeb26/rugbystats/rugby"
	"golang.org/x/sync/errgroup"
)

// importMatches loads every match from sourceURI and replaces the table
// named by dbURI with them. Loading and connecting run concurrently.
func importMatches(ctx context.Context, sourceURI string, dbURI string) (int, error) {
	var matches []rugby.Match
	var stats rugby.LoadStats
	var db *rugby.DB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		src, err := rugby.OpenSource(gctx, sourceURI)
		if err != nil {
			return err
		}
		if c, ok := src.(io.Closer); ok {
			defer c.Close()
		}
		matches, stats, err = src.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load %v: %w", src, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		db, err = rugby.OpenDB(gctx, dbURI)
		return err
	})
	err := g.Wait()
	if db != nil {
		defer db.Close()
	}
	if err != nil {
		return 0, err
	}
	if stats.FilledCells > 0 {
		log.Printf("dbimport: zero-filled %v missing cells in %v rows",
			stats.FilledCells, stats.Rows)
	}

	err = rugby.WriteSQL(ctx, db, matches)
	if err != nil {
		return 0, err
	}

	return len(matches), nil
}

func main() {
	source := flag.String("source", internal.EnvOr("RUGBY_SOURCE",
		internal.DefaultSource), "Match table to import (CSV path, file://, s3://, sqlite:// or postgres://)")
	dbURI := flag.String("db", internal.EnvOr("RUGBY_DB", ""),
		"Destination database (sqlite:///path.db or postgres://...; ?table=name)")
	flag.Parse()

	if *dbURI == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --db uri.")
		flag.Usage()
		os.Exit(1)
	}

	n, err := importMatches(context.Background(), *source, *dbURI)
	if err != nil {
		log.Fatalf("Error importing %v: %v", *source, err)
	}
	fmt.Printf("Imported %v matches from %v\n", n, *source)
}
