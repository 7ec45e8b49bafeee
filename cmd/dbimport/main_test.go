/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikeb26/rugbystats/rugby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `date,home_team,away_team,home_score,away_score,competition,stadium,city,country,neutral,world_cup
2019-11-02,England,South Africa,12,32,Rugby World Cup Final,Yokohama,Yokohama,Japan,True,True
2020-02-01,Wales,France,,,Six Nations,,,,False,False
`

func TestImportMatches(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o644))
	dbURI := "sqlite://" + filepath.Join(dir, "rugby.db") + "?table=imported"

	ctx := context.Background()
	n, err := importMatches(ctx, csvPath, dbURI)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// importing again replaces rather than appends
	n, err = importMatches(ctx, "file://"+csvPath, dbURI)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	src, err := rugby.OpenSQLSource(ctx, dbURI)
	require.NoError(t, err)
	defer src.Close()
	matches, _, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "South Africa", rugby.InferWinner(matches[0]))
	assert.True(t, matches[0].WorldCup)
	assert.Equal(t, 0, matches[1].HomeScore)
}

func TestImportMatchesErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := importMatches(ctx, filepath.Join(dir, "missing.csv"),
		"sqlite://"+filepath.Join(dir, "rugby.db"))
	assert.Error(t, err)

	csvPath := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o644))
	_, err = importMatches(ctx, csvPath, "mysql://nope")
	assert.Error(t, err)
}
