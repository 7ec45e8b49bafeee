/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/mikeb26/rugbystats/internal"
)

// RequiredColumns lists the backing table columns every source must carry.
// Extra columns are ignored.
var RequiredColumns = []string{
	"date", "home_team", "away_team", "home_score", "away_score",
	"competition", "stadium", "city", "country", "neutral", "world_cup",
}

var ErrMissingColumn = errors.New("missing column")

// LoadStats describes a completed load.
type LoadStats struct {
	Rows int
	// FilledCells counts empty cells that were replaced with a zero value.
	FilledCells int
}

const utf8BOM = "\ufeff"

// gota renders missing string cells as "NaN"
const gotaNaN = "NaN"

// ReadCSV parses a CSV document with a header row into matches.
func ReadCSV(r io.Reader) ([]Match, LoadStats, error) {
	rdr := csv.NewReader(r)
	rdr.TrimLeadingSpace = true
	// short rows are padded by FromRecords
	rdr.FieldsPerRecord = -1
	records, err := rdr.ReadAll()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("rugby.ReadCSV: %w", err)
	}

	return FromRecords(records)
}

// FromRecords converts a header row followed by data rows into matches.
func FromRecords(records [][]string) ([]Match, LoadStats, error) {
	if len(records) == 0 {
		return nil, LoadStats{}, fmt.Errorf("rugby.FromRecords: no header row")
	}
	header := append([]string(nil), records[0]...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	err := checkColumns(header)
	if err != nil {
		return nil, LoadStats{}, err
	}
	if len(records) == 1 {
		return []Match{}, LoadStats{}, nil
	}

	// missing trailing cells become empty and are zero-filled like any
	// other missing cell
	norm := make([][]string, 0, len(records))
	norm = append(norm, header)
	for i, rec := range records[1:] {
		switch {
		case len(rec) > len(header):
			return nil, LoadStats{}, fmt.Errorf("rugby.FromRecords: row %v has %v fields; header has %v",
				i+1, len(rec), len(header))
		case len(rec) < len(header):
			padded := make([]string, len(header))
			copy(padded, rec)
			rec = padded
		}
		norm = append(norm, rec)
	}
	records = norm

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, LoadStats{}, fmt.Errorf("rugby.FromRecords: %w", df.Err)
	}

	return FromFrame(df)
}

// FromFrame converts a data frame holding at least RequiredColumns into
// matches, zero-filling missing cells.
func FromFrame(df dataframe.DataFrame) ([]Match, LoadStats, error) {
	if df.Err != nil {
		return nil, LoadStats{}, df.Err
	}
	err := checkColumns(df.Names())
	if err != nil {
		return nil, LoadStats{}, err
	}

	cols := make(map[string][]string, len(RequiredColumns))
	for _, name := range RequiredColumns {
		cols[name] = df.Col(name).Records()
	}

	var stats LoadStats
	ret := make([]Match, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		fc := &fillCounter{}
		var m Match

		m.Date, err = internal.ParseDateOrZero(fc.str(cols["date"][i]))
		if err != nil {
			return nil, stats, fmt.Errorf("rugby.FromFrame: row %v: invalid date %q: %w",
				i+1, cols["date"][i], err)
		}
		m.HomeTeam = fc.str(cols["home_team"][i])
		m.AwayTeam = fc.str(cols["away_team"][i])
		m.Competition = fc.str(cols["competition"][i])
		m.Stadium = fc.str(cols["stadium"][i])
		m.City = fc.str(cols["city"][i])
		m.Country = fc.str(cols["country"][i])

		m.HomeScore, err = fc.score(cols["home_score"][i])
		if err != nil {
			return nil, stats, fmt.Errorf("rugby.FromFrame: row %v: home_score: %w", i+1, err)
		}
		m.AwayScore, err = fc.score(cols["away_score"][i])
		if err != nil {
			return nil, stats, fmt.Errorf("rugby.FromFrame: row %v: away_score: %w", i+1, err)
		}
		m.Neutral, err = fc.flag(cols["neutral"][i])
		if err != nil {
			return nil, stats, fmt.Errorf("rugby.FromFrame: row %v: neutral: %w", i+1, err)
		}
		m.WorldCup, err = fc.flag(cols["world_cup"][i])
		if err != nil {
			return nil, stats, fmt.Errorf("rugby.FromFrame: row %v: world_cup: %w", i+1, err)
		}

		stats.FilledCells += fc.n
		ret = append(ret, m)
	}
	stats.Rows = len(ret)

	return ret, stats, nil
}

func checkColumns(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = true
	}
	for _, name := range RequiredColumns {
		if !have[name] {
			return fmt.Errorf("rugby: %w: %v", ErrMissingColumn, name)
		}
	}
	return nil
}

type fillCounter struct {
	n int
}

func (fc *fillCounter) missing(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == gotaNaN {
		fc.n++
		return true
	}
	return false
}

func (fc *fillCounter) str(cell string) string {
	if fc.missing(cell) {
		return ""
	}
	return strings.TrimSpace(cell)
}

// score accepts "20" as well as the "20.0" float exports produce.
func (fc *fillCounter) score(cell string) (int, error) {
	if fc.missing(cell) {
		return 0, nil
	}
	cell = strings.TrimSpace(cell)
	v, err := strconv.Atoi(cell)
	if err != nil {
		f, ferr := strconv.ParseFloat(cell, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("invalid score %q", cell)
		}
		v = int(f)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative score %v", v)
	}
	return v, nil
}

func (fc *fillCounter) flag(cell string) (bool, error) {
	if fc.missing(cell) {
		return false, nil
	}
	cell = strings.TrimSpace(cell)
	b, err := strconv.ParseBool(cell)
	if err == nil {
		return b, nil
	}
	f, ferr := strconv.ParseFloat(cell, 64)
	if ferr != nil {
		return false, fmt.Errorf("invalid boolean %q", cell)
	}
	return f != 0, nil
}
