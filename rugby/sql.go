/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package rugby

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/mikeb26/rugbystats/internal"
)

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"

	rowNumColumn = "row_num"
	insertBatch  = 500
)

var tableNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DB is an open SQL connection plus what is needed to build queries for it.
type DB struct {
	*sqlx.DB
	Dialect string
	Table   string
	desc    string
}

func (db *DB) String() string {
	return db.desc
}

// OpenDB connects to the database named by a sqlite:// or postgres:// uri.
// The optional table query parameter selects the matches table.
func OpenDB(ctx context.Context, uri string) (*DB, error) {
	table := internal.DefaultSQLTable
	var driver, dialect, dsn string

	switch {
	case strings.HasPrefix(uri, "sqlite://"):
		path := strings.TrimPrefix(uri, "sqlite://")
		if idx := strings.Index(path, "?"); idx >= 0 {
			q, err := url.ParseQuery(path[idx+1:])
			if err != nil {
				return nil, fmt.Errorf("rugby.OpenDB: invalid query in %q: %w", uri, err)
			}
			if t := q.Get("table"); t != "" {
				table = t
			}
			path = path[:idx]
		}
		if path == "" {
			return nil, fmt.Errorf("rugby.OpenDB: %q has no database path", uri)
		}
		driver, dialect, dsn = "sqlite", DialectSQLite, path
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("rugby.OpenDB: invalid uri: %w", err)
		}
		q := u.Query()
		if t := q.Get("table"); t != "" {
			table = t
		}
		q.Del("table")
		u.RawQuery = q.Encode()
		driver, dialect, dsn = "pgx", DialectPostgres, u.String()
	default:
		return nil, fmt.Errorf("rugby.OpenDB: unsupported database uri %q", uri)
	}

	if !tableNameRE.MatchString(table) {
		return nil, fmt.Errorf("rugby.OpenDB: invalid table name %q", table)
	}

	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("rugby.OpenDB: failed to connect: %w", err)
	}
	if dialect == DialectSQLite {
		// sqlite allows a single writer
		conn.SetMaxOpenConns(1)
	}

	return &DB{
		DB:      conn,
		Dialect: dialect,
		Table:   table,
		desc:    fmt.Sprintf("%v:%v", dialect, table),
	}, nil
}

// SQLSource reads matches from a SQL table written by WriteSQL.
type SQLSource struct {
	DB *DB
}

// OpenSQLSource connects to uri and returns a Source reading its table.
func OpenSQLSource(ctx context.Context, uri string) (*SQLSource, error) {
	db, err := OpenDB(ctx, uri)
	if err != nil {
		return nil, err
	}
	return &SQLSource{DB: db}, nil
}

func (ss *SQLSource) String() string {
	return ss.DB.String()
}

func (ss *SQLSource) Close() error {
	return ss.DB.Close()
}

func (ss *SQLSource) Load(ctx context.Context) ([]Match, LoadStats, error) {
	cols := make([]interface{}, 0, len(RequiredColumns))
	for _, c := range RequiredColumns {
		cols = append(cols, goqu.C(c))
	}
	query, args, err := goqu.Dialect(ss.DB.Dialect).
		From(ss.DB.Table).
		Select(cols...).
		Order(goqu.C(rowNumColumn).Asc()).
		ToSQL()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("rugby.SQLSource: failed to build query: %w", err)
	}

	rows, err := ss.DB.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("rugby.SQLSource: query failed: %w", err)
	}
	defer rows.Close()

	records := [][]string{RequiredColumns}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("rugby.SQLSource: scan failed: %w", err)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = sqlValueToCell(v)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, LoadStats{}, fmt.Errorf("rugby.SQLSource: %w", err)
	}

	return FromRecords(records)
}

func sqlValueToCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(DateLayout)
	}
	return fmt.Sprint(v)
}

// WriteSQL replaces db's table with matches, preserving their order in the
// row_num column. The whole replacement happens in one transaction.
func WriteSQL(ctx context.Context, db *DB, matches []Match) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rugby.WriteSQL: failed to begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %v", db.Table))
	if err != nil {
		return fmt.Errorf("rugby.WriteSQL: failed to drop %v: %w", db.Table, err)
	}
	_, err = tx.ExecContext(ctx, createTableSQL(db.Table))
	if err != nil {
		return fmt.Errorf("rugby.WriteSQL: failed to create %v: %w", db.Table, err)
	}

	cols := make([]interface{}, 0, len(RequiredColumns)+1)
	cols = append(cols, rowNumColumn)
	for _, c := range RequiredColumns {
		cols = append(cols, c)
	}

	dialect := goqu.Dialect(db.Dialect)
	for start := 0; start < len(matches); start += insertBatch {
		end := start + insertBatch
		if end > len(matches) {
			end = len(matches)
		}
		vals := make([][]interface{}, 0, end-start)
		for i := start; i < end; i++ {
			vals = append(vals, matchToRow(i, matches[i]))
		}
		query, args, err := dialect.Insert(db.Table).Prepared(true).
			Cols(cols...).Vals(vals...).ToSQL()
		if err != nil {
			return fmt.Errorf("rugby.WriteSQL: failed to build insert: %w", err)
		}
		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("rugby.WriteSQL: insert of rows %v-%v failed: %w",
				start, end-1, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("rugby.WriteSQL: commit failed: %w", err)
	}
	return nil
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE %v (
	%v INTEGER PRIMARY KEY,
	date TEXT NOT NULL,
	home_team TEXT NOT NULL,
	away_team TEXT NOT NULL,
	home_score INTEGER NOT NULL,
	away_score INTEGER NOT NULL,
	competition TEXT NOT NULL,
	stadium TEXT NOT NULL,
	city TEXT NOT NULL,
	country TEXT NOT NULL,
	neutral BOOLEAN NOT NULL,
	world_cup BOOLEAN NOT NULL
)`, table, rowNumColumn)
}

func matchToRow(idx int, m Match) []interface{} {
	date := ""
	if !m.Date.IsZero() {
		date = m.Date.Format(DateLayout)
	}
	return []interface{}{
		idx, date, m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore,
		m.Competition, m.Stadium, m.City, m.Country, m.Neutral, m.WorldCup,
	}
}
