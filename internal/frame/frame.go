// Package frame holds one country's case history in a private in-memory SQLite
// table so rows can be filtered by province while keeping their source order.
package frame

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jgoulah/covidplot/pkg/models"
	_ "modernc.org/sqlite"
)

// Table wraps the in-memory database connection
type Table struct {
	conn *sql.DB
}

// New opens an empty in-memory table
func New() (*Table, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	t := &Table{conn: conn}
	if err := t.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return t, nil
}

// Close drops the table and closes the connection
func (t *Table) Close() error {
	return t.conn.Close()
}

func (t *Table) initSchema() error {
	schema := `
	CREATE TABLE cases (
		seq INTEGER PRIMARY KEY,
		country TEXT NOT NULL,
		country_code TEXT NOT NULL,
		province TEXT NOT NULL,
		city TEXT NOT NULL,
		city_code TEXT NOT NULL,
		lat TEXT NOT NULL,
		lon TEXT NOT NULL,
		cases INTEGER NOT NULL,
		status TEXT NOT NULL,
		date TEXT NOT NULL
	);
	CREATE INDEX idx_cases_province ON cases(province);
	`

	_, err := t.conn.Exec(schema)
	return err
}

// Load replaces the table contents with rows, numbering them by their index
func (t *Table) Load(ctx context.Context, rows []models.CaseRow) error {
	tx, err := t.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cases`); err != nil {
		return fmt.Errorf("clearing cases: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO cases (seq, country, country_code, province, city, city_code, lat, lon, cases, status, date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		_, err := stmt.ExecContext(ctx, i, r.Country, r.CountryCode, r.Province, r.City, r.CityCode,
			r.Lat, r.Lon, r.Cases, r.Status, r.Date)
		if err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rows: %w", err)
	}
	return nil
}

// Select returns the rows whose province equals the filter exactly, in source order.
// An empty filter matches only rows with an empty province (the national total).
func (t *Table) Select(ctx context.Context, province string) ([]models.CaseRow, error) {
	query := `
	SELECT country, country_code, province, city, city_code, lat, lon, cases, status, date
	FROM cases
	WHERE province = ?
	ORDER BY seq ASC
	`

	rows, err := t.conn.QueryContext(ctx, query, province)
	if err != nil {
		return nil, fmt.Errorf("querying cases: %w", err)
	}
	defer rows.Close()

	var results []models.CaseRow
	for rows.Next() {
		var r models.CaseRow
		if err := rows.Scan(&r.Country, &r.CountryCode, &r.Province, &r.City, &r.CityCode,
			&r.Lat, &r.Lon, &r.Cases, &r.Status, &r.Date); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// Provinces lists the distinct province names in order of first appearance.
// The national total ("") is included when present.
func (t *Table) Provinces(ctx context.Context) ([]string, error) {
	query := `
	SELECT province
	FROM cases
	GROUP BY province
	ORDER BY MIN(seq) ASC
	`

	rows, err := t.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying provinces: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning province: %w", err)
		}
		results = append(results, p)
	}

	return results, rows.Err()
}

// Len returns the number of loaded rows
func (t *Table) Len(ctx context.Context) (int, error) {
	var n int
	if err := t.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM cases`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cases: %w", err)
	}
	return n, nil
}
