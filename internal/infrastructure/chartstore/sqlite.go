// Package chartstore persists retailer size charts in SQLite. Charts back
// the recommendation fallback for product pages that expose no measurement
// table of their own.
package chartstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

// schema defines the chart tables. Rows keep their own position column so a
// chart always comes back in the ascending order it was stored in.
const schema = `
CREATE TABLE IF NOT EXISTS charts (
	retailer TEXT NOT NULL,
	category TEXT NOT NULL,
	offered TEXT NOT NULL DEFAULT '[]',
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (retailer, category)
);

CREATE TABLE IF NOT EXISTS chart_rows (
	retailer TEXT NOT NULL,
	category TEXT NOT NULL,
	position INTEGER NOT NULL,
	label TEXT NOT NULL,
	chest_cm REAL NOT NULL DEFAULT 0,
	waist_cm REAL NOT NULL DEFAULT 0,
	hip_cm REAL NOT NULL DEFAULT 0,
	foot_length_cm REAL NOT NULL DEFAULT 0,
	inseam_cm REAL NOT NULL DEFAULT 0,
	row_index INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (retailer, category, position),
	FOREIGN KEY (retailer, category) REFERENCES charts(retailer, category) ON DELETE CASCADE
);
`

// SQLiteStore implements domain.ChartRepository on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the chart database at path, creating it and the schema if
// necessary. Use ":memory:" for an ephemeral store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening chart database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetChart returns the stored rows and offered labels for a retailer and
// category, in stored order.
func (s *SQLiteStore) GetChart(ctx context.Context, retailer string, category domain.Category) ([]domain.SizeTableRow, []string, error) {
	var offeredJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT offered FROM charts WHERE retailer = ? AND category = ?`,
		retailer, string(category),
	).Scan(&offeredJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrChartNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying chart: %w", err)
	}

	var offered []string
	if err := json.Unmarshal([]byte(offeredJSON), &offered); err != nil {
		return nil, nil, fmt.Errorf("decoding offered sizes: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT label, chest_cm, waist_cm, hip_cm, foot_length_cm, inseam_cm, row_index
		 FROM chart_rows WHERE retailer = ? AND category = ? ORDER BY position`,
		retailer, string(category),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("querying chart rows: %w", err)
	}
	defer rows.Close()

	var out []domain.SizeTableRow
	for rows.Next() {
		var r domain.SizeTableRow
		if err := rows.Scan(&r.Label, &r.ChestCM, &r.WaistCM, &r.HipCM, &r.FootLengthCM, &r.InseamCM, &r.RowIndex); err != nil {
			return nil, nil, fmt.Errorf("scanning chart row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading chart rows: %w", err)
	}
	return out, offered, nil
}

// SaveChart stores a chart, replacing any previous chart for the same
// retailer and category.
func (s *SQLiteStore) SaveChart(ctx context.Context, retailer string, category domain.Category, rows []domain.SizeTableRow, offered []string) error {
	if offered == nil {
		offered = []string{}
	}
	offeredJSON, err := json.Marshal(offered)
	if err != nil {
		return fmt.Errorf("encoding offered sizes: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM charts WHERE retailer = ? AND category = ?`,
		retailer, string(category),
	); err != nil {
		return fmt.Errorf("replacing chart: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO charts (retailer, category, offered) VALUES (?, ?, ?)`,
		retailer, string(category), string(offeredJSON),
	); err != nil {
		return fmt.Errorf("inserting chart: %w", err)
	}

	for i, row := range rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chart_rows (retailer, category, position, label, chest_cm, waist_cm, hip_cm, foot_length_cm, inseam_cm, row_index)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			retailer, string(category), i, row.Label, row.ChestCM, row.WaistCM, row.HipCM, row.FootLengthCM, row.InseamCM, row.RowIndex,
		); err != nil {
			return fmt.Errorf("inserting chart row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Retailers lists every retailer with at least one stored chart.
func (s *SQLiteStore) Retailers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT retailer FROM charts ORDER BY retailer`)
	if err != nil {
		return nil, fmt.Errorf("querying retailers: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var retailer string
		if err := rows.Scan(&retailer); err != nil {
			return nil, fmt.Errorf("scanning retailer: %w", err)
		}
		out = append(out, retailer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading retailers: %w", err)
	}
	return out, nil
}
