package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"campus-map/config"
	"campus-map/models"
	"campus-map/utils"
)

// PostgresSource reads institutions from a PostgreSQL table with the columns
// name, rank, score, latitude, longitude and image_url. Rows come back keyed by
// the configured header names so they compose exactly like spreadsheet rows.
type PostgresSource struct {
	db      *sql.DB
	table   string
	columns config.Columns
	retry   *utils.RetryConfig
}

// NewPostgresSource opens a connection pool for dsn. The connection is only
// checked when Load runs.
func NewPostgresSource(dsn, table string, columns config.Columns, retry *utils.RetryConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: open: %w", models.ErrSourceRead, err)
	}
	return NewPostgresSourceFromDB(db, table, columns, retry), nil
}

// NewPostgresSourceFromDB wraps an existing handle.
func NewPostgresSourceFromDB(db *sql.DB, table string, columns config.Columns, retry *utils.RetryConfig) *PostgresSource {
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	return &PostgresSource{db: db, table: table, columns: columns, retry: retry}
}

// Load pings the database and reads every row ordered by id.
func (ps *PostgresSource) Load(ctx context.Context) (*models.Dataset, error) {
	err := ps.retry.Do(ctx, "postgres-ping", func(ctx context.Context) error {
		return ps.db.PingContext(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: %w", models.ErrSourceRead, err)
	}

	rows, err := ps.db.QueryContext(ctx, ps.query())
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: query %s: %w", models.ErrSourceRead, ps.table, err)
	}
	defer rows.Close()

	ds := &models.Dataset{
		Source: "postgres:" + ps.table,
		Headers: []string{
			ps.columns.Name, ps.columns.Rank, ps.columns.Score,
			ps.columns.Latitude, ps.columns.Longitude, ps.columns.Image,
		},
	}

	line := 1
	for rows.Next() {
		var vals [6]sql.NullString
		if err := rows.Scan(&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5]); err != nil {
			return nil, fmt.Errorf("%w: postgres: scan row: %w", models.ErrSourceRead, err)
		}
		line++
		row := &models.Row{Line: line, Cells: make(map[string]string, len(ds.Headers))}
		for i, h := range ds.Headers {
			row.Cells[h] = vals[i].String
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: postgres: %w", models.ErrSourceRead, err)
	}
	return ds, nil
}

func (ps *PostgresSource) query() string {
	return `SELECT name::text, rank::text, score::text, latitude::text, longitude::text, image_url::text
		FROM ` + pq.QuoteIdentifier(ps.table) + `
		ORDER BY id`
}

// Close releases the connection pool.
func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}

// DefaultRetry is the ping policy used for database sources.
func DefaultRetry(maxAttempts int, logger *utils.Logger) *utils.RetryConfig {
	return &utils.RetryConfig{
		MaxAttempts: maxAttempts,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
}
