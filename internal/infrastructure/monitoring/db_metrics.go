package monitoring

import (
	"context"
	"database/sql"
	"time"
)

type DBMetricsCollector struct {
	db *sql.DB
}

func NewDBMetricsCollector(db *sql.DB) *DBMetricsCollector {
	return &DBMetricsCollector{
		db: db,
	}
}

// Run samples pool statistics until ctx is cancelled.
func (c *DBMetricsCollector) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.collectMetrics()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.collectMetrics()
		}
	}
}

func (c *DBMetricsCollector) collectMetrics() {
	stats := c.db.Stats()

	DBConnectionsActive.Set(float64(stats.InUse))
	DBConnectionsIdle.Set(float64(stats.Idle))
}

func InstrumentExec(ctx context.Context, db *sql.DB, queryType, table, query string, args ...interface{}) (sql.Result, error) {
	end := TimeDBQuery(queryType, table)
	defer end()

	return db.ExecContext(ctx, query, args...)
}

func InstrumentQueryRow(ctx context.Context, db *sql.DB, queryType, table, query string, args ...interface{}) *sql.Row {
	end := TimeDBQuery(queryType, table)
	defer end()

	return db.QueryRowContext(ctx, query, args...)
}
