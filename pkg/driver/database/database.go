package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lukengu-deimos/background-job/pkg/config"
	"github.com/lukengu-deimos/background-job/pkg/queue"
)

// Driver implements queue.Driver for SQL databases. Jobs become rows in the
// jobs table with available_at shifted by the delay and the priority stored
// alongside, for the table's consumers to order by.
type Driver struct {
	db    *sql.DB
	table string
	pgsql bool
}

// New creates a database driver over an open connection.
func New(cfg config.DatabaseConfig, db *sql.DB) *Driver {
	tableName := cfg.Table
	if tableName == "" {
		tableName = "jobs"
	}
	return &Driver{
		db:    db,
		table: tableName,
		pgsql: cfg.Connection == "pgsql" || cfg.Connection == "postgres",
	}
}

// Enqueue inserts a job row into the configured table.
func (d *Driver) Enqueue(ctx context.Context, queueName string, job queue.Queueable) error {
	body, err := job.Body()
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (queue, payload, priority, attempts, available_at, created_at)
		VALUES (?, ?, ?, 0, ?, ?)`, d.table)
	if d.pgsql {
		query = rebind(query)
	}

	now := time.Now().Unix()
	availableAt := now + int64(job.Delay())
	_, err = d.db.ExecContext(ctx, query, queueName, body, job.Priority(), availableAt, now)
	return err
}

// rebind rewrites ? placeholders into the $N ordinals lib/pq expects.
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
