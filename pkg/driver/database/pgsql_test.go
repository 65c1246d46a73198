package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lukengu-deimos/background-job/pkg/config"
	"github.com/lukengu-deimos/background-job/pkg/queue"
)

// lib/pq only understands $N ordinals, so a pgsql connection must never see
// MySQL-style ? placeholders.
func TestDriver_EnqueuePgSQLConnection(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	drv := New(config.DatabaseConfig{Connection: "pgsql", Table: "jobs"}, db)

	env := queue.NewEnvelope(`App\Jobs\Notify`, "handle", []any{"a"})
	env.SetPriority(1)

	mock.ExpectExec(`INSERT INTO jobs \(queue, payload, priority, attempts, available_at, created_at\) VALUES \(\$1, \$2, \$3, 0, \$4, \$5\)`).
		WithArgs("default", sqlmock.AnyArg(), 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := drv.Enqueue(context.Background(), "default", env); err != nil {
		t.Errorf("error was not expected while enqueueing job: %s", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestDriver_EnqueuePostgresAlias(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	drv := New(config.DatabaseConfig{Connection: "postgres"}, db)

	env := queue.NewEnvelope(`App\Jobs\Notify`, "handle", nil)

	mock.ExpectExec(`VALUES \(\$1, \$2, \$3, 0, \$4, \$5\)`).
		WithArgs("default", sqlmock.AnyArg(), 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := drv.Enqueue(context.Background(), "default", env); err != nil {
		t.Errorf("error was not expected while enqueueing job: %s", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestDriver_EnqueueMySQLKeepsQuestionMarks(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	drv := New(config.DatabaseConfig{Connection: "mysql", Table: "jobs"}, db)

	env := queue.NewEnvelope(`App\Jobs\Notify`, "handle", nil)

	mock.ExpectExec(`INSERT INTO jobs \(queue, payload, priority, attempts, available_at, created_at\) VALUES \(\?, \?, \?, 0, \?, \?\)`).
		WithArgs("default", sqlmock.AnyArg(), 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := drv.Enqueue(context.Background(), "default", env); err != nil {
		t.Errorf("error was not expected while enqueueing job: %s", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
