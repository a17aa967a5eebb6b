package db

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
)

const testPostgresqlURLEnv = "TEST_POSTGRESQL_URL"

// IsTestDBConfigured reports whether integration tests against PostgreSQL
// can run.
func IsTestDBConfigured() bool {
	return os.Getenv(testPostgresqlURLEnv) != ""
}

func CreateTestPool() *pgxpool.Pool {
	connString := os.Getenv(testPostgresqlURLEnv)
	if connString == "" {
		panic(testPostgresqlURLEnv + " must be set.")
	}
	if err := ApplyMigrations(connString); err != nil {
		panic(err)
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		panic(fmt.Sprintf("Could not connect to the database: %v.", err))
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), `TRUNCATE "user"`)
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
