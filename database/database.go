package database

import (
	"context"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
)

// db holds the optional connection pool backing the ephemeris cache. The
// scoring core itself owns no persistent state; when no DATABASE_URL is
// configured the pool stays nil and the adapter runs pure-compute.
var db *pgxpool.Pool

// Connect sets up the database connection pool and prepares the cache schema.
func Connect(databaseURL string) {
	var err error
	db, err = pgxpool.Connect(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatalf("Database ping failed: %v\n", err)
	}

	_, err = db.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS ephemeris_cache (
			jd         DOUBLE PRECISION NOT NULL,
			planet     SMALLINT         NOT NULL,
			longitude  DOUBLE PRECISION NOT NULL,
			retrograde BOOLEAN          NOT NULL,
			PRIMARY KEY (jd, planet)
		)
	`)
	if err != nil {
		log.Fatalf("Failed to prepare ephemeris cache schema: %v\n", err)
	}

	log.Println("Successfully connected to the database")
}

// GetDB returns the pool, or nil when the cache is not configured.
func GetDB() *pgxpool.Pool {
	return db
}

// Close closes the database connection pool.
func Close() {
	if db != nil {
		db.Close()
		log.Println("Database connection pool closed")
	}
}
