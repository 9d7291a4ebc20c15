/*
Package sqlite3adapter opens SQLite3 database files for the
sqltable package.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"

	// Import of SQLite3 driver
	_ "github.com/mattn/go-sqlite3"
)

/*
Open takes the path to an SQLite3 database file and a limit for
concurrently open connections (0 meaning no limit) and returns an
open database handle for it.
*/
func Open(path string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite3 database at %s: %v", path, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return db, nil
}
