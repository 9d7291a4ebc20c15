/*
Package pgadapter opens PostgreSQL databases for the sqltable
package.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

/*
Open takes a PostgreSQL connection URL and a limit for concurrently
open connections (0 meaning no limit) and returns an open database
handle for it.
*/
func Open(url string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening PostgreSQL database at %s: %v", url, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return db, nil
}
