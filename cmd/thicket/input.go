package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thicketml/thicket"
	"github.com/thicketml/thicket/dataset"
	"github.com/thicketml/thicket/dataset/csv"
	"github.com/thicketml/thicket/dataset/mongotable"
	"github.com/thicketml/thicket/dataset/sqltable"
	"github.com/thicketml/thicket/dataset/sqltable/pgadapter"
	"github.com/thicketml/thicket/dataset/sqltable/sqlite3adapter"
	"github.com/thicketml/thicket/params"
)

// inputCmdConfig holds the flags shared by every command that reads
// a labeled training or testing table: a CSV path (or STDIN), an
// SQLite3 file, a PostgreSQL URL or a MongoDB URL.
type inputCmdConfig struct {
	*rootCmdConfig
	dataInput  string
	label      string
	table      string
	columns    string
	maxDBConns int
}

func (icc *inputCmdConfig) registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(icc.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://) or MongoDB (mongodb://) URL with data to read (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(icc.label), "label", "l", "", "name of the label column (defaults to the last CSV column; required for SQL and MongoDB inputs)")
	cmd.PersistentFlags().StringVar(&(icc.table), "table", "", "name of the SQL table or MongoDB collection to read (required for SQL and MongoDB inputs)")
	cmd.PersistentFlags().StringVar(&(icc.columns), "columns", "", "comma-separated names of the feature columns to read (required for SQL and MongoDB inputs)")
	cmd.PersistentFlags().IntVar(&(icc.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

func (icc *inputCmdConfig) readTable(ctx context.Context) (*dataset.Table, error) {
	switch {
	case strings.HasPrefix(icc.dataInput, "postgresql://"):
		return icc.sqlTable(ctx, "PostgreSQL", pgadapter.Open)
	case strings.HasPrefix(icc.dataInput, "mongodb://"):
		return icc.mongoTable()
	case strings.HasSuffix(icc.dataInput, ".db"):
		return icc.sqlTable(ctx, "SQLite3", sqlite3adapter.Open)
	}
	if icc.dataInput == "" {
		icc.Logf("Reading table from STDIN...")
	} else {
		icc.Logf("Opening %s to read table...", icc.dataInput)
	}
	tbl, _, err := csv.ReadTableFromFilePath(icc.dataInput, icc.label)
	return tbl, err
}

func (icc *inputCmdConfig) sqlTable(ctx context.Context, kind string, open func(string, int) (*sql.DB, error)) (*dataset.Table, error) {
	columns, err := icc.sqlColumns()
	if err != nil {
		return nil, err
	}
	icc.Logf("Opening %s database at %s to read table %s...", kind, icc.dataInput, icc.table)
	db, err := open(icc.dataInput, icc.maxDBConns)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	features, labels, err := sqltable.Read(ctx, db, icc.table, columns, icc.label)
	if err != nil {
		return nil, err
	}
	return dataset.New(features, labels)
}

func (icc *inputCmdConfig) mongoTable() (*dataset.Table, error) {
	columns, err := icc.sqlColumns()
	if err != nil {
		return nil, err
	}
	icc.Logf("Connecting to MongoDB at %s to read collection %s...", icc.dataInput, icc.table)
	return mongotable.Open(icc.dataInput, icc.table, columns, icc.label)
}

func (icc *inputCmdConfig) sqlColumns() ([]string, error) {
	if icc.table == "" {
		return nil, fmt.Errorf("required table flag was not set for a database input")
	}
	if icc.label == "" {
		return nil, fmt.Errorf("required label flag was not set for a database input")
	}
	if icc.columns == "" {
		return nil, fmt.Errorf("required columns flag was not set for a database input")
	}
	return strings.Split(icc.columns, ","), nil
}

// growFlags holds the growth parameter flags shared by the grow and
// bag commands, resolvable against a YAML growth profile.
type growFlags struct {
	profileInput string
	nmin         int
	minleaf      int
	nfeat        int
	seed         int64
}

func (gf *growFlags) registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(gf.profileInput), "params", "p", "", "path to a YML file with growth parameters; explicitly set flags take precedence over it")
	cmd.PersistentFlags().IntVar(&(gf.nmin), "nmin", 0, "minimum number of rows a node needs to be considered for splitting (defaults to 2)")
	cmd.PersistentFlags().IntVar(&(gf.minleaf), "minleaf", 0, "minimum row count floor for leaf acceptability (defaults to 2)")
	cmd.PersistentFlags().IntVar(&(gf.nfeat), "nfeat", 0, "number of feature columns sampled as split candidates at each node (defaults to all columns)")
	cmd.PersistentFlags().Int64Var(&(gf.seed), "seed", 0, "seed for the random source, for reproducible growth (defaults to a time-based seed)")
}

// resolve merges the growth profile file (when given) with the
// explicitly set flags and returns the growth parameters, the
// random source and the profile for ensemble-level settings.
func (gf *growFlags) resolve() (thicket.Params, *rand.Rand, *params.Profile, error) {
	profile := &params.Profile{}
	if gf.profileInput != "" {
		var err error
		profile, err = params.ReadFromFile(gf.profileInput)
		if err != nil {
			return thicket.Params{}, nil, nil, err
		}
	}
	if gf.nmin != 0 {
		profile.NMin = gf.nmin
	}
	if gf.minleaf != 0 {
		profile.MinLeaf = gf.minleaf
	}
	if gf.nfeat != 0 {
		profile.NFeat = gf.nfeat
	}
	if gf.seed != 0 {
		profile.Seed = gf.seed
	}
	p := thicket.DefaultParams()
	if profile.NMin != 0 {
		p.NMin = profile.NMin
	}
	if profile.MinLeaf != 0 {
		p.MinLeaf = profile.MinLeaf
	}
	p.NFeat = profile.NFeat
	var rng *rand.Rand
	if profile.Seed != 0 {
		rng = rand.New(rand.NewSource(profile.Seed))
	}
	return p, rng, profile, nil
}

// seededRand returns a random source for the given seed, or nil for
// a zero seed so that callees fall back to a time-based one.
func seededRand(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

func openOutput(outputPath string) (*os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil
	}
	return os.Create(outputPath)
}
