package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/thicketml/thicket"
	"github.com/thicketml/thicket/dataset"
	queuejson "github.com/thicketml/thicket/queue/json"
	"github.com/thicketml/thicket/queue/redisq"
	"github.com/thicketml/thicket/tree"
	treejson "github.com/thicketml/thicket/tree/json"
	"github.com/thicketml/thicket/tree/redisstore"
	redis "gopkg.in/redis.v5"
)

type growCmdConfig struct {
	*inputCmdConfig
	growFlags
	output      string
	redisAddr   string
	redisPrefix string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{inputCmdConfig: &inputCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a table of data",
		Long:  `Grow a binary classification tree from a labeled table of numeric data.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			p, rng, _, err := config.resolve()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			trainingTable, err := config.readTable(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Growing tree from a table with %d rows and %d columns...", trainingTable.Count(), trainingTable.Columns())
			t, err := config.grow(ctx, trainingTable, p, rng)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(3)
			}
			config.Logf("Done")
			f, err := openOutput(config.output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer f.Close()
			err = treejson.WriteJSONTree(ctx, t, treejson.NewNodeEncodeDecoder(), f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing the tree: %v\n", err)
				os.Exit(5)
			}
		},
	}
	config.inputCmdConfig.registerFlags(cmd)
	config.growFlags.registerFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.redisAddr), "redis", "", "host:port of a redis server to back the node store and work queue, so that growers in other processes can share the work (defaults to growing in memory)")
	cmd.PersistentFlags().StringVar(&(config.redisPrefix), "redis-prefix", "thicket", "prefix for the redis keys used when --redis is set")
	return cmd
}

// grow runs the growth in memory, or against a redis-backed node
// store and work queue when a redis address was given.
func (gcc *growCmdConfig) grow(ctx context.Context, tbl *dataset.Table, p thicket.Params, rng *rand.Rand) (*tree.Tree, error) {
	if gcc.redisAddr == "" {
		return thicket.Grow(ctx, tbl, p, rng)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	gcc.Logf("Growing against redis at %s with key prefix %q...", gcc.redisAddr, gcc.redisPrefix)
	rc := redis.NewClient(&redis.Options{Addr: gcc.redisAddr})
	defer rc.Close()
	ns := redisstore.New(rc, fmt.Sprintf("%s:nodes", gcc.redisPrefix), treejson.NewNodeEncodeDecoder())
	q := redisq.New(gcc.redisPrefix, rc, 5*time.Minute, 10*time.Second, queuejson.New(ns))
	defer q.Stop(ctx)
	t, err := thicket.Seed(ctx, tbl, p, q, ns)
	if err != nil {
		return nil, err
	}
	if err = thicket.Work(ctx, t, q, rng, time.Second); err != nil {
		return nil, err
	}
	return t, nil
}
