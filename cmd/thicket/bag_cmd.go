package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thicketml/thicket"
	treejson "github.com/thicketml/thicket/tree/json"
)

type bagCmdConfig struct {
	*inputCmdConfig
	growFlags
	output  string
	trees   int
	workers int
}

func bagCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &bagCmdConfig{inputCmdConfig: &inputCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "bag",
		Short: "Grow a bagging ensemble from a table of data",
		Long:  `Grow a bagging ensemble of binary classification trees, each trained on its own bootstrap resample of a labeled table of numeric data.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			p, rng, profile, err := config.resolve()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.trees != 0 {
				profile.Trees = config.trees
			}
			if profile.Trees == 0 {
				profile.Trees = 10
			}
			if config.workers != 0 {
				profile.Workers = config.workers
			}
			trainingTable, err := config.readTable(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Growing an ensemble of %d trees from a table with %d rows and %d columns...", profile.Trees, trainingTable.Count(), trainingTable.Columns())
			ensemble, err := thicket.GrowBag(ctx, trainingTable, p, profile.Trees, rng, profile.Workers)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the ensemble: %v\n", err)
				os.Exit(3)
			}
			config.Logf("Done")
			f, err := openOutput(config.output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer f.Close()
			err = treejson.WriteJSONForest(ctx, ensemble, treejson.NewNodeEncodeDecoder(), f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing the ensemble: %v\n", err)
				os.Exit(5)
			}
		},
	}
	config.inputCmdConfig.registerFlags(cmd)
	config.growFlags.registerFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown ensemble will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().IntVarP(&(config.trees), "trees", "m", 0, "number of trees to grow (defaults to 10)")
	cmd.PersistentFlags().IntVar(&(config.workers), "workers", 0, "limit to trees grown concurrently (defaults to 0: one goroutine per tree)")
	return cmd
}
