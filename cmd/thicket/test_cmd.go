package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thicketml/thicket/metrics"
)

type testCmdConfig struct {
	*inputCmdConfig
	modelInput string
	forest     bool
	seed       int64
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{inputCmdConfig: &inputCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Evaluate a grown tree or ensemble against a labeled table",
		Long:  `Classify every row of a labeled table with a tree or bagging ensemble previously written in JSON format and report its accuracy, precision, recall and confusion matrix.`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.modelInput == "" {
				fmt.Fprintln(os.Stderr, "required model flag was not set")
				os.Exit(1)
			}
			ctx := context.Background()
			tbl, err := config.readTable(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Read table with %d rows and %d feature columns", tbl.Count(), tbl.Columns())
			predicted, err := classifyRows(ctx, config.modelInput, config.forest, config.seed, tbl.Rows())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			cm, err := metrics.Evaluate(tbl.Labels(), predicted)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			fmt.Printf("Accuracy:  %.4f\n", cm.Accuracy())
			fmt.Printf("Precision: %.4f\n", cm.Precision())
			fmt.Printf("Recall:    %.4f\n", cm.Recall())
			fmt.Println(cm)
		},
	}
	config.registerFlags(cmd)
	cmd.Flags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file from which the tree or ensemble will be read and parsed as JSON (required)")
	cmd.Flags().BoolVar(&(config.forest), "forest", false, "parse the model file as a bagging ensemble instead of a single tree")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random source breaking ensemble vote ties (defaults to a time-based seed)")
	return cmd
}
