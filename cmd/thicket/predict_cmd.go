package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thicketml/thicket"
	"github.com/thicketml/thicket/dataset/csv"
	"github.com/thicketml/thicket/tree"
	treejson "github.com/thicketml/thicket/tree/json"
)

type predictCmdConfig struct {
	*rootCmdConfig
	modelInput string
	forest     bool
	rowsInput  string
	output     string
	seed       int64
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify rows with a grown tree or ensemble",
		Long:  `Classify unlabeled rows of numeric data with a tree or bagging ensemble previously written in JSON format.`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.modelInput == "" {
				fmt.Fprintln(os.Stderr, "required model flag was not set")
				os.Exit(1)
			}
			ctx := context.Background()
			rows, _, err := csv.ReadRowsFromFilePath(config.rowsInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			predicted, err := classifyRows(ctx, config.modelInput, config.forest, config.seed, rows)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			f, err := openOutput(config.output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer f.Close()
			for _, label := range predicted {
				fmt.Fprintln(f, label)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file from which the tree or ensemble will be read and parsed as JSON (required)")
	cmd.Flags().BoolVar(&(config.forest), "forest", false, "parse the model file as a bagging ensemble instead of a single tree")
	cmd.Flags().StringVarP(&(config.rowsInput), "input", "i", "", "path to a CSV file with the unlabeled rows to classify (defaults to STDIN)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which predictions will be written, one label per line (defaults to STDOUT)")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random source breaking ensemble vote ties (defaults to a time-based seed)")
	return cmd
}

func classifyRows(ctx context.Context, modelPath string, forest bool, seed int64, rows [][]float64) ([]int, error) {
	rng := seededRand(seed)
	if forest {
		ensemble, err := loadForest(ctx, modelPath)
		if err != nil {
			return nil, err
		}
		return thicket.ClassifyBag(ctx, rows, ensemble, rng)
	}
	t, err := loadTree(ctx, modelPath)
	if err != nil {
		return nil, err
	}
	return t.ClassifyBatch(ctx, rows)
}

func loadTree(ctx context.Context, filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", filepath, err)
	}
	defer f.Close()
	t := &tree.Tree{NodeStore: tree.NewMemoryNodeStore()}
	err = treejson.ReadJSONTree(ctx, t, treejson.NewNodeEncodeDecoder(), f)
	if err != nil {
		return nil, fmt.Errorf("parsing tree in JSON from %s: %v", filepath, err)
	}
	return t, nil
}

func loadForest(ctx context.Context, filepath string) ([]*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading ensemble in JSON from %s: %v", filepath, err)
	}
	defer f.Close()
	ensemble, err := treejson.ReadJSONForest(ctx, tree.NewMemoryNodeStore, treejson.NewNodeEncodeDecoder(), f)
	if err != nil {
		return nil, fmt.Errorf("parsing ensemble in JSON from %s: %v", filepath, err)
	}
	return ensemble, nil
}
