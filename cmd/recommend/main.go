// Package main provides the recommend CLI, which ranks a recipe catalog
// against a list of ingredients from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-recommender/backend/internal/catalog"
	"github.com/pageza/recipe-recommender/backend/internal/ranker"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

const emptyQueryWarning = "Please enter at least one ingredient."

var errEmptyQuery = errors.New(emptyQueryWarning)

var (
	catalogPath string
	topN        int
	jsonOutput  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		if errors.Is(err, errEmptyQuery) {
			os.Exit(ExitUsage)
		}
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recommend [flags] <ingredients>",
	Short: "Recommend recipes for the ingredients you have",
	Long: `recommend ranks every recipe in a CSV catalog by how closely its
ingredient list matches yours and prints the best matches.

A lone first word "token" runs the token subcommand; quote the ingredient
list to rank it instead.

Example:
  recommend --top 3 "rice, onion, tomato"`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRecommend,
}

func init() {
	rootCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "recipes.csv", "recipe catalog CSV")
	rootCmd.Flags().IntVarP(&topN, "top", "n", ranker.DefaultTopN, "number of recipes to show")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return errEmptyQuery
	}

	src := &catalog.FileSource{Path: catalogPath}
	records, err := src.Load(context.Background())
	if err != nil {
		return err
	}

	results, err := ranker.Rank(query, records, topN)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, query, results)
	}
	writeResults(out, results)
	return nil
}

func writeJSON(w io.Writer, query string, results []types.ScoredResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(types.RecommendationResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	})
}
