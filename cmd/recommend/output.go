package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pageza/recipe-recommender/backend/internal/types"
)

const barWidth = 20

func writeResults(w io.Writer, results []types.ScoredResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No recipes in the catalog.")
		return
	}
	fmt.Fprintln(w, "Top Recipe Recommendations")
	for _, r := range results {
		rec := r.Record
		fmt.Fprintln(w)
		fmt.Fprintf(w, "🍴 %s\n", rec.Name)
		fmt.Fprintf(w, "Cuisine: %s | Time: %s mins | Type: %s\n", rec.Cuisine, formatMinutes(rec.CookingTime), rec.VegNonVeg)
		fmt.Fprintf(w, "Ingredients: %s\n", rec.Ingredients)
		fmt.Fprintf(w, "Steps: %s\n", rec.Steps)
		fmt.Fprintln(w, progressBar(r.Score))
	}
}

// progressBar renders min(1, score) as a fixed-width bar.
func progressBar(score float64) string {
	fill := math.Max(0, math.Min(1, score))
	filled := int(math.Round(fill * barWidth))
	return fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", barWidth-filled),
		fill*100,
	)
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
