package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// Column names recognised in a catalog CSV header. Matching is
// case-insensitive; unknown columns are ignored.
const (
	ColumnName        = "name"
	ColumnCuisine     = "cuisine"
	ColumnCookingTime = "cooking_time"
	ColumnVegNonVeg   = "veg_nonveg"
	ColumnIngredients = "ingredients"
	ColumnSteps       = "steps"
)

var validate = validator.New()

// RowError describes a CSV row that was skipped.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// LoadReport summarises one CSV parse.
type LoadReport struct {
	Rows     int        `json:"rows"`
	Accepted int        `json:"accepted"`
	Skipped  []RowError `json:"skipped,omitempty"`
}

// ParseCSV reads a recipe table with a header row. Rows that fail validation
// are skipped and listed in the report; accepted rows get consecutive
// positions starting at zero.
func ParseCSV(r io.Reader) ([]types.RecipeRecord, LoadReport, error) {
	var report LoadReport

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, report, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, report, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := columns[h]; !dup {
			columns[h] = i
		}
	}
	if _, ok := columns[ColumnName]; !ok {
		return nil, report, fmt.Errorf("%w: %q", ErrMissingColumn, ColumnName)
	}

	field := func(row []string, col string) string {
		i, ok := columns[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []types.RecipeRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		report.Rows++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.skip(parseErr.Line, parseErr.Err.Error())
				continue
			}
			return nil, report, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec := types.RecipeRecord{
			Position:    len(records),
			Name:        field(row, ColumnName),
			Cuisine:     field(row, ColumnCuisine),
			VegNonVeg:   field(row, ColumnVegNonVeg),
			Ingredients: field(row, ColumnIngredients),
			Steps:       field(row, ColumnSteps),
		}
		if raw := field(row, ColumnCookingTime); raw != "" {
			minutes, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				report.skip(line, fmt.Sprintf("cooking_time %q is not a number", raw))
				continue
			}
			rec.CookingTime = minutes
		}
		if err := validate.Struct(rec); err != nil {
			report.skip(line, err.Error())
			continue
		}
		records = append(records, rec)
	}

	report.Accepted = len(records)
	return records, report, nil
}

func (r *LoadReport) skip(line int, reason string) {
	r.Skipped = append(r.Skipped, RowError{Line: line, Reason: reason})
	logger.Warnw("skipping catalog row", "line", line, "reason", reason)
}
