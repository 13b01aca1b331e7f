// Package importer turns bulk text exports into transaction inputs.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/engine"
	"github.com/Veraticus/budget/internal/model"
)

// CSV column order. The format has no quoting, so a comma inside a field
// shifts every later column.
const (
	colDate = iota
	colDescription
	colCategory
	colAmount
	colType
)

// DateLayouts are tried in order when reading the date column.
var DateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// TransactionAdder stores a parsed batch.
type TransactionAdder interface {
	AddTransactions(ctx context.Context, batch []model.TransactionInput) ([]model.Transaction, error)
}

// Result reports the outcome of reading one file.
type Result struct {
	Inputs  []model.TransactionInput
	Skipped int
}

// Imported is the number of rows that produced a transaction.
func (r Result) Imported() int { return len(r.Inputs) }

// CSVImporter reads "date,description,category,amount,type" rows.
type CSVImporter struct {
	categories []model.Category
	fallback   string
	location   *time.Location
}

// CSVOption configures a CSVImporter.
type CSVOption func(*CSVImporter)

// WithFallbackCategory sets the category id used when a row's category name
// matches nothing.
func WithFallbackCategory(id string) CSVOption {
	return func(c *CSVImporter) { c.fallback = id }
}

// WithLocation sets the zone dates are read in.
func WithLocation(loc *time.Location) CSVOption {
	return func(c *CSVImporter) { c.location = loc }
}

// NewCSVImporter creates an importer that resolves category names against cats.
func NewCSVImporter(cats []model.Category, opts ...CSVOption) *CSVImporter {
	c := &CSVImporter{
		categories: cats,
		fallback:   model.OtherCategoryID,
		location:   time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse reads every data row of r. The first line is a header and is never
// parsed. Blank lines are ignored; malformed rows are counted as skipped.
func (c *CSVImporter) Parse(r io.Reader) (Result, error) {
	var res Result

	br := bufio.NewReader(r)
	line := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return res, fmt.Errorf("failed to read csv: %w", readErr)
		}
		if raw == "" && readErr != nil {
			break
		}

		line++
		text := strings.TrimSpace(raw)
		if line > 1 && text != "" {
			in, reason := c.parseRow(text)
			if reason != "" {
				res.Skipped++
				slog.Debug("skipping csv row", "line", line, "reason", reason)
			} else {
				res.Inputs = append(res.Inputs, in)
			}
		}
		if readErr != nil {
			break
		}
	}
	return res, nil
}

func (c *CSVImporter) parseRow(text string) (model.TransactionInput, string) {
	fields := strings.Split(text, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	rawDate, desc, rawAmount, rawType := field(colDate), field(colDescription), field(colAmount), field(colType)
	if rawDate == "" || desc == "" || rawAmount == "" || rawType == "" {
		return model.TransactionInput{}, "missing required field"
	}

	date, err := c.parseDate(rawDate)
	if err != nil {
		return model.TransactionInput{}, "unreadable date"
	}
	typ, ok := model.ParseTransactionType(rawType)
	if !ok {
		return model.TransactionInput{}, "unknown type"
	}

	return model.TransactionInput{
		Date:        date,
		Type:        typ,
		Category:    c.categoryID(field(colCategory)),
		Description: desc,
		Amount:      model.ParseAmount(rawAmount),
	}, ""
}

func (c *CSVImporter) parseDate(s string) (time.Time, error) {
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, c.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func (c *CSVImporter) categoryID(name string) string {
	if name != "" {
		if cat, ok := engine.CategoryByName(c.categories, name); ok {
			return cat.ID
		}
	}
	return c.fallback
}

// Import parses r and adds the good rows to store as one batch. When no row
// is usable it returns common.ErrNoTransactions and stores nothing.
func (c *CSVImporter) Import(ctx context.Context, store TransactionAdder, r io.Reader) (Result, []model.Transaction, error) {
	res, err := c.Parse(r)
	if err != nil {
		return res, nil, err
	}
	if res.Imported() == 0 {
		return res, nil, common.ErrNoTransactions
	}

	added, err := store.AddTransactions(ctx, res.Inputs)
	if err != nil {
		return res, added, fmt.Errorf("failed to store imported transactions: %w", err)
	}

	slog.Info("csv import complete", "imported", res.Imported(), "skipped", res.Skipped)
	return res, added, nil
}
