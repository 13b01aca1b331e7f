package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/engine"
	"github.com/Veraticus/budget/internal/ledger"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// openDatabase opens the configured database and brings its schema up to
// date. The returned function closes it.
func (a *app) openDatabase(ctx context.Context) (*storage.SQLiteStorage, func(), error) {
	db, err := storage.NewSQLiteStorage(a.cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	closeDB := func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Warn("failed to close database", "error", closeErr)
		}
	}

	if err := db.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("database opened", "path", db.Path())
	return db, closeDB, nil
}

// openLedger opens the configured database and loads the ledger from it.
// The returned function closes the database.
func (a *app) openLedger(ctx context.Context) (*ledger.Store, func(), error) {
	db, closeDB, err := a.openDatabase(ctx)
	if err != nil {
		return nil, nil, err
	}

	store, err := ledger.Open(ctx, db, ledger.WithClock(a.now))
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}

func (a *app) renderer() cli.Renderer {
	return cli.NewRenderer(a.cfg.Display.Currency)
}

// month resolves a --month flag; empty means the current month.
func (a *app) month(s string) (time.Time, error) {
	m, err := engine.ParseMonth(s, a.now(), time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError("invalid --month", err)
	}
	return m, nil
}

func parseType(s string) (model.TransactionType, error) {
	t, ok := model.ParseTransactionType(s)
	if !ok {
		return "", common.NewUserError(fmt.Sprintf("invalid type %q (want income or expense)", s), nil)
	}
	return t, nil
}

// parseMoney accepts a plain decimal such as "12.50". Unlike imports, the
// command line rejects input it cannot read.
func parseMoney(flag, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("invalid --%s %q", flag, s), err)
	}
	if d.IsNegative() {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("--%s must not be negative", flag), nil)
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(cli.DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("invalid --date %q (want YYYY-MM-DD)", s), err)
	}
	return d, nil
}

// defaultCategory mirrors the entry form: income goes to the income
// category, everything else starts as food.
func defaultCategory(t model.TransactionType) string {
	if t == model.TypeIncome {
		return model.IncomeCategoryID
	}
	return model.FoodCategoryID
}

func printf(cmd *cobra.Command, format string, args ...any) {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		slog.Warn("failed to write output", "error", err)
	}
}

func printLine(cmd *cobra.Command, s string) {
	printf(cmd, "%s\n", s)
}
