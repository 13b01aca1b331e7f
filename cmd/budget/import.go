package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/importer"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/ofx"
	"github.com/spf13/cobra"
)

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from files",
		Long:  `Import transactions from a CSV export or from OFX/QFX bank statements.`,
	}

	cmd.AddCommand(a.importCSVCmd())
	cmd.AddCommand(a.importOFXCmd())

	return cmd
}

func (a *app) importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import a CSV file",
		Long: `Import transactions from a CSV file with the header
Date,Description,Category,Amount,Type

Categories are matched by name; unknown names go to the default import
category. Rows with a bad date, amount or type are skipped.

Example:
  budget import csv ~/Downloads/budget-2025-01.csv`,
		Args: cobra.ExactArgs(1),
		RunE: a.runImportCSV,
	}
	cmd.Flags().BoolP("dry-run", "n", false, "parse and report without saving")
	return cmd
}

func (a *app) runImportCSV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close csv file", "error", closeErr)
		}
	}()

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	imp := importer.NewCSVImporter(store.Categories(),
		importer.WithFallbackCategory(a.cfg.Import.DefaultCategory))

	if dryRun {
		res, parseErr := imp.Parse(f)
		if parseErr != nil {
			return parseErr
		}
		printLine(cmd, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported, %d rows skipped",
			res.Imported(), res.Skipped)))
		return nil
	}

	res, _, err := imp.Import(ctx, store, f)
	if errors.Is(err, common.ErrNoTransactions) {
		return common.NewUserError(fmt.Sprintf("nothing imported from %s (%d rows skipped)", args[0], res.Skipped), err)
	}
	if err != nil {
		return err
	}

	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", res.Imported())))
	if res.Skipped > 0 {
		printLine(cmd, cli.FormatWarning(fmt.Sprintf("Skipped %d rows that could not be read", res.Skipped)))
	}
	return nil
}

func (a *app) importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx <files...>",
		Short: "Import OFX/QFX statements",
		Long: `Import transactions from OFX or QFX files exported from your bank.

Debits become expenses in the default import category and credits become
income. Transactions already in the ledger, or repeated across files, are
skipped.

Examples:
  budget import ofx ~/Downloads/chase_jan_2025.qfx
  budget import ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runImportOFX,
	}
	cmd.Flags().BoolP("dry-run", "n", false, "parse and report without saving")
	return cmd
}

// expandFiles resolves glob patterns; plain paths that exist are kept as is.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}
	return files, nil
}

func inputOf(t model.Transaction) model.TransactionInput {
	return model.TransactionInput{
		Date:        t.Date,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
	}
}

func (a *app) runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := expandFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return common.NewUserError("no files found to import", nil)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	handler := cli.NewInterruptHandler(cmd.OutOrStdout())
	ctx = handler.HandleInterrupts(ctx, "Import")

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	seen := make(map[string]bool)
	for _, t := range store.Transactions() {
		seen[inputOf(t).Hash()] = true
	}

	parser := ofx.NewParser(ofx.WithExpenseCategory(a.cfg.Import.DefaultCategory))
	progress := cli.NewProgress(cmd.ErrOrStderr(), len(files), "Importing")

	var pending []model.TransactionInput
	duplicates, failed := 0, 0
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		fresh, dupes, fileErr := readOFX(ctx, parser, path, seen)
		progress.Step()
		if fileErr != nil {
			failed++
			common.LogError(fileErr, "Failed to import file", common.Fields{"file": path})
			continue
		}
		duplicates += dupes
		pending = append(pending, fresh...)
	}
	progress.Done()

	// One batch keeps ids unique; files read before an interrupt are still saved.
	if !dryRun && len(pending) > 0 {
		if _, err := store.AddTransactions(context.WithoutCancel(ctx), pending); err != nil {
			return fmt.Errorf("failed to save imported transactions: %w", err)
		}
	}
	imported := len(pending)
	common.LogInfo("ofx import complete", common.Fields{
		"files":      len(files),
		"failed":     failed,
		"imported":   imported,
		"duplicates": duplicates,
		"dry_run":    dryRun,
	})

	verb := "Imported"
	if dryRun {
		verb = "Dry run: would import"
	}
	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("%s %d transactions from %d files", verb, imported, len(files)-failed)))
	if duplicates > 0 {
		printLine(cmd, cli.FormatInfo(fmt.Sprintf("Skipped %d duplicates", duplicates)))
	}
	if failed > 0 {
		printLine(cmd, cli.FormatWarning(fmt.Sprintf("%d files could not be read", failed)))
	}
	if handler.WasInterrupted() {
		return fmt.Errorf("import interrupted: %w", ctx.Err())
	}
	return nil
}

// readOFX parses one file and returns the transactions not seen before.
// seen is updated with everything returned.
func readOFX(ctx context.Context, parser *ofx.Parser, path string, seen map[string]bool) ([]model.TransactionInput, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close ofx file", "file", path, "error", closeErr)
		}
	}()

	inputs, err := parser.ParseFile(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	var fresh []model.TransactionInput
	dupes := 0
	for _, in := range inputs {
		h := in.Hash()
		if seen[h] {
			dupes++
			continue
		}
		seen[h] = true
		fresh = append(fresh, in)
	}

	slog.Info("Processed file",
		"file", filepath.Base(path),
		"transactions_found", len(inputs),
		"added", len(fresh),
		"duplicates", dupes)
	return fresh, dupes, nil
}
