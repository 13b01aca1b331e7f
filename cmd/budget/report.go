package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/engine"
	"github.com/Veraticus/budget/internal/export"
	"github.com/Veraticus/budget/internal/tui"
	"github.com/Veraticus/budget/internal/tui/themes"
	"github.com/spf13/cobra"
)

func (a *app) summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the budget dashboard for a month",
		Long: `Show balance, income, expenses, spending by category and budget
progress for one month.

The balance is cumulative: it includes every transaction up to the end of
the selected month.`,
		Args: cobra.NoArgs,
		RunE: a.runSummary,
	}
	cmd.Flags().StringP("month", "m", "", "month as YYYY-MM (default: current month)")
	return cmd
}

func (a *app) runSummary(cmd *cobra.Command, _ []string) error {
	monthFlag, _ := cmd.Flags().GetString("month")
	month, err := a.month(monthFlag)
	if err != nil {
		return err
	}

	store, closeDB, err := a.openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	cats := store.Categories()
	s := engine.Summarize(store.Transactions(), cats, month, a.cfg.Display.RecentCount)
	printf(cmd, "%s", a.renderer().Summary(s, cats))
	return nil
}

func (a *app) monthlyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show income and expenses for each month of a year",
		Args:  cobra.NoArgs,
		RunE:  a.runMonthly,
	}
	cmd.Flags().StringP("year", "y", "", "year as YYYY (default: current year)")
	return cmd
}

func (a *app) runMonthly(cmd *cobra.Command, _ []string) error {
	yearFlag, _ := cmd.Flags().GetString("year")
	year := a.now().In(time.Local).Year()
	if yearFlag != "" {
		y, err := strconv.Atoi(yearFlag)
		if err != nil || y < 1 {
			return common.NewUserError(fmt.Sprintf("invalid --year %q", yearFlag), err)
		}
		year = y
	}

	store, closeDB, err := a.openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	months := engine.MonthlyTotals(store.Transactions(), year, time.Local)
	printf(cmd, "%s", a.renderer().Monthly(year, months))
	return nil
}

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export a month to an Excel workbook",
		Long: `Write the month's transactions and its summary to an Excel workbook.

Example:
  budget export january.xlsx --month 2025-01`,
		Args: cobra.ExactArgs(1),
		RunE: a.runExport,
	}
	cmd.Flags().StringP("month", "m", "", "month as YYYY-MM (default: current month)")
	return cmd
}

func (a *app) runExport(cmd *cobra.Command, args []string) error {
	monthFlag, _ := cmd.Flags().GetString("month")
	month, err := a.month(monthFlag)
	if err != nil {
		return err
	}

	store, closeDB, err := a.openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	report := export.NewReport(store.Transactions(), store.Categories(), month)
	if err := export.WriteFile(args[0], report); err != nil {
		return err
	}

	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Exported %d transactions for %s to %s",
		len(report.Summary.Period), month.Format("January 2006"), args[0])))
	return nil
}

func (a *app) uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive dashboard.

Keys: ←/→ change month, t jumps to today, tab switches view,
d deletes the selected transaction, q quits.`,
		Args: cobra.NoArgs,
		RunE: a.runUI,
	}
	cmd.Flags().Bool("no-alt-screen", false, "draw inline instead of using the alternate screen")
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin)")
	return cmd
}

func (a *app) runUI(cmd *cobra.Command, _ []string) error {
	noAlt, _ := cmd.Flags().GetBool("no-alt-screen")
	theme, _ := cmd.Flags().GetString("theme")

	store, closeDB, err := a.openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB()

	return tui.Run(cmd.Context(), store,
		tui.WithClock(a.now),
		tui.WithTheme(themes.ByName(theme)),
		tui.WithDisplay(a.cfg.Display.Currency, a.cfg.Display.RecentCount),
		tui.WithAltScreen(!noAlt))
}
