package main

import (
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/engine"
	"github.com/Veraticus/budget/internal/model"
	"github.com/spf13/cobra"
)

func (a *app) txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Manage transactions",
		Long:    `Add, list, update and delete income and expense transactions.`,
	}

	cmd.AddCommand(a.txAddCmd())
	cmd.AddCommand(a.txListCmd())
	cmd.AddCommand(a.txUpdateCmd())
	cmd.AddCommand(a.txDeleteCmd())

	return cmd
}

func (a *app) txAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a new income or expense.

Examples:
  budget tx add --amount 12.50 --description "Lunch"
  budget tx add --type income --amount 3000 --description "Salary" --date 2025-01-31`,
		Args: cobra.NoArgs,
		RunE: a.runTxAdd,
	}

	cmd.Flags().StringP("type", "t", string(model.TypeExpense), "income or expense")
	cmd.Flags().StringP("amount", "a", "", "amount, e.g. 12.50 (required)")
	cmd.Flags().StringP("category", "c", "", "category id (default: income for income, food for expenses)")
	cmd.Flags().StringP("description", "d", "", "what it was for")
	cmd.Flags().String("date", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (a *app) runTxAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	typeFlag, _ := cmd.Flags().GetString("type")
	amountFlag, _ := cmd.Flags().GetString("amount")
	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")
	dateFlag, _ := cmd.Flags().GetString("date")

	typ, err := parseType(typeFlag)
	if err != nil {
		return err
	}
	amount, err := parseMoney("amount", amountFlag)
	if err != nil {
		return err
	}

	in := model.TransactionInput{
		Type:        typ,
		Amount:      amount,
		Category:    category,
		Description: description,
	}
	if in.Category == "" {
		in.Category = defaultCategory(typ)
	}
	if dateFlag != "" {
		if in.Date, err = parseDate(dateFlag); err != nil {
			return err
		}
	}

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if _, ok := store.Category(in.Category); !ok {
		printLine(cmd, cli.FormatWarning(fmt.Sprintf("Category %q does not exist; the transaction will show as Unknown", in.Category)))
	}

	txn, err := store.AddTransaction(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}

	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Added %s %s (%s, %s) as %s",
		txn.Type,
		a.renderer().Money(txn.Amount),
		engine.CategoryName(store.Categories(), txn.Category),
		txn.Date.Format(cli.DateLayout),
		txn.ID)))
	return nil
}

func (a *app) txListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions, optionally filtered and sorted.

Examples:
  budget tx list --month 2025-01
  budget tx list --type expense --category food --sort amount`,
		Args: cobra.NoArgs,
		RunE: a.runTxList,
	}

	cmd.Flags().String("type", engine.AllFilter, "income, expense or all")
	cmd.Flags().String("category", engine.AllFilter, "category id or all")
	cmd.Flags().String("sort", string(engine.SortByDate), "date, amount or description")
	cmd.Flags().String("order", "desc", "asc or desc")
	cmd.Flags().String("month", "", "only show YYYY-MM (default: every month)")

	return cmd
}

func (a *app) runTxList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	typeFlag, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	sortFlag, _ := cmd.Flags().GetString("sort")
	order, _ := cmd.Flags().GetString("order")
	monthFlag, _ := cmd.Flags().GetString("month")

	if typeFlag != engine.AllFilter {
		if _, err := parseType(typeFlag); err != nil {
			return err
		}
	}
	sortBy, err := engine.ParseSortField(sortFlag)
	if err != nil {
		return common.NewUserError("invalid --sort", err)
	}
	if order != "asc" && order != "desc" {
		return common.NewUserError(fmt.Sprintf("invalid --order %q (want asc or desc)", order), nil)
	}

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	txns := store.Transactions()
	if monthFlag != "" {
		month, monthErr := a.month(monthFlag)
		if monthErr != nil {
			return monthErr
		}
		txns = engine.FilterByPeriod(txns, month)
	}

	txns = engine.Query(txns, engine.TransactionQuery{
		Type:       typeFlag,
		Category:   category,
		SortBy:     sortBy,
		Descending: order == "desc",
	})
	return a.renderer().Transactions(cmd.OutOrStdout(), txns, store.Categories())
}

func (a *app) txUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a transaction",
		Long: `Change fields of an existing transaction. Only the flags you pass are changed.

Example:
  budget tx update 3f6c... --amount 14 --category transport`,
		Args: cobra.ExactArgs(1),
		RunE: a.runTxUpdate,
	}

	cmd.Flags().StringP("type", "t", "", "income or expense")
	cmd.Flags().StringP("amount", "a", "", "amount")
	cmd.Flags().StringP("category", "c", "", "category id")
	cmd.Flags().StringP("description", "d", "", "description")
	cmd.Flags().String("date", "", "date as YYYY-MM-DD")

	return cmd
}

func (a *app) runTxUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]
	flags := cmd.Flags()

	var patch model.TransactionPatch
	if flags.Changed("type") {
		s, _ := flags.GetString("type")
		typ, err := parseType(s)
		if err != nil {
			return err
		}
		patch.Type = &typ
	}
	if flags.Changed("amount") {
		s, _ := flags.GetString("amount")
		amount, err := parseMoney("amount", s)
		if err != nil {
			return err
		}
		patch.Amount = &amount
	}
	if flags.Changed("category") {
		s, _ := flags.GetString("category")
		patch.Category = &s
	}
	if flags.Changed("description") {
		s, _ := flags.GetString("description")
		patch.Description = &s
	}
	if flags.Changed("date") {
		s, _ := flags.GetString("date")
		date, err := parseDate(s)
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if patch.IsEmpty() {
		return common.NewUserError("nothing to update; pass at least one field flag", nil)
	}

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if _, ok := store.Transaction(id); !ok {
		return common.NewUserError(fmt.Sprintf("transaction %s", id), common.ErrNotFound)
	}
	if err := store.UpdateTransaction(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	printLine(cmd, cli.FormatSuccess("Updated transaction "+id))
	return nil
}

func (a *app) txDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runTxDelete,
	}
	cmd.Flags().BoolP("yes", "y", false, "skip confirmation")
	return cmd
}

func (a *app) runTxDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]
	yes, _ := cmd.Flags().GetBool("yes")

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	txn, ok := store.Transaction(id)
	if !ok {
		return common.NewUserError(fmt.Sprintf("transaction %s", id), common.ErrNotFound)
	}

	if !yes {
		question := fmt.Sprintf("Delete %s %s %q from %s?",
			txn.Type, a.renderer().Money(txn.Amount), txn.Description, txn.Date.Format(cli.DateLayout))
		confirmed, confirmErr := cli.Confirm(ctx, cli.NewLineReader(a.in), cmd.OutOrStdout(), question)
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			printLine(cmd, cli.FormatInfo("Nothing deleted"))
			return nil
		}
	}

	if err := store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	printLine(cmd, cli.FormatSuccess("Deleted transaction "+id))
	return nil
}
