package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"github.com/spf13/cobra"
)

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage spending categories and their budgets",
		Long: `Manage the categories transactions are filed under.

A category with a budget shows progress against that monthly limit in the
summary. A budget of 0 means the category is not tracked against a limit.`,
	}

	cmd.AddCommand(a.listCategoriesCmd())
	cmd.AddCommand(a.addCategoryCmd())
	cmd.AddCommand(a.updateCategoryCmd())
	cmd.AddCommand(a.deleteCategoryCmd())

	return cmd
}

func (a *app) listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeDB, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			return a.renderer().Categories(cmd.OutOrStdout(), store.Categories())
		},
	}
}

func (a *app) addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Long: `Add a new category. The id is derived from the name unless --id is given.

Examples:
  budget categories add "Pet Care" --budget 120
  budget categories add Travel --id trips --color "#0ea5e9"`,
		Args: cobra.ExactArgs(1),
		RunE: a.runAddCategory,
	}

	cmd.Flags().String("id", "", "explicit id (default: derived from the name)")
	cmd.Flags().String("color", model.FallbackColor, "display color as #rrggbb")
	cmd.Flags().String("budget", "0", "monthly budget limit")

	return cmd
}

func (a *app) runAddCategory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, _ := cmd.Flags().GetString("id")
	color, _ := cmd.Flags().GetString("color")
	budgetFlag, _ := cmd.Flags().GetString("budget")

	budget, err := parseMoney("budget", budgetFlag)
	if err != nil {
		return err
	}

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	cat, err := store.AddCategory(ctx, model.CategoryInput{
		ID:          id,
		Name:        args[0],
		Color:       color,
		BudgetLimit: budget,
	})
	if errors.Is(err, common.ErrDuplicateEntry) {
		return common.NewUserError(fmt.Sprintf("category id %q is already taken", id), err)
	}
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Added category %s (%s)", cat.Name, cat.ID)))
	return nil
}

func (a *app) updateCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename, recolor or re-budget a category",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runUpdateCategory,
	}

	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("color", "", "new color as #rrggbb")
	cmd.Flags().String("budget", "", "new monthly budget limit")

	return cmd
}

func (a *app) runUpdateCategory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]
	flags := cmd.Flags()

	var patch model.CategoryPatch
	if flags.Changed("name") {
		s, _ := flags.GetString("name")
		patch.Name = &s
	}
	if flags.Changed("color") {
		s, _ := flags.GetString("color")
		patch.Color = &s
	}
	if flags.Changed("budget") {
		s, _ := flags.GetString("budget")
		budget, err := parseMoney("budget", s)
		if err != nil {
			return err
		}
		patch.BudgetLimit = &budget
	}
	if patch.IsEmpty() {
		return common.NewUserError("nothing to update; pass --name, --color or --budget", nil)
	}

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if _, ok := store.Category(id); !ok {
		return common.NewUserError(fmt.Sprintf("category %s", id), common.ErrNotFound)
	}
	if err := store.UpdateCategory(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	printLine(cmd, cli.FormatSuccess("Updated category "+id))
	return nil
}

func (a *app) deleteCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  `Delete a category. Transactions filed under it are kept and show as Unknown.`,
		Args:  cobra.ExactArgs(1),
		RunE:  a.runDeleteCategory,
	}
	cmd.Flags().BoolP("yes", "y", false, "skip confirmation")
	return cmd
}

func (a *app) runDeleteCategory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]
	yes, _ := cmd.Flags().GetBool("yes")

	store, closeDB, err := a.openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	cat, ok := store.Category(id)
	if !ok {
		return common.NewUserError(fmt.Sprintf("category %s", id), common.ErrNotFound)
	}

	if !yes {
		inUse := 0
		for _, t := range store.Transactions() {
			if t.Category == id {
				inUse++
			}
		}
		question := fmt.Sprintf("Delete category %s?", cat.Name)
		if inUse > 0 {
			question = fmt.Sprintf("Delete category %s? %d transactions will show as Unknown.", cat.Name, inUse)
		}
		confirmed, confirmErr := cli.Confirm(ctx, cli.NewLineReader(a.in), cmd.OutOrStdout(), question)
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			printLine(cmd, cli.FormatInfo("Nothing deleted"))
			return nil
		}
	}

	if err := store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	printLine(cmd, cli.FormatSuccess("Deleted category "+cat.Name))
	return nil
}
