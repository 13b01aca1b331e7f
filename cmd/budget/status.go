package main

import (
	"strings"

	"github.com/Veraticus/budget/internal/ledger"
	"github.com/spf13/cobra"
)

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the ledger is stored and what it holds",
		Long: `Show the database path, the collections saved in it and how many
transactions and categories the ledger holds.

Categories come from the built-in defaults until one is saved.`,
		Args: cobra.NoArgs,
		RunE: a.runStatus,
	}
}

func (a *app) runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, closeDB, err := a.openDatabase(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	keys, err := db.Keys(ctx)
	if err != nil {
		return err
	}
	store, err := ledger.Open(ctx, db, ledger.WithClock(a.now))
	if err != nil {
		return err
	}

	saved := "none"
	if len(keys) > 0 {
		saved = strings.Join(keys, ", ")
	}
	printf(cmd, "Database:     %s\n", db.Path())
	printf(cmd, "Saved:        %s\n", saved)
	printf(cmd, "Transactions: %d\n", len(store.Transactions()))
	printf(cmd, "Categories:   %d\n", len(store.Categories()))
	return nil
}
