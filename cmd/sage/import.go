package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledger-sage/ledger-sage/internal/common"
	"github.com/ledger-sage/ledger-sage/internal/ingest"
	"github.com/ledger-sage/ledger-sage/internal/model"
	"github.com/ledger-sage/ledger-sage/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import expenses into the local database",
	}

	cmd.AddCommand(importCSVCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "csv <file>",
		Short: "Import expenses from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			expenses, err := ingest.ParseCSV(f)
			if err != nil {
				return err
			}
			return saveImported(cmd, expenses)
		},
	}
}

func importOFXCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ofx <file>",
		Short: "Import expenses from an OFX/QFX bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			expenses, err := ingest.NewOFXParser().Parse(f)
			if err != nil {
				return err
			}
			return saveImported(cmd, expenses)
		},
	}
}

const importBatchSize = 100

func saveImported(cmd *cobra.Command, expenses []model.Expense) error {
	if len(expenses) == 0 {
		return common.ErrNoExpenses
	}

	store, err := storage.NewSQLiteStorage(viper.GetString("database.path"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(int64(len(expenses)), "Importing")
	for start := 0; start < len(expenses); start += importBatchSize {
		end := start + importBatchSize
		if end > len(expenses) {
			end = len(expenses)
		}
		if err := store.SaveExpenses(cmd.Context(), expenses[start:end]); err != nil {
			return err
		}
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()

	total, err := store.CountExpenses(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d expenses (%d total in database)\n", len(expenses), total)
	return nil
}
