package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneybook/internal/core"
	applog "moneybook/internal/log"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var date, kind, category, amount, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction and save the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := core.ParseKindInput(kind)
			if err != nil {
				return err
			}
			value, err := core.ParseAmount(amount)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openLoaded(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.ledger.Add(ctx, date, k.String(), category, value, description); err != nil {
				return err
			}
			if err := a.ledger.Save(ctx); err != nil {
				return err
			}

			p := a.printer(cmd)
			p.Message("Transaction added.")
			p.Message("Data saved to file.")
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&kind, "type", "", "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&amount, "amount", "", "amount")
	cmd.Flags().StringVar(&description, "description", "", "description")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openLoaded(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			a.logger.Debug("Listing transactions", applog.FieldOperation, applog.OpList)
			return a.printer(cmd).Transactions(a.ledger.All(), "No transactions to show.")
		},
	}
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var over float64

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show expenses above a threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openLoaded(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			threshold := a.cfg.ExpenseThreshold
			if cmd.Flags().Changed("over") {
				threshold = over
			}

			a.logger.Debug("Filtering expenses",
				applog.FieldOperation, applog.OpFilter,
				applog.FieldThreshold, threshold)
			return a.printer(cmd).Transactions(a.ledger.ExpensesOver(threshold), "No expenses over the specified amount.")
		},
	}

	cmd.Flags().Float64Var(&over, "over", 0, "threshold (defaults to EXPENSE_THRESHOLD)")
	return cmd
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Show transactions whose category contains KEYWORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openLoaded(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			a.logger.Debug("Searching categories",
				applog.FieldOperation, applog.OpSearch,
				applog.FieldKeyword, args[0])
			return a.printer(cmd).Transactions(a.ledger.SearchCategory(args[0]), "No transactions found for that category.")
		},
	}
}

func newSortCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Show transactions by amount, largest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openLoaded(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.printer(cmd).Transactions(a.ledger.SortedByAmount(), "No transactions to sort.")
		},
	}
}

func newChartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Display the monthly spending bar chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openLoaded(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			totals := a.ledger.MonthlySpending()
			a.logger.Debug("Rendering chart",
				applog.FieldOperation, applog.OpChart,
				applog.FieldCount, len(totals))
			if err := a.printer(cmd).Chart(totals); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			return nil
		},
	}
}
