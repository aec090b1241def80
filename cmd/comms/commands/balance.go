package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewBalanceCommand creates the balance command.
func NewBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Display account balance",
		Long:  "Display the account balance and whether auto reload is enabled",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			balance, err := client.Account().GetBalance(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get balance: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), balance, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Balance", strconv.FormatFloat(balance.Value, 'f', 2, 64))
				_ = table.Append("Auto Reload", strconv.FormatBool(balance.AutoReload))
			})
		},
	}
}
