package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the demo account balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}
		acc := appInstance.AccountService.Balance()

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Holder", "Balance", "Updated At"})
		table.SetBorder(true)
		table.Append([]string{acc.Holder, "R$ " + acc.Balance, acc.UpdatedAt.Format("2006-01-02 15:04:05")})
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
