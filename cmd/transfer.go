package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pixshield/internal/clix"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer from the demo account to another account",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}
		account, _ := cmd.Flags().GetString("account")
		amount, _ := cmd.Flags().GetString("amount")

		receipt, err := appInstance.AccountService.Transfer(account, clix.NormalizeAmount(amount))
		if err != nil {
			return reportSendError(cmd.OutOrStdout(), err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), receipt.Message)
		fmt.Fprintf(cmd.OutOrStdout(), "Saldo: R$ %s\n", appInstance.AccountService.Balance().Balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().String("account", "", "Destination account")
	transferCmd.Flags().String("amount", "", "Amount, e.g. 100,00")
}
