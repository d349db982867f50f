package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pixshield/pkg/money"
)

var amountWire bool

// amountCmd applies the amount field mask to typed digits.
var amountCmd = &cobra.Command{
	Use:   "amount <digits>",
	Short: "Format typed digits as a BRL amount (10000 -> 100,00)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cents := money.CentsFromDigits(args[0])
		if amountWire {
			fmt.Fprintln(cmd.OutOrStdout(), money.WireValue(cents))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "R$ %s\n", money.FormatCents(cents))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(amountCmd)
	amountCmd.Flags().BoolVar(&amountWire, "wire", false, "Print the dot-decimal value sent to the backend")
}
