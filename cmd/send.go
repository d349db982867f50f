package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pixshield/internal/clix"
	"pixshield/internal/models"
	"pixshield/internal/services"
)

var (
	sendConfirm bool
	sendQROut   string
)

// sendCmd runs the analyze -> generate chain for one payment.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a PIX after fraud analysis",
	Long: `Validates the payment form, submits it for risk analysis and generates the
PIX when the analysis allows it. High risk payments need --yes; blocked payments
are never generated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}
		params, err := clix.ParseSendParams(cmd.Flags())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		outcome, err := appInstance.PixService.Send(cmd.Context(), params, sendConfirm)
		if err != nil {
			return reportSendError(out, err)
		}
		printOutcome(out, outcome)

		if outcome.Pix != nil && sendQROut != "" {
			if err := writeQR(sendQROut, outcome.Pix.Base64Qr); err != nil {
				return err
			}
			fmt.Fprintf(out, "QR code written to %s\n", sendQROut)
		}
		if outcome.Status == models.OutcomeBlocked {
			return fmt.Errorf("transaction blocked")
		}
		return nil
	},
}

func reportSendError(out io.Writer, err error) error {
	var verr *services.ValidationErrors
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(out, "%s %s\n", color.RedString("Erro:"), verr.Message)
		fmt.Fprintf(out, "Campos: %s\n", strings.Join(verr.Names(), ", "))
	case errors.Is(err, models.ErrBackend), errors.Is(err, models.ErrContract):
		fmt.Fprintf(out, "%s Erro ao processar transação. Tente novamente em alguns instantes.\n", color.RedString("Erro:"))
	}
	return err
}

func printOutcome(out io.Writer, o *services.SendPixOutcome) {
	var verdict string
	switch o.Status {
	case models.OutcomeApproved:
		verdict = color.GreenString(o.Message)
	case models.OutcomeBlocked:
		verdict = color.RedString(o.Message)
	default:
		verdict = color.YellowString(o.Message)
	}
	fmt.Fprintln(out, verdict)
	fmt.Fprintf(out, "Chave: %s (%s)\n", o.Request.ChaveDestino, o.Request.TipoChave)
	fmt.Fprintf(out, "Valor: R$ %s\n", strings.Replace(o.Request.Valor, ".", ",", 1))
	if a := o.Analysis; a != nil {
		fmt.Fprintf(out, "Risco: %s / %s (contrato %s)\n", a.Tier, a.Action, a.ContractVersion)
		for _, alert := range a.Alerts {
			fmt.Fprintf(out, "  - %s\n", alert)
		}
	}
	if o.Status == models.OutcomeConfirmationRequired {
		fmt.Fprintln(out, "Run again with --yes to confirm this payment.")
	}
	if o.Pix != nil {
		fmt.Fprintf(out, "Código PIX: %s\n", o.Pix.CodigoPix)
		if o.Pix.Mensagem != "" {
			fmt.Fprintln(out, o.Pix.Mensagem)
		}
	}
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().String("from", "", "Sender id (remetenteId)")
	sendCmd.Flags().String("to", "", "Recipient id (destinatarioId)")
	sendCmd.Flags().String("key", "", "Destination PIX key")
	sendCmd.Flags().String("kind", "", "Override the detected key type (CPF, CNPJ, EMAIL, TELEFONE, ALEATORIA)")
	sendCmd.Flags().String("amount", "", "Amount, e.g. 100,00 or 100.00")
	sendCmd.Flags().String("description", "", "Description (default \"Pix para <chave>\")")
	sendCmd.Flags().String("when", "", "Date and time, 2006-01-02T15:04 (default now)")
	sendCmd.Flags().BoolVarP(&sendConfirm, "yes", "y", false, "Confirm a high risk payment")
	sendCmd.Flags().StringVar(&sendQROut, "qr-out", "", "Write the QR code PNG to this file")
}
