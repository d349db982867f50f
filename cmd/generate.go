package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pixshield/internal/clix"
)

var generateQROut string

// generateCmd creates a PIX without risk analysis.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a PIX code directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}
		params, err := clix.ParseGenerateParams(cmd.Flags())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		resp, err := appInstance.PixService.Generate(cmd.Context(), params)
		if err != nil {
			return reportSendError(out, err)
		}

		fmt.Fprintln(out, color.GreenString(orDefault(resp.Mensagem, "PIX gerado")))
		fmt.Fprintf(out, "Chave: %s\n", orDefault(resp.ChaveDestino, params.Chave))
		fmt.Fprintf(out, "Código PIX: %s\n", resp.CodigoPix)
		if generateQROut != "" {
			if err := writeQR(generateQROut, resp.Base64Qr); err != nil {
				return err
			}
			fmt.Fprintf(out, "QR code written to %s\n", generateQROut)
		}
		return nil
	},
}

// writeQR decodes the backend's base64 PNG (optionally a data URL) into path.
func writeQR(path, encoded string) error {
	if i := strings.Index(encoded, ","); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+1:]
	}
	if encoded == "" {
		return fmt.Errorf("backend returned no QR image")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode QR image: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write QR image: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("client", "", "Client id (clienteId)")
	generateCmd.Flags().String("key", "", "Destination PIX key")
	generateCmd.Flags().String("amount", "", "Amount, e.g. 100,00 or 100.00")
	generateCmd.Flags().StringVar(&generateQROut, "qr-out", "", "Write the QR code PNG to this file")
}
