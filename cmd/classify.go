package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <key...>",
	Short: "Detect the type of PIX keys and show them masked",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Input", "Type", "Backend Type", "Formatted", "Rule"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, raw := range args {
			info := appInstance.KeyService.Classify(raw)
			kind := info.Kind.String()
			if info.Phone != "" {
				kind += " (" + string(info.Phone) + ")"
			}
			if info.Matched {
				kind = color.GreenString(kind)
			} else {
				kind = color.YellowString(kind)
			}
			rule := info.Rule
			if rule == "" {
				rule = "fallback"
			}
			table.Append([]string{
				strings.TrimSpace(raw),
				kind,
				orDash(info.WireName),
				info.Display,
				rule,
			})
		}
		table.Render()
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
