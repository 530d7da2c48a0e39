package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/tax"
)

func newCalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <amount>",
		Short: "Compute VAT and total for a base amount",
		Example: `  vatctl calc 100
  vatctl calc 250.50 --category reduced
  vatctl calc 80 --rate 6`,
		Args: cobra.ExactArgs(1),
		RunE: runCalc,
	}
	cmd.Flags().String("category", string(model.CategoryStandard), "VAT category: standard, reduced, zero or exempt")
	cmd.Flags().String("rate", "", "explicit VAT percentage, overrides --category")
	return cmd
}

func runCalc(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	rawRate, _ := cmd.Flags().GetString("rate")
	rawCategory, _ := cmd.Flags().GetString("category")

	var result tax.VATResult
	if rawRate != "" {
		rate, err := decimal.NewFromString(rawRate)
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", rawRate, err)
		}
		result, err = tax.ComputeVATAtRate(amount, rate)
		if err != nil {
			return err
		}
	} else {
		category, err := tax.ParseCategory(rawCategory)
		if err != nil {
			return err
		}
		result, err = tax.ComputeVAT(amount, category)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("VAT calculation"))
	fmt.Fprint(out, row("Base amount", amount.StringFixed(2)))
	fmt.Fprint(out, row("Rate", result.AppliedRate.StringFixed(2)+"%"))
	fmt.Fprint(out, row("VAT", result.VATAmount.StringFixed(2)))
	fmt.Fprint(out, row("Total", result.TotalAmount.StringFixed(2)))
	return nil
}
