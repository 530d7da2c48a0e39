package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/tax"
)

func newDeductCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deduct <total>",
		Short: "Apply professional and investment deductions to a total",
		Long: `Apply deductions to a total. Professional expenses are capped at 30% and
investments at 20% of the original total. Professional is applied first.`,
		Example: `  vatctl deduct 1000 --professional 500 --investment 100`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDeduct,
	}
	cmd.Flags().String("professional", "", "requested professional expense deduction")
	cmd.Flags().String("investment", "", "requested investment deduction")
	return cmd
}

func runDeduct(cmd *cobra.Command, args []string) error {
	total, err := decimal.NewFromString(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("invalid total %q: %w", args[0], err)
	}

	var deductions []model.Deduction
	for _, kind := range []model.DeductionType{model.DeductionProfessional, model.DeductionInvestment} {
		raw, _ := cmd.Flags().GetString(string(kind))
		if raw == "" {
			continue
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid %s amount %q: %w", kind, raw, err)
		}
		deductions = append(deductions, model.Deduction{Type: kind, Amount: amount})
	}

	result, err := tax.ApplyDeductions(total, deductions)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Deductions"))
	fmt.Fprint(out, row("Original total", total.StringFixed(2)))
	for _, applied := range result.AppliedDeductions {
		fmt.Fprint(out, row("- "+string(applied.Type), applied.Amount.StringFixed(2)))
	}
	fmt.Fprint(out, row("Final amount", result.FinalAmount.StringFixed(2)))
	return nil
}
