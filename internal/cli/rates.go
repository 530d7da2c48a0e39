package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nurpe/vat-invoicing/internal/tax"
)

func newRatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "List the Belgian VAT rate table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Belgian VAT rates"))
			for _, entry := range tax.Rates() {
				label := fmt.Sprintf("%-9s %6s%%", entry.Category, entry.Rate.StringFixed(2))
				fmt.Fprint(out, row(label, entry.Description))
			}
			return nil
		},
	}
}
