// Package cli implements vatctl, an offline companion to the invoicing API.
package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nurpe/vat-invoicing/internal/vies"
)

var version = "1.0.0"

var (
	accent  = lipgloss.Color("#2563EB")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	dim     = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(22)
	validStyle = lipgloss.NewStyle().Bold(true).Foreground(success)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(danger)
)

// Options carries collaborators. A nil Registry means the VIES client is
// built from the environment when first needed.
type Options struct {
	Registry vies.Registry
	Log      zerolog.Logger
}

func NewRootCommand(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "vatctl",
		Short: "Belgian VAT calculations from the command line",
		Long: `vatctl runs the invoicing service's VAT arithmetic locally.

It computes VAT for an amount, applies capped deductions, lists the rate
table and validates VAT numbers against VIES with a format fallback.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCalcCommand(),
		newDeductCommand(),
		newRatesCommand(),
		newValidateCommand(opts),
	)
	return root
}

func row(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}
