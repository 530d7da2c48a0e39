package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nurpe/vat-invoicing/internal/config"
	"github.com/nurpe/vat-invoicing/internal/logger"
	"github.com/nurpe/vat-invoicing/internal/vies"
)

func newValidateCommand(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <vat-number>",
		Short: "Validate a Belgian VAT number",
		Long: `Validate a VAT number against the VIES registry. When the registry cannot
answer, or --offline is given, the local 10-digit format check decides.

Registry settings come from VIES_URL, VIES_COUNTRY_CODE and VIES_TIMEOUT.`,
		Example: `  vatctl validate BE0123.456.789
  vatctl validate 0123456789 --offline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offline, _ := cmd.Flags().GetBool("offline")

			var verdict vies.Verdict
			if offline {
				verdict = vies.FormatVerdict(vies.Clean(args[0]), nil)
			} else {
				registry := opts.Registry
				if registry == nil {
					cfg, err := config.LoadVIES()
					if err != nil {
						return err
					}
					registry = vies.NewClient(cfg.URL, cfg.CountryCode, cfg.Timeout)
				}
				validator := vies.NewValidator(registry, logger.WithComponent(opts.Log, "vies"))
				ctx := cmd.Context()
				if ctx == nil {
					ctx = context.Background()
				}
				verdict = validator.Validate(ctx, args[0])
			}

			printVerdict(cmd, verdict)
			return nil
		},
	}
	cmd.Flags().Bool("offline", false, "skip the registry and check the format only")
	return cmd
}

func printVerdict(cmd *cobra.Command, verdict vies.Verdict) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("VAT number "+verdict.Number))

	status := errorStyle.Render("invalid")
	if verdict.IsValid {
		status = validStyle.Render("valid")
	}
	fmt.Fprint(out, row("Result", status))
	fmt.Fprint(out, row("Checked by", string(verdict.Source)))
	if verdict.Details != nil {
		fmt.Fprint(out, row("Name", verdict.Details.Name))
		fmt.Fprint(out, row("Address", verdict.Details.Address))
	}
	if verdict.Error != "" {
		fmt.Fprint(out, row("Registry error", verdict.Error))
	}
}
