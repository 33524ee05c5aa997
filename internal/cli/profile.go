package cli

import (
	"github.com/spf13/cobra"

	kvkerrors "github.com/cloudmazing/kvkapi/pkg/errors"
)

// profileCommand creates the profile command.
func (c *CLI) profileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <kvk-number>",
		Short: "Show the base profile of a company",
		Long: `Fetch the base profile of a company's main establishment.

Example:
  kvk profile 12345678`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kvkerrors.ValidateKvkNumber(args[0]); err != nil {
				return err
			}

			client, err := c.newClient(cmd)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			spin := c.startSpinner(cmd, "Fetching base profile...")
			company, err := client.GetBaseProfile(cmd.Context(), args[0])
			stopSpinner(spin, err)
			if err != nil {
				return err
			}
			prog.fetched(company.KvkNumber)

			out := cmd.OutOrStdout()
			if c.opts.json {
				return printJSON(out, company)
			}
			printCompany(out, *company)
			return nil
		},
	}
}
