package cli

import (
	"github.com/spf13/cobra"

	kvkerrors "github.com/cloudmazing/kvkapi/pkg/errors"
	"github.com/cloudmazing/kvkapi/pkg/integrations/kvk"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	kvkNumber        string            // search by KVK number
	rsin             string            // search by RSIN
	vestigingsnummer string            // search by establishment number
	params           map[string]string // raw query parameters
}

// identifier returns the identifier flag that was set, if any.
func (o *searchOpts) identifier() (param, value string) {
	switch {
	case o.kvkNumber != "":
		return kvk.ParamKvkNumber, o.kvkNumber
	case o.rsin != "":
		return kvk.ParamRsin, o.rsin
	case o.vestigingsnummer != "":
		return kvk.ParamVestigingsnummer, o.vestigingsnummer
	}
	return "", ""
}

// validate checks the combination of name argument and flags.
func (o *searchOpts) validate(name string) error {
	param, value := o.identifier()
	if name != "" && param != "" {
		return kvkerrors.New(kvkerrors.ErrCodeInvalidInput, "search by name or by identifier, not both")
	}
	if name == "" && param == "" && len(o.params) == 0 {
		return kvkerrors.New(kvkerrors.ErrCodeInvalidInput, "nothing to search for: give a name, --kvk, --rsin, --vestiging or --param")
	}
	switch param {
	case kvk.ParamKvkNumber:
		return kvkerrors.ValidateKvkNumber(value)
	case kvk.ParamRsin:
		return kvkerrors.ValidateRsin(value)
	case kvk.ParamVestigingsnummer:
		return kvkerrors.ValidateVestigingsnummer(value)
	}
	return nil
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "search [name]",
		Short: "Search registered companies",
		Long: `Search the KVK registry by trade name or by identifier.

Each result is completed with the registry's detail records, so a search
issues one request per result and link.

Examples:
  kvk search "Test BV"
  kvk search --kvk 12345678
  kvk search --rsin 123456789
  kvk search --vestiging 000012345678
  kvk search "Test" --param plaats=Amsterdam --per-page 25`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if err := opts.validate(name); err != nil {
				return err
			}

			client, err := c.newClient(cmd)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			spin := c.startSpinner(cmd, "Searching KVK registry...")
			params := kvk.Params(opts.params)
			var companies []kvk.Company
			switch param, value := opts.identifier(); param {
			case kvk.ParamKvkNumber:
				companies, err = client.SearchByKvkNumber(cmd.Context(), value, params)
			case kvk.ParamRsin:
				companies, err = client.SearchByRsin(cmd.Context(), value, params)
			case kvk.ParamVestigingsnummer:
				companies, err = client.SearchByVestigingsnummer(cmd.Context(), value, params)
			default:
				companies, err = client.Search(cmd.Context(), name, params)
			}
			stopSpinner(spin, err)
			if err != nil {
				return err
			}
			prog.found(len(companies))

			out := cmd.OutOrStdout()
			if c.opts.json {
				return printJSON(out, companies)
			}
			if len(companies) == 0 {
				printInfo(out, "No companies found")
				return nil
			}
			printCompanies(out, companies)
			printNewline(out)
			printDetail(out, "page %d, %d per page", client.Page(), client.ResultsPerPage())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.kvkNumber, "kvk", "", "search by 8-digit KVK number")
	cmd.Flags().StringVar(&opts.rsin, "rsin", "", "search by 9-digit RSIN")
	cmd.Flags().StringVar(&opts.vestigingsnummer, "vestiging", "", "search by 12-digit vestigingsnummer")
	cmd.Flags().StringToStringVar(&opts.params, "param", nil, "extra query parameter as key=value (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("kvk", "rsin", "vestiging")

	return cmd
}
