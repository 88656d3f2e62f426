package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
)

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "regions",
		Short:   "List supported marketplace regions",
		Example: `  mws regions
  mws regions --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), mws.Regions())
			}
			return printRegionsTable(cmd.OutOrStdout(), mws.Regions())
		},
	}
}
