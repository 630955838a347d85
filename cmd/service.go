package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Elysium-Labs-EU/graphctl/internal/federation"
)

func newServiceCmd(getSession func() *session) *cobra.Command {
	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Manage implementing services of a federated graph",
	}

	serviceCmd.AddCommand(newServiceDeleteCmd(getSession))
	serviceCmd.AddCommand(newServicePushCmd(getSession))
	serviceCmd.AddCommand(newServiceListCmd(getSession))

	return serviceCmd
}

// addVariantFlags registers the legacy --tag flag and its replacement
// --variant. Only one of the two may be given.
func addVariantFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("tag", "t", "current", "Name of the tag (deprecated, use --variant)")
	cmd.Flags().StringP("variant", "v", "", "Name of the graph variant (default current)")
	_ = cmd.Flags().MarkHidden("tag")
	_ = cmd.Flags().MarkDeprecated("tag", "use --variant instead")
	cmd.MarkFlagsMutuallyExclusive("tag", "variant")
}

func variantSource(cmd *cobra.Command) (federation.VariantSource, error) {
	tag, err := cmd.Flags().GetString("tag")
	if err != nil {
		return federation.VariantSource{}, err
	}
	variant, err := cmd.Flags().GetString("variant")
	if err != nil {
		return federation.VariantSource{}, err
	}
	return federation.NewVariantSource(tag, cmd.Flags().Changed("tag"), variant, cmd.Flags().Changed("variant"))
}
