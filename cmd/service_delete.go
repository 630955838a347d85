package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Elysium-Labs-EU/graphctl/internal/federation"
)

func newServiceDeleteCmd(getSession func() *session) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a federated service and recompose the gateway",
		Long: `Remove an implementing service from a federated graph variant. The registry
recomposes the remaining services and updates the gateway when the
composition changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := variantSource(cmd)
			if err != nil {
				return err
			}
			federated, err := cmd.Flags().GetBool("federated")
			if err != nil {
				return err
			}
			serviceName, err := cmd.Flags().GetString("serviceName")
			if err != nil {
				return err
			}

			s := getSession()
			result, err := s.service().DeleteService(cmd.Context(), federation.Flags{
				Variant:     source,
				Federated:   federated,
				ServiceName: serviceName,
			}, s.graph())
			if err != nil {
				return err
			}

			return federation.ReportRemoval(cmd.OutOrStdout(), result)
		},
	}

	addVariantFlags(deleteCmd)
	deleteCmd.Flags().BoolP("federated", "f", false, "Indicate that the schema is a federated service")
	deleteCmd.Flags().String("serviceName", "", "Provides the name of the implementing service for a federated graph")
	_ = deleteCmd.Flags().MarkHidden("federated")
	_ = deleteCmd.Flags().MarkDeprecated("federated", "it is no longer required for federated services")
	_ = deleteCmd.MarkFlagRequired("serviceName")

	return deleteCmd
}
