package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Elysium-Labs-EU/graphctl/cmd/helpers"
	"github.com/Elysium-Labs-EU/graphctl/internal/federation"
	"github.com/Elysium-Labs-EU/graphctl/internal/ui"
)

func newServicePushCmd(getSession func() *session) *cobra.Command {
	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Push a federated service schema and recompose the gateway",
		Long: `Register or update an implementing service of a federated graph variant with
its partial schema. Pass - as --localSchemaFile to read the schema from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := variantSource(cmd)
			if err != nil {
				return err
			}
			serviceName, err := cmd.Flags().GetString("serviceName")
			if err != nil {
				return err
			}
			serviceURL, err := cmd.Flags().GetString("serviceURL")
			if err != nil {
				return err
			}
			revision, err := cmd.Flags().GetString("revision")
			if err != nil {
				return err
			}
			schemaFile, err := cmd.Flags().GetString("localSchemaFile")
			if err != nil {
				return err
			}

			sdl, err := readSchema(cmd, schemaFile)
			if err != nil {
				return err
			}
			helpers.PrintInfo(cmd, fmt.Sprintf("pushing %s of schema for %s", helpers.DetermineSchemaSize(sdl), ui.TextBold.Render(serviceName)))

			s := getSession()
			result, err := s.service().PushService(cmd.Context(), federation.PushInput{
				Variant:     source,
				ServiceName: serviceName,
				URL:         serviceURL,
				Revision:    revision,
				SDL:         sdl,
			}, s.graph())
			if err != nil {
				return err
			}

			return federation.ReportPush(cmd.OutOrStdout(), result)
		},
	}

	addVariantFlags(pushCmd)
	pushCmd.Flags().String("serviceName", "", "Provides the name of the implementing service for a federated graph")
	pushCmd.Flags().String("serviceURL", "", "URL at which the gateway reaches the implementing service")
	pushCmd.Flags().String("revision", "", "Revision of the implementing service, such as a commit hash")
	pushCmd.Flags().String("localSchemaFile", "", "Path to the service's SDL file, or - for stdin")
	_ = pushCmd.MarkFlagRequired("serviceName")
	_ = pushCmd.MarkFlagRequired("localSchemaFile")

	return pushCmd
}

func readSchema(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading schema %s failed with: %w", path, err)
	}
	return string(data), nil
}
