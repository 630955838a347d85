package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Elysium-Labs-EU/graphctl/cmd/helpers"
	"github.com/Elysium-Labs-EU/graphctl/internal/ui"
)

func newServiceListCmd(getSession func() *session) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the implementing services of a federated graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := variantSource(cmd)
			if err != nil {
				return err
			}

			s := getSession()
			target, services, err := s.service().ListServices(cmd.Context(), source, s.graph())
			if err != nil {
				return err
			}

			helpers.PrintSection(cmd, "Implementing services")
			helpers.PrintKV(cmd, "graph", target.GraphID)
			helpers.PrintKV(cmd, "variant", target.GraphVariant)
			cmd.Println("")

			if len(services) == 0 {
				cmd.Printf("%s %s\n", ui.LabelWarning.Render("warning"), "no implementing services registered for this variant")
				helpers.PrintHint(cmd, "graphctl service push", "to register one")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{
				"Name", "URL", "Revision", "Updated",
			})
			t.SetColumnConfigs([]table.ColumnConfig{
				{Number: 1, WidthMin: 20},
				{Number: 2, WidthMin: 30},
				{Number: 3, WidthMin: 12},
				{Number: 4, WidthMin: 15},
			})

			for _, svc := range services {
				t.AppendRow(table.Row{
					svc.Name,
					helpers.DetermineValue(svc.URL),
					helpers.DetermineValue(svc.Revision),
					helpers.DetermineUpdated(svc.UpdatedAt),
				})
			}
			t.Render()
			return nil
		},
	}

	addVariantFlags(listCmd)

	return listCmd
}
