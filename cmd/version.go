package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Elysium-Labs-EU/graphctl/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the graphctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			short, _ := cmd.Flags().GetBool("short")
			if short {
				cmd.Println(buildinfo.GetVersionOnly())
				return
			}
			cmd.Println(buildinfo.Get())
		},
	}

	versionCmd.Flags().Bool("short", false, "Print only the version number")

	return versionCmd
}
