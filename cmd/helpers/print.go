package helpers

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Elysium-Labs-EU/graphctl/internal/ui"
)

func PrintSection(cmd *cobra.Command, title string) {
	cmd.Println("")
	cmd.Println(ui.SectionHeader.Render(title))
	cmd.Println(ui.SectionRule.Render(strings.Repeat("─", 28)))
}

func PrintKV(cmd *cobra.Command, key, value string) {
	cmd.Printf("%s%s\n", ui.KeyStyle.Render(key), ui.ValueStyle.Render(value))
}

func PrintInfo(cmd *cobra.Command, message string) {
	cmd.Printf("%s %s\n", ui.LabelInfo.Render("info"), message)
}

// PrintHint prints a muted follow-up line pointing at another command.
func PrintHint(cmd *cobra.Command, command, hint string) {
	cmd.Printf("  %s %s %s\n", ui.TextMuted.Render("run:"), ui.TextCommand.Render(command), ui.TextMuted.Render(hint))
}
