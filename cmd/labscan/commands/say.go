package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/labscan/internal/catalog"
	"github.com/agenthands/labscan/internal/voice"
)

var (
	sayCategory    string
	sayDescription string
)

var sayCmd = &cobra.Command{
	Use:   "say <equipment>",
	Short: "Print the narration read aloud on the detail view",
	Long: `Print the narration read aloud on the detail view. Catalog entries
fill in their own category and description unless given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSay,
}

func init() {
	sayCmd.Flags().StringVar(&sayCategory, "category", "", "Category to read out")
	sayCmd.Flags().StringVar(&sayDescription, "description", "", "Description to read out")
}

func runSay(cmd *cobra.Command, args []string) error {
	name, category, description := args[0], sayCategory, sayDescription
	if e, err := catalog.Find(name); err == nil {
		name = e.Name
		if category == "" {
			category = e.Category
		}
		if description == "" {
			description = e.Description
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), voice.Narration(name, category, description))
	return nil
}
