package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agenthands/labscan/internal/catalog"
)

var (
	catalogCategory string
	catalogJSON     bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the built-in equipment catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "Only list one category")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print JSON")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	list := catalog.All()
	if catalogCategory != "" {
		list = catalog.ByCategory(catalogCategory)
		if len(list) == 0 {
			return fmt.Errorf("unknown category %q (have %v)", catalogCategory, catalog.Categories())
		}
	}
	listings := catalog.Render(list)

	out := cmd.OutOrStdout()
	if catalogJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tDESCRIPTION")
	for _, l := range listings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Name, l.Category, l.Description)
	}
	return tw.Flush()
}
