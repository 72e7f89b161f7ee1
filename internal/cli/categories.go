package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/youruser/coverapp/internal/catalog"
)

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	var (
		groups []string
		query  string
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List known session categories and their colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFromDataDir(opts.cfg.Data.Dir)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tGROUP\tCOLOR\tTEXT")
			for _, c := range cat.Filter(catalog.FilterOptions{Groups: groups, FreeWords: query}) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Group, c.Color, catalog.ContrastTextColor(c.Color))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "Only list these groups")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Free-text filter")

	return cmd
}
