package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/backoffice/internal/resource"
)

func newResourcesCmd(a *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List the administrable resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := resource.All()
			if asJSON {
				type entry struct {
					Name   string   `json:"name"`
					Title  string   `json:"title"`
					Unique []string `json:"unique,omitempty"`
				}
				out := make([]entry, len(all))
				for i, r := range all {
					out[i] = entry{Name: r.Name, Title: r.Title, Unique: uniqueNames(r)}
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			rows := make([][]string, len(all))
			for i, r := range all {
				rows[i] = []string{r.Name, r.Title, strings.Join(uniqueNames(r), ", ")}
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Name", "Title", "Unique").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func uniqueNames(r resource.Resource) []string {
	var names []string
	for _, f := range r.UniqueFields() {
		names = append(names, f.Name)
	}
	return names
}
