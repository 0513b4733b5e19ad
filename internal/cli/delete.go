package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/backoffice/internal/state"
)

func newDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID [ID...]",
		Short: "Delete records by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSyncer(cmd)
			if err != nil {
				return err
			}
			store := s.Store()
			items := store.State().Items
			byID := make(map[string]bool, len(items))
			for _, it := range items {
				byID[it.ID] = true
			}
			ids := make([]string, 0, len(args))
			seen := make(map[string]bool, len(args))
			for _, id := range args {
				if !byID[id] {
					return errNotFound(s.Resource().Noun, id)
				}
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}

			out := cmd.OutOrStdout()
			if len(ids) == 1 {
				for _, it := range items {
					if it.ID == ids[0] {
						store.Dispatch(state.OpenDelete{Item: it})
					}
				}
				if err := s.ConfirmDelete(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %s %s (%d remaining)\n", s.Resource().Noun, ids[0], len(store.State().Items))
				return nil
			}

			for _, id := range ids {
				store.Dispatch(state.ToggleRowSelection{ID: id, Checked: true})
			}
			removed, err := s.DeleteSelected(cmd.Context())
			fmt.Fprintf(out, "Deleted %d of %d (%d remaining)\n", removed, len(ids), len(store.State().Items))
			return err
		},
	}
}
