package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/msgram/internal/store"
)

func newListCmd(a *app) *cobra.Command {
	var filter store.ReleaseFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored releases, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database.URL == "" {
				return errors.New("list needs database.url")
			}
			db, err := store.NewPostgresStore(cmd.Context(), a.cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()
			return listReleases(cmd, db, filter)
		},
	}
	cmd.Flags().StringVarP(&filter.Repository, "repository", "r", "", "only releases of this repository")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", 0, "maximum releases to print (default 50)")
	return cmd
}

func listReleases(cmd *cobra.Command, s store.Store, filter store.ReleaseFilter) error {
	releases, err := s.ListReleases(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if releases == nil {
		releases = []*store.Release{}
	}
	return writeOutput(cmd.OutOrStdout(), releases)
}
