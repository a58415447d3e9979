package main

import (
	"github.com/spf13/cobra"
)

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached refresh token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := opts.logger()
			store, err := opts.newStore(log)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			log.Info().Msg("✅ Refresh token removed")
			return nil
		},
	}
}
