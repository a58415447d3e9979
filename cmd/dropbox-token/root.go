package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dvcrn/dropbox-token/internal/app"
	"github.com/dvcrn/dropbox-token/internal/config"
	"github.com/dvcrn/dropbox-token/internal/credentials"
	"github.com/dvcrn/dropbox-token/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	store      string
	verbose    bool
	quiet      bool

	in  io.Reader
	out io.Writer
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &rootOptions{in: in, out: out}

	cmd := &cobra.Command{
		Use:   app.Name,
		Short: "Print a Dropbox access token",
		Long: `Exchanges the cached refresh token for a new Dropbox access token and prints it.
Without a cached refresh token, prints the authorization URL and asks for the code
Dropbox shows after the app is approved.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Configuration file with client_id and client_secret")
	cmd.PersistentFlags().StringVar(&opts.store, "store", credentials.StoreFile, "Where to cache the refresh token (file or keyring)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print only the access token")

	cmd.AddCommand(newLsCmd(opts), newLogoutCmd(opts))
	cmd.SetIn(in)
	cmd.SetOut(out)
	return cmd
}

func (o *rootOptions) logger() zerolog.Logger {
	return logger.New(o.verbose)
}

func (o *rootOptions) newStore(log zerolog.Logger) (credentials.RefreshTokenStore, error) {
	store, err := credentials.NewStore(o.store, app.Name)
	if err != nil {
		return nil, err
	}
	if fs, ok := store.(*credentials.FSStore); ok {
		log.Debug().
			Str("path", fs.Path()).
			Bool("cached", credentials.FileExists(fs.Path())).
			Msg("Using file token cache")
	} else {
		log.Debug().Str("store", o.store).Msg("Using keyring token cache")
	}
	return store, nil
}

func (o *rootOptions) newApp() (*app.App, error) {
	log := o.logger()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	store, err := o.newStore(log)
	if err != nil {
		return nil, err
	}

	return app.New(cfg, app.Options{
		Store:  store,
		In:     o.in,
		Out:    o.out,
		Logger: log,
	}), nil
}

func runToken(ctx context.Context, opts *rootOptions) error {
	a, err := opts.newApp()
	if err != nil {
		return err
	}

	token, err := a.Token(ctx)
	if err != nil {
		return err
	}

	if opts.quiet {
		_, err = fmt.Fprintln(opts.out, token)
	} else {
		_, err = fmt.Fprintf(opts.out, "Access token %s\n", token)
	}
	return err
}
