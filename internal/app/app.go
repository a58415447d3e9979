package app

import (
	"context"
	"io"
	"net/http"

	"github.com/dvcrn/dropbox-token/internal/auth"
	"github.com/dvcrn/dropbox-token/internal/config"
	"github.com/dvcrn/dropbox-token/internal/credentials"
	"github.com/dvcrn/dropbox-token/internal/dropbox"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Name is used for the cache directory, the cache file and the keyring service
const Name = "dropbox-token"

// Options carries the process-level dependencies of an App
type Options struct {
	Store      credentials.RefreshTokenStore
	In         io.Reader
	Out        io.Writer
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// App is the set of operations exposed on the command line
type App struct {
	cfg        *config.Config
	auth       *auth.Authenticator
	httpClient *http.Client
	logger     zerolog.Logger
}

// New wires the OAuth client, token store and prompt together
func New(cfg *config.Config, opts Options) *App {
	if opts.HTTPClient == nil {
		opts.HTTPClient = dropbox.NewHTTPClient()
	}
	exchanger := auth.NewClient(cfg, opts.HTTPClient)
	prompter := auth.NewConsolePrompter(opts.In, opts.Out)

	return &App{
		cfg:        cfg,
		auth:       auth.NewAuthenticator(exchanger, opts.Store, prompter, opts.Out, opts.Logger),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// Token returns a fresh access token
func (a *App) Token(ctx context.Context) (string, error) {
	return a.auth.AccessToken(ctx)
}

// List authenticates and returns the entries of a remote folder
func (a *App) List(ctx context.Context, path string, recursive bool) ([]dropbox.Entry, error) {
	token, err := a.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	client := dropbox.NewClient(a.cfg.APIURL, a.httpClient, src, a.logger)
	return client.ListFolder(ctx, path, recursive)
}
