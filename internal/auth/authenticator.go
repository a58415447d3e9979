package auth

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dvcrn/dropbox-token/internal/credentials"
	"github.com/rs/zerolog"
)

// ErrEmptyAuthorizationCode is returned when the user submits a blank code
var ErrEmptyAuthorizationCode = errors.New("authorization code is required")

// TokenExchanger is implemented by Client
type TokenExchanger interface {
	AuthorizeURL() string
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
}

// Authenticator obtains an access token, reusing the cached refresh token
// when there is one and falling back to the interactive code flow otherwise
type Authenticator struct {
	exchanger TokenExchanger
	store     credentials.RefreshTokenStore
	prompter  Prompter
	out       io.Writer
	logger    zerolog.Logger
}

// NewAuthenticator wires an exchanger to a refresh token store. The
// authorization URL is written to out; the code is read through prompter.
func NewAuthenticator(exchanger TokenExchanger, store credentials.RefreshTokenStore, prompter Prompter, out io.Writer, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		exchanger: exchanger,
		store:     store,
		prompter:  prompter,
		out:       out,
		logger:    logger,
	}
}

// AccessToken runs one exchange and persists the refresh token it returns
func (a *Authenticator) AccessToken(ctx context.Context) (string, error) {
	refreshToken, ok, err := a.store.Load()
	if err != nil {
		// An unreadable cache only means we have to ask the user again
		a.logger.Warn().Err(err).Msg("Could not read cached refresh token")
		ok = false
	}

	var tokens *TokenResponse
	if ok {
		tokens, err = a.authorizeByRefreshToken(ctx, refreshToken)
	} else {
		tokens, err = a.authorizeByCode(ctx)
	}
	if err != nil {
		return "", err
	}

	if tokens.RefreshToken != "" {
		if err := a.store.Save(tokens.RefreshToken); err != nil {
			return "", fmt.Errorf("failed to save refresh token: %w", err)
		}
		a.logger.Debug().Msg("Saved new refresh token")
	} else {
		a.logger.Debug().Msg("No refresh token in response, cache left as is")
	}

	return tokens.AccessToken, nil
}

func (a *Authenticator) authorizeByRefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	a.logger.Info().Msg("🔄 Using the refresh token to authenticate...")
	return a.exchanger.Refresh(ctx, refreshToken)
}

func (a *Authenticator) authorizeByCode(ctx context.Context) (*TokenResponse, error) {
	if _, err := fmt.Fprintln(a.out, a.exchanger.AuthorizeURL()); err != nil {
		return nil, fmt.Errorf("failed to print authorization URL: %w", err)
	}
	code, err := a.prompter.Prompt("Authorization code")
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, ErrEmptyAuthorizationCode
	}
	return a.exchanger.ExchangeCode(ctx, code)
}
