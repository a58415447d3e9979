package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dvcrn/dropbox-token/internal/config"
	"golang.org/x/oauth2"
)

// Client performs the two OAuth2 grants against the Dropbox token endpoint
type Client struct {
	oauth      *oauth2.Config
	httpClient *http.Client
}

// NewClient builds a Client from the app credentials. client_id and
// client_secret are sent as form parameters on every token request.
func NewClient(cfg *config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// AuthorizeURL returns the page where the user approves the app and obtains
// an authorization code. token_access_type=offline makes Dropbox issue a
// refresh token alongside the access token.
func (c *Client) AuthorizeURL() string {
	return c.oauth.AuthCodeURL("", oauth2.SetAuthURLParam("token_access_type", "offline"))
}

// ExchangeCode trades an authorization code for tokens
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	tok, err := c.oauth.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		return nil, exchangeError(err)
	}
	return toTokenResponse(tok), nil
}

// Refresh trades a refresh token for a new access token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	// An empty access token is never valid, so Token always hits the endpoint.
	src := c.oauth.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, exchangeError(err)
	}
	return toTokenResponse(tok), nil
}

func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// toTokenResponse only reports a refresh token the server actually sent.
// oauth2 copies the old one forward on refresh, which would rewrite the cache
// with an unchanged value.
func toTokenResponse(tok *oauth2.Token) *TokenResponse {
	resp := &TokenResponse{AccessToken: tok.AccessToken}
	if rt, ok := tok.Extra("refresh_token").(string); ok {
		resp.RefreshToken = rt
	}
	return resp
}

func exchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return fmt.Errorf("could not get the response: %w", &StatusError{
			StatusCode: retrieveErr.Response.StatusCode,
			Body:       strings.TrimSpace(string(retrieveErr.Body)),
		})
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("could not get the response: %w", err)
	}
	return fmt.Errorf("could not get tokens from the request: %w", err)
}
