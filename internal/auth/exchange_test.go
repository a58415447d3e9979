package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/dvcrn/dropbox-token/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenServer is a stand-in for the Dropbox token endpoint
type tokenServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []url.Values
	status   int
	body     string
}

func (ts *tokenServer) received() []url.Values {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]url.Values(nil), ts.requests...)
}

func newTokenServer(t *testing.T, status int, body string) *tokenServer {
	t.Helper()
	ts := &tokenServer{status: status, body: body}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/oauth2/token" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ts.mu.Lock()
		ts.requests = append(ts.requests, r.PostForm)
		ts.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ts.status)
		_, _ = w.Write([]byte(ts.body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *tokenServer) config() *config.Config {
	return &config.Config{
		ClientID:     "app-key",
		ClientSecret: "app-secret",
		AuthURL:      config.DefaultAuthURL,
		TokenURL:     ts.URL + "/oauth2/token",
	}
}

func TestAuthorizeURL(t *testing.T) {
	client := NewClient(&config.Config{
		ClientID: "app-key",
		AuthURL:  config.DefaultAuthURL,
		TokenURL: config.DefaultTokenURL,
	}, nil)

	assert.Equal(t,
		"https://www.dropbox.com/oauth2/authorize?client_id=app-key&response_type=code&token_access_type=offline",
		client.AuthorizeURL())
}

func TestExchangeCode(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, `{"access_token": "sl.access", "refresh_token": "refresh-1", "token_type": "bearer", "expires_in": 14400}`)
	client := NewClient(ts.config(), ts.Client())

	tokens, err := client.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "sl.access", tokens.AccessToken)
	assert.Equal(t, "refresh-1", tokens.RefreshToken)

	requests := ts.received()
	require.Len(t, requests, 1)
	form := requests[0]
	assert.Equal(t, GrantAuthorizationCode, form.Get("grant_type"))
	assert.Equal(t, "the-code", form.Get("code"))
	assert.Equal(t, "app-key", form.Get("client_id"))
	assert.Equal(t, "app-secret", form.Get("client_secret"))
}

func TestRefresh(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, `{"access_token": "sl.access-2", "token_type": "bearer", "expires_in": 14400}`)
	client := NewClient(ts.config(), ts.Client())

	tokens, err := client.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "sl.access-2", tokens.AccessToken)
	assert.Empty(t, tokens.RefreshToken, "the old refresh token must not be reported as new")

	requests := ts.received()
	require.Len(t, requests, 1)
	form := requests[0]
	assert.Equal(t, GrantRefreshToken, form.Get("grant_type"))
	assert.Equal(t, "refresh-1", form.Get("refresh_token"))
	assert.Equal(t, "app-key", form.Get("client_id"))
	assert.Equal(t, "app-secret", form.Get("client_secret"))
}

func TestRefreshReturnsRotatedToken(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, `{"access_token": "sl.access-2", "refresh_token": "refresh-2"}`)
	client := NewClient(ts.config(), ts.Client())

	tokens, err := client.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", tokens.RefreshToken)
}

func TestExchangeErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "bad request",
			status:  http.StatusBadRequest,
			body:    `{"error": "invalid_grant", "error_description": "code doesn't exist or has expired"}`,
			wantMsg: "could not get the response: token endpoint returned status 400",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    "",
			wantMsg: "could not get the response: token endpoint returned status 500",
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"access_token": `,
			wantMsg: "could not get tokens from the request",
		},
		{
			name:    "missing access token",
			status:  http.StatusOK,
			body:    `{"refresh_token": "refresh-1"}`,
			wantMsg: "could not get tokens from the request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTokenServer(t, tt.status, tt.body)
			client := NewClient(ts.config(), ts.Client())

			_, err := client.ExchangeCode(context.Background(), "the-code")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			_, err = client.Refresh(context.Background(), "refresh-1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestExchangeStatusErrorIsInspectable(t *testing.T) {
	ts := newTokenServer(t, http.StatusUnauthorized, `{"error": "invalid_client"}`)
	client := NewClient(ts.config(), ts.Client())

	_, err := client.Refresh(context.Background(), "refresh-1")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, `{"error": "invalid_client"}`, statusErr.Body)
}

func TestExchangeNetworkError(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, `{}`)
	cfg := ts.config()
	ts.Close()

	_, err := NewClient(cfg, nil).ExchangeCode(context.Background(), "the-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not get the response")
}
