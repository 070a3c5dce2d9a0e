package idp

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// authorize follows the authorization URL without following redirects and
// returns the code the provider issues.
func authorize(t *testing.T, authURL, wantState string) string {
	t.Helper()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(authURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode, "authorize must redirect")

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, wantState, loc.Query().Get("state"), "state must round-trip")

	code := loc.Query().Get("code")
	require.NotEmpty(t, code)
	return code
}

func TestFederatedCodeFlow(t *testing.T) {
	provider, err := Start()
	require.NoError(t, err)
	defer provider.Shutdown()

	provider.QueueUser("ana@example.com", "Ana QA")

	ctx := context.Background()
	client, err := NewClient(ctx,
		provider.Issuer(), provider.ClientID(), provider.ClientSecret(),
		"http://127.0.0.1/auth/sso/callback")
	require.NoError(t, err)

	code := authorize(t, client.AuthURL("state-123"), "state-123")

	claims, err := client.Exchange(ctx, code)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", claims.Email)
	require.Equal(t, "Ana QA", claims.Name)
	require.True(t, claims.EmailVerified)
	require.NotEmpty(t, claims.Sub)
}

func TestExchange_BogusCodeFails(t *testing.T) {
	provider, err := Start()
	require.NoError(t, err)
	defer provider.Shutdown()

	ctx := context.Background()
	client, err := NewClient(ctx,
		provider.Issuer(), provider.ClientID(), provider.ClientSecret(),
		"http://127.0.0.1/auth/sso/callback")
	require.NoError(t, err)

	_, err = client.Exchange(ctx, "not-a-real-code")
	require.ErrorIs(t, err, ErrCodeExchangeFailed)
}
