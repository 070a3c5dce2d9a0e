// Package idp provides the federated identity provider used by login flows:
// a real OIDC server (mockoidc) standing in for the third-party IdP, and a
// relying-party client that exchanges authorization codes and verifies ID
// tokens the way the driven product's backend would.
package idp

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/oauth2-proxy/mockoidc"
	"golang.org/x/oauth2"

	"github.com/quorumhq/quorum-e2e/internal/obs"
)

var log = obs.Pkg("idp")

// ErrCodeExchangeFailed marks a failed authorization-code exchange.
var ErrCodeExchangeFailed = errors.New("oidc code exchange failed")

// Claims are the identity claims the harness cares about.
type Claims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
}

// Provider is a running OIDC identity provider.
type Provider struct {
	m *mockoidc.MockOIDC
}

// Start launches the provider on an ephemeral port.
func Start() (*Provider, error) {
	m, err := mockoidc.Run()
	if err != nil {
		return nil, fmt.Errorf("start mock OIDC server: %w", err)
	}
	log.Info("identity provider up", "issuer", m.Issuer())
	return &Provider{m: m}, nil
}

// Issuer returns the provider's issuer URL.
func (p *Provider) Issuer() string {
	return p.m.Issuer()
}

// ClientID returns the registered client ID.
func (p *Provider) ClientID() string {
	return p.m.ClientID
}

// ClientSecret returns the registered client secret.
func (p *Provider) ClientSecret() string {
	return p.m.ClientSecret
}

// QueueUser enqueues the identity returned by the next authorization.
func (p *Provider) QueueUser(email, name string) {
	p.m.QueueUser(&mockoidc.MockUser{
		Subject:           "idp-" + email,
		Email:             email,
		PreferredUsername: name,
		EmailVerified:     true,
	})
}

// Shutdown stops the provider.
func (p *Provider) Shutdown() error {
	return p.m.Shutdown()
}

// Client is the relying-party side of the federated login.
type Client struct {
	verifier    *oidc.IDTokenVerifier
	oauthConfig *oauth2.Config
}

// NewClient discovers the issuer and configures code exchange.
func NewClient(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (*Client, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	oauthConfig := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}
	return &Client{verifier: verifier, oauthConfig: oauthConfig}, nil
}

// AuthURL returns the authorization URL carrying state.
func (c *Client) AuthURL(state string) string {
	return c.oauthConfig.AuthCodeURL(state)
}

// Exchange trades an authorization code for verified ID token claims.
func (c *Client) Exchange(ctx context.Context, code string) (*Claims, error) {
	token, err := c.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeExchangeFailed, err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing id_token in token response", ErrCodeExchangeFailed)
	}
	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: id_token verification failed: %v", ErrCodeExchangeFailed, err)
	}

	var claims struct {
		Email             string `json:"email"`
		EmailVerified     bool   `json:"email_verified"`
		PreferredUsername string `json:"preferred_username"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %v", ErrCodeExchangeFailed, err)
	}
	return &Claims{
		Sub:           idToken.Subject,
		Email:         claims.Email,
		Name:          claims.PreferredUsername,
		EmailVerified: claims.EmailVerified,
	}, nil
}
