package github

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// GitHub rejects app JWTs that live longer than ten minutes.
	jwtExpiration = 9 * time.Minute
	// Backdate issuance to tolerate clock drift.
	jwtClockSkew = 60 * time.Second
)

// App authenticates as a GitHub App.
type App struct {
	ID   string
	key  *rsa.PrivateKey
	opts []Option
	now  func() time.Time
}

// NewApp returns an app authenticator for the given app id and private key.
// The options are applied to every client the app hands out.
func NewApp(id string, key *rsa.PrivateKey, opts ...Option) *App {
	return &App{ID: id, key: key, opts: opts, now: time.Now}
}

// ReadPrivateKey loads a PEM encoded RSA private key (PKCS#1 or PKCS#8).
func ReadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("parse private key %s: %w", path, err)
	}
	return key, nil
}

// Token signs a short-lived RS256 JWT identifying the app.
func (a *App) Token() (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.StandardClaims{
		IssuedAt:  now.Add(-jwtClockSkew).Unix(),
		ExpiresAt: now.Add(jwtExpiration).Unix(),
		Issuer:    a.ID,
	})
	signed, err := token.SignedString(a.key)
	if err != nil {
		return "", fmt.Errorf("sign app jwt: %w", err)
	}
	return signed, nil
}

// Client returns a client authenticated as the app itself.
func (a *App) Client() (*Client, error) {
	token, err := a.Token()
	if err != nil {
		return nil, err
	}
	return newClient("Bearer "+token, a.opts...), nil
}

// InstallationForRepo finds the app's installation covering owner/repo.
func (a *App) InstallationForRepo(ctx context.Context, owner, repo string) (*Installation, error) {
	c, err := a.Client()
	if err != nil {
		return nil, err
	}
	var inst Installation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/installation", owner, repo), nil, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// InstallationClient exchanges the app JWT for an installation access token
// and returns a client using it.
func (a *App) InstallationClient(ctx context.Context, installationID int64) (*Client, error) {
	c, err := a.Client()
	if err != nil {
		return nil, err
	}
	var tok accessToken
	path := fmt.Sprintf("/app/installations/%d/access_tokens", installationID)
	if err := c.do(ctx, http.MethodPost, path, nil, &tok); err != nil {
		return nil, err
	}
	if tok.Token == "" {
		return nil, fmt.Errorf("POST %s: response missing token", path)
	}
	return NewTokenClient(tok.Token, a.opts...), nil
}
