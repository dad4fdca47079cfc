package auth

import (
	"context"
	"fmt"
	"os"

	"graphbox/internal/config"
	"graphbox/pkg/models"

	"golang.org/x/oauth2"
)

// DefaultScopes covers everything the console commands touch. offline_access
// is what makes the identity service hand out a refresh token, so a cached
// sign-in survives past the first hour.
var DefaultScopes = []string{
	"User.Read",
	"Mail.Read",
	"Mail.Send",
	"Files.ReadWrite",
	"offline_access",
}

const loginBaseURL = "https://login.microsoftonline.com"

// Endpoint returns the Azure AD v2.0 endpoint for a tenant. "common" admits
// any work/school or personal account.
func Endpoint(tenant string) oauth2.Endpoint {
	if tenant == "" {
		tenant = "common"
	}

	base := loginBaseURL + "/" + tenant

	return oauth2.Endpoint{
		AuthURL:       base + "/oauth2/v2.0/authorize",
		TokenURL:      base + "/oauth2/v2.0/token",
		DeviceAuthURL: base + "/oauth2/v2.0/devicecode",
	}
}

// OAuthConfig maps the app-registration settings onto an oauth2.Config.
func OAuthConfig(cfg models.AuthConfig) *oauth2.Config {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	return &oauth2.Config{
		ClientID: cfg.ClientID,
		Endpoint: Endpoint(cfg.TenantID),
		Scopes:   scopes,
	}
}

// NewTokenSource returns a token source for the configured app. A cached
// token from a previous sign-in is reused (and refreshed transparently);
// otherwise the device-code flow runs interactively on the console.
// Refreshed tokens are written back to the cache.
func NewTokenSource(ctx context.Context, cfg models.AuthConfig) (oauth2.TokenSource, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is not configured")
	}

	oc := OAuthConfig(cfg)

	tokenPath, err := config.GetTokenPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token cache path: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = authorizeDevice(ctx, oc)
		if err != nil {
			return nil, err
		}

		if err := saveToken(tokenPath, tok); err != nil {
			return nil, fmt.Errorf("failed to cache token: %w", err)
		}
	}

	return newSavingSource(oc.TokenSource(ctx, tok), tokenPath, tok), nil
}

// authorizeDevice runs the device-code grant: print the verification URL and
// user code, then poll the token endpoint until the user completes sign-in.
func authorizeDevice(ctx context.Context, oc *oauth2.Config) (*oauth2.Token, error) {
	da, err := oc.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device authorization failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "To sign in, open %s and enter the code %s\n", da.VerificationURI, da.UserCode)

	tok, err := oc.DeviceAccessToken(ctx, da)
	if err != nil {
		return nil, fmt.Errorf("sign-in was not completed: %w", err)
	}

	return tok, nil
}
