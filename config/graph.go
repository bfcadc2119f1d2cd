package config

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// GraphConfig contains Microsoft Graph configuration shared by the drive and
// mail collaborators. Authentication uses the OAuth2 device-code flow; the
// acquired token is cached on disk so unattended daily runs stay silent once
// the operator has signed in interactively.
type GraphConfig struct {
	// ClientID is the Azure AD application (client) id.
	ClientID string `env:"CLIENT_ID"`
	// TenantID is the Azure AD directory (tenant) id.
	TenantID string `env:"TENANT_ID"`
	// DriveRoot is the drive folder under which process artifacts live,
	// structured as DriveRoot/{apiKey}/{processUUID}/.
	DriveRoot string `env:"DRIVE_ROOT" envDefault:"process_outputs"`
	// TokenCachePath is where the serialized OAuth2 token is persisted.
	// Defaults to ~/.procreport/token.json.
	TokenCachePath string `env:"TOKEN_CACHE_PATH"`
	// BaseURL is the Graph API endpoint, overridable for tests.
	BaseURL string `env:"BASE_URL" envDefault:"https://graph.microsoft.com/v1.0"`
}

// Scopes requested during the device-code flow: drive read for artifact
// lookup, mail send for report delivery, user read for the sender identity.
func (c GraphConfig) Scopes() []string {
	return []string{"Files.Read", "Mail.Send", "User.Read"}
}

// Endpoint returns the Azure AD OAuth2 endpoint for the configured tenant.
func (c GraphConfig) Endpoint() oauth2.Endpoint {
	authority := "https://login.microsoftonline.com/" + c.TenantID
	return oauth2.Endpoint{
		AuthURL:       authority + "/oauth2/v2.0/authorize",
		TokenURL:      authority + "/oauth2/v2.0/token",
		DeviceAuthURL: authority + "/oauth2/v2.0/devicecode",
	}
}

// Validate checks that the fields required for any Graph call are present.
func (c GraphConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("GRAPH_CLIENT_ID is required")
	}
	if c.TenantID == "" {
		return fmt.Errorf("GRAPH_TENANT_ID is required")
	}
	return nil
}

// Sanitize fills derived defaults that cannot be expressed as env tags.
func (c *GraphConfig) Sanitize() {
	if c.TokenCachePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.TokenCachePath = filepath.Join(home, ".procreport", "token.json")
	}
}
