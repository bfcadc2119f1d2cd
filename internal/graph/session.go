// Package graph implements the Microsoft Graph collaborators: an explicit
// authenticated session plus thin clients for drive artifact lookup and mail
// delivery. All process-wide authentication state lives in the Session
// object; nothing here is ambient or global, so tests can substitute a fake
// session without touching real credentials.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/perceptionlabs/procreport/config"
	"golang.org/x/oauth2"
)

// Session owns the OAuth2 token state for Graph calls. Construct it once per
// run with NewSession and dispose it with Close, which persists the latest
// token back to the cache file.
type Session struct {
	cfg       config.GraphConfig
	source    oauth2.TokenSource
	client    *http.Client
	userEmail string
	logger    *slog.Logger
}

// SessionOptions holds the dependencies for creating a Session.
type SessionOptions struct {
	Config config.GraphConfig
	Logger *slog.Logger
	// Prompt receives the device-code sign-in instructions when no cached
	// token is usable. Defaults to os.Stderr: the instructions are for the
	// operator, not the structured log stream.
	Prompt io.Writer
}

// NewSession authenticates against Azure AD. Order of preference: cached
// token (silently refreshed when expired), then the interactive device-code
// flow. The cache file is rewritten whenever the token changes.
func NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	prompt := opts.Prompt
	if prompt == nil {
		prompt = os.Stderr
	}

	oc := &oauth2.Config{
		ClientID: opts.Config.ClientID,
		Endpoint: opts.Config.Endpoint(),
		Scopes:   opts.Config.Scopes(),
	}

	token, err := acquireToken(ctx, oc, opts.Config.TokenCachePath, prompt, logger)
	if err != nil {
		return nil, err
	}

	source := &savingTokenSource{
		path:   opts.Config.TokenCachePath,
		inner:  oc.TokenSource(ctx, token),
		last:   token,
		logger: logger,
	}

	return &Session{
		cfg:    opts.Config,
		source: source,
		client: oauth2.NewClient(ctx, source),
		logger: logger,
	}, nil
}

// acquireToken loads a cached token when one exists and still refreshes,
// falling back to the device-code flow.
func acquireToken(
	ctx context.Context,
	oc *oauth2.Config,
	cachePath string,
	prompt io.Writer,
	logger *slog.Logger,
) (*oauth2.Token, error) {
	if cached, loadErr := loadToken(cachePath); loadErr == nil {
		// TokenSource refreshes expired tokens transparently when a refresh
		// token is present.
		if tok, refreshErr := oc.TokenSource(ctx, cached).Token(); refreshErr == nil {
			logger.Info("using cached graph token", "cache", cachePath)
			return tok, nil
		}
		logger.Info("cached graph token unusable, starting device flow", "cache", cachePath)
	}

	da, err := oc.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("start device flow: %w", err)
	}
	fmt.Fprintf(prompt, "\nTo sign in, visit %s and enter the code %s\n\n",
		da.VerificationURI, da.UserCode)

	token, err := oc.DeviceAccessToken(ctx, da)
	if err != nil {
		return nil, fmt.Errorf("complete device flow: %w", err)
	}
	if saveErr := saveToken(cachePath, token); saveErr != nil {
		logger.Warn("could not persist graph token", "error", saveErr)
	}
	return token, nil
}

// Client returns the authenticated HTTP client for Graph calls.
func (s *Session) Client() *http.Client {
	return s.client
}

// UserEmail resolves the authenticated identity's address from the /me
// profile, preferring the mailbox address over the principal name. The
// result is cached for the session's lifetime.
func (s *Session) UserEmail(ctx context.Context) (string, error) {
	if s.userEmail != "" {
		return s.userEmail, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/me", nil)
	if err != nil {
		return "", fmt.Errorf("build /me request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch /me profile: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch /me profile: unexpected status %d", resp.StatusCode)
	}

	var profile any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&profile); decodeErr != nil {
		return "", fmt.Errorf("decode /me profile: %w", decodeErr)
	}
	result, err := jmespath.Search("mail || userPrincipalName", profile)
	if err != nil {
		return "", fmt.Errorf("extract user email: %w", err)
	}
	email, ok := result.(string)
	if !ok || email == "" {
		return "", errors.New("profile has no usable email address")
	}
	s.userEmail = email
	return email, nil
}

// Close persists the latest token state. Safe to call on a nil session.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	if src, ok := s.source.(*savingTokenSource); ok {
		return src.flush()
	}
	return nil
}

// savingTokenSource wraps a TokenSource and rewrites the cache file whenever
// the access token changes (e.g. after a silent refresh mid-run).
type savingTokenSource struct {
	path   string
	inner  oauth2.TokenSource
	last   *oauth2.Token
	logger *slog.Logger
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.inner.Token()
	if err != nil {
		return nil, err
	}
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		s.last = tok
		if saveErr := saveToken(s.path, tok); saveErr != nil {
			s.logger.Warn("could not persist refreshed graph token", "error", saveErr)
		}
	}
	return tok, nil
}

func (s *savingTokenSource) flush() error {
	if s.last == nil {
		return nil
	}
	return saveToken(s.path, s.last)
}

// loadToken reads a serialized token from the cache file.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if unmarshalErr := json.Unmarshal(data, &tok); unmarshalErr != nil {
		return nil, fmt.Errorf("parse token cache %s: %w", path, unmarshalErr)
	}
	return &tok, nil
}

// saveToken writes the token to the cache file with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create token cache dir: %w", err)
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("serialize token: %w", err)
	}
	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return fmt.Errorf("write token cache %s: %w", path, writeErr)
	}
	return nil
}
