// Package keycloak adapts the Keycloak admin REST API and the realm's OpenID
// Connect token endpoint to identity.Provider.
package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/oksasatya/schoollib-identity/internal/domain/entity"
	"github.com/oksasatya/schoollib-identity/internal/domain/identity"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

const (
	actionUpdatePassword = "UPDATE_PASSWORD"
	maxErrorBody         = 512
)

type Config struct {
	ServerURL         string
	Realm             string
	AdminRealm        string
	AdminClientID     string
	AdminClientSecret string
	AdminUsername     string
	AdminPassword     string
	TokenClientID     string
	TokenClientSecret string
	Timeout           time.Duration
	// VerificationRequired leaves new users with emailVerified=false.
	VerificationRequired bool
	// VerificationLifespan bounds the verification link; zero keeps the realm default.
	VerificationLifespan time.Duration
}

func (c Config) realmURL(realm string) string {
	return strings.TrimRight(c.ServerURL, "/") + "/realms/" + url.PathEscape(realm)
}

func (c Config) tokenURL(realm string) string {
	return c.realmURL(realm) + "/protocol/openid-connect/token"
}

func (c Config) adminURL() string {
	return strings.TrimRight(c.ServerURL, "/") + "/admin/realms/" + url.PathEscape(c.Realm)
}

// Client implements identity.Provider. Admin calls go through an oauth2 client
// that fetches and renews the admin token on demand.
type Client struct {
	cfg    Config
	base   *http.Client
	admin  *http.Client
	tokens oauth2.Config
	logger *logrus.Logger
}

func New(cfg Config, logger *logrus.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.AdminRealm == "" {
		cfg.AdminRealm = "master"
	}
	base := &http.Client{Timeout: cfg.Timeout}
	// oauth2 picks the HTTP client for token requests out of the context
	baseCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	return &Client{
		cfg:    cfg,
		base:   base,
		admin:  oauth2.NewClient(baseCtx, adminTokenSource(baseCtx, cfg)),
		tokens: oauth2.Config{ClientID: cfg.TokenClientID, ClientSecret: cfg.TokenClientSecret, Endpoint: oauth2.Endpoint{TokenURL: cfg.tokenURL(cfg.Realm)}},
		logger: logger,
	}
}

var _ identity.Provider = (*Client)(nil)

// adminTokenSource uses client credentials when a secret is configured and the
// admin user's password otherwise.
func adminTokenSource(ctx context.Context, cfg Config) oauth2.TokenSource {
	if cfg.AdminClientSecret != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.AdminClientID,
			ClientSecret: cfg.AdminClientSecret,
			TokenURL:     cfg.tokenURL(cfg.AdminRealm),
		}
		return cc.TokenSource(ctx)
	}
	return oauth2.ReuseTokenSource(nil, &passwordSource{
		ctx: ctx,
		conf: &oauth2.Config{
			ClientID: cfg.AdminClientID,
			Endpoint: oauth2.Endpoint{TokenURL: cfg.tokenURL(cfg.AdminRealm), AuthStyle: oauth2.AuthStyleInParams},
		},
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
	})
}

// passwordSource logs in again on every renewal; admin refresh tokens are
// short-lived in Keycloak.
type passwordSource struct {
	ctx                context.Context
	conf               *oauth2.Config
	username, password string
}

func (s *passwordSource) Token() (*oauth2.Token, error) {
	return s.conf.PasswordCredentialsToken(s.ctx, s.username, s.password)
}

type userRepresentation struct {
	ID            string              `json:"id,omitempty"`
	Username      string              `json:"username,omitempty"`
	Email         string              `json:"email,omitempty"`
	FirstName     string              `json:"firstName,omitempty"`
	LastName      string              `json:"lastName,omitempty"`
	Enabled       bool                `json:"enabled"`
	EmailVerified bool                `json:"emailVerified"`
	Attributes    map[string][]string `json:"attributes,omitempty"`
	Credentials   []credential        `json:"credentials,omitempty"`
}

type credential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

type roleRepresentation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) CreateUser(ctx context.Context, email, password, firstName, lastName string, attrs identity.Attributes) (string, error) {
	user := userRepresentation{
		Username:      email,
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		Enabled:       true,
		EmailVerified: !c.cfg.VerificationRequired,
		Attributes:    attrs,
		Credentials:   []credential{{Type: "password", Value: password, Temporary: false}},
	}
	res, err := c.adminDo(ctx, http.MethodPost, "/users", nil, user)
	if err != nil {
		return "", providerError("create user", err)
	}
	defer drain(res)
	if res.StatusCode != http.StatusCreated {
		return "", providerError("create user", statusError(res))
	}
	id := path.Base(res.Header.Get("Location"))
	if id == "" || id == "." || id == "/" {
		return "", providerError("create user", errors.New("missing Location header"))
	}
	c.log().WithField("external_user_id", id).Debug("keycloak user created")
	return id, nil
}

func (c *Client) IsEmailRegistered(ctx context.Context, email string) (bool, error) {
	id, err := c.findUserIDByEmail(ctx, email)
	if err != nil {
		return false, providerError("search user", err)
	}
	return id != "", nil
}

func (c *Client) AssignRole(ctx context.Context, externalUserID, roleName string) error {
	role, err := c.loadRole(ctx, roleName)
	if err != nil {
		return err
	}
	return c.changeRoleMappings(ctx, http.MethodPost, "assign role", externalUserID, []roleRepresentation{role})
}

// ReplaceRole removes every other library role from the user's realm mappings
// and maps roleName if it is missing. Realm roles outside the library set are
// left alone.
func (c *Client) ReplaceRole(ctx context.Context, externalUserID, roleName string) error {
	role, err := c.loadRole(ctx, roleName)
	if err != nil {
		return err
	}

	res, err := c.adminDo(ctx, http.MethodGet, roleMappingPath(externalUserID), nil, nil)
	if err != nil {
		return providerError("load role mappings", err)
	}
	var mapped []roleRepresentation
	if err := decode(res, http.StatusOK, &mapped); err != nil {
		return providerError("load role mappings", err)
	}

	var stale []roleRepresentation
	present := false
	for _, r := range mapped {
		switch {
		case r.Name == role.Name:
			present = true
		case entity.UserRole(r.Name).IsValid():
			stale = append(stale, r)
		}
	}
	if len(stale) > 0 {
		if err := c.changeRoleMappings(ctx, http.MethodDelete, "remove roles", externalUserID, stale); err != nil {
			return err
		}
	}
	if present {
		return nil
	}
	return c.changeRoleMappings(ctx, http.MethodPost, "assign role", externalUserID, []roleRepresentation{role})
}

func (c *Client) loadRole(ctx context.Context, roleName string) (roleRepresentation, error) {
	res, err := c.adminDo(ctx, http.MethodGet, "/roles/"+url.PathEscape(roleName), nil, nil)
	if err != nil {
		return roleRepresentation{}, providerError("load role", err)
	}
	var role roleRepresentation
	if err := decode(res, http.StatusOK, &role); err != nil {
		return roleRepresentation{}, providerError("load role "+roleName, err)
	}
	return role, nil
}

func (c *Client) changeRoleMappings(ctx context.Context, method, op, externalUserID string, roles []roleRepresentation) error {
	res, err := c.adminDo(ctx, method, roleMappingPath(externalUserID), nil, roles)
	if err != nil {
		return providerError(op, err)
	}
	defer drain(res)
	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return providerError(op, statusError(res))
	}
	return nil
}

func roleMappingPath(externalUserID string) string {
	return "/users/" + url.PathEscape(externalUserID) + "/role-mappings/realm"
}

// SetUserEnabled flips the user's enabled flag. Disabling also logs the user
// out of every session so refresh tokens stop working.
func (c *Client) SetUserEnabled(ctx context.Context, externalUserID string, enabled bool) error {
	userPath := "/users/" + url.PathEscape(externalUserID)
	res, err := c.adminDo(ctx, http.MethodPut, userPath, nil, map[string]bool{"enabled": enabled})
	if err != nil {
		return providerError("update user", err)
	}
	defer drain(res)
	switch res.StatusCode {
	case http.StatusNoContent, http.StatusOK:
	case http.StatusNotFound:
		return identity.ErrUserNotFound
	default:
		return providerError("update user", statusError(res))
	}
	if enabled {
		return nil
	}

	res, err = c.adminDo(ctx, http.MethodPost, userPath+"/logout", nil, nil)
	if err != nil {
		return providerError("logout user", err)
	}
	defer drain(res)
	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return providerError("logout user", statusError(res))
	}
	return nil
}

func (c *Client) SendVerificationEmail(ctx context.Context, externalUserID string) error {
	var q url.Values
	if c.cfg.VerificationLifespan > 0 {
		q = url.Values{"lifespan": {strconv.Itoa(int(c.cfg.VerificationLifespan.Seconds()))}}
	}
	res, err := c.adminDo(ctx, http.MethodPut, "/users/"+url.PathEscape(externalUserID)+"/send-verify-email", q, nil)
	if err != nil {
		return providerError("send verification email", err)
	}
	defer drain(res)
	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return providerError("send verification email", statusError(res))
	}
	return nil
}

func (c *Client) AuthenticateWithCredentials(ctx context.Context, email, password string) (entity.AuthenticationResult, error) {
	tok, err := c.tokens.PasswordCredentialsToken(c.tokenCtx(ctx), email, password)
	if err != nil {
		if isClientError(err) {
			return entity.AuthenticationResult{}, identity.ErrInvalidCredentials
		}
		return entity.AuthenticationResult{}, providerError("authenticate", err)
	}
	return toResult(tok)
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (entity.AuthenticationResult, error) {
	// an empty access token forces the source to run the refresh grant
	tok, err := c.tokens.TokenSource(c.tokenCtx(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		if isClientError(err) {
			return entity.AuthenticationResult{}, identity.ErrInvalidRefreshToken
		}
		return entity.AuthenticationResult{}, providerError("refresh token", err)
	}
	return toResult(tok)
}

// SendPasswordResetEmail returns nil when no account has the email.
func (c *Client) SendPasswordResetEmail(ctx context.Context, email string) error {
	id, err := c.findUserIDByEmail(ctx, email)
	if err != nil {
		return resetError(err)
	}
	if id == "" {
		c.log().Debug("password reset requested for unknown keycloak user")
		return nil
	}
	res, err := c.adminDo(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/execute-actions-email", nil, []string{actionUpdatePassword})
	if err != nil {
		return resetError(err)
	}
	defer drain(res)
	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusOK {
		return resetError(statusError(res))
	}
	return nil
}

func (c *Client) ResetUserPassword(ctx context.Context, externalUserID, newPassword string) error {
	res, err := c.adminDo(ctx, http.MethodPut, "/users/"+url.PathEscape(externalUserID)+"/reset-password", nil,
		credential{Type: "password", Value: newPassword, Temporary: false})
	if err != nil {
		return resetError(err)
	}
	defer drain(res)
	switch res.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return identity.ErrUserNotFound
	default:
		return resetError(statusError(res))
	}
}

// DeleteUser treats an already missing user as deleted.
func (c *Client) DeleteUser(ctx context.Context, externalUserID string) error {
	res, err := c.adminDo(ctx, http.MethodDelete, "/users/"+url.PathEscape(externalUserID), nil, nil)
	if err != nil {
		return providerError("delete user", err)
	}
	defer drain(res)
	switch res.StatusCode {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound:
		return nil
	default:
		return providerError("delete user", statusError(res))
	}
}

func (c *Client) findUserIDByEmail(ctx context.Context, email string) (string, error) {
	q := url.Values{"email": {email}, "exact": {"true"}}
	res, err := c.adminDo(ctx, http.MethodGet, "/users", q, nil)
	if err != nil {
		return "", err
	}
	var users []userRepresentation
	if err := decode(res, http.StatusOK, &users); err != nil {
		return "", err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u.ID, nil
		}
	}
	return "", nil
}

func (c *Client) adminDo(ctx context.Context, method, p string, q url.Values, body any) (*http.Response, error) {
	u := c.cfg.adminURL() + p
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.admin.Do(req)
}

// tokenCtx carries the request's deadline and our HTTP client into oauth2.
func (c *Client) tokenCtx(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.base)
}

func (c *Client) log() *logrus.Entry {
	if c.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return logrus.NewEntry(l)
	}
	return c.logger.WithField("component", "keycloak")
}

func toResult(tok *oauth2.Token) (entity.AuthenticationResult, error) {
	expiresIn := tok.ExpiresIn
	if expiresIn == 0 && !tok.Expiry.IsZero() {
		expiresIn = int64(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	res, err := entity.NewAuthenticationResult(tok.AccessToken, tok.RefreshToken, expiresIn, extraInt(tok, "refresh_expires_in"), tok.TokenType)
	if err != nil {
		return entity.AuthenticationResult{}, providerError("token response", err)
	}
	return res, nil
}

func extraInt(tok *oauth2.Token, key string) int64 {
	switch v := tok.Extra(key).(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		var n int64
		_, _ = fmt.Sscan(v, &n)
		return n
	}
	return 0
}

// isClientError reports a 400 or 401 from the token endpoint.
func isClientError(err error) bool {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) || re.Response == nil {
		return false
	}
	return re.Response.StatusCode == http.StatusBadRequest || re.Response.StatusCode == http.StatusUnauthorized
}

func providerError(op string, err error) error {
	return apperror.Wrap(fmt.Errorf("keycloak %s: %w", op, err), apperror.CodeProvider, "identity provider request failed")
}

func resetError(err error) error {
	return apperror.Wrap(fmt.Errorf("keycloak password reset: %w", err), apperror.CodePasswordReset, "password reset failed")
}

func statusError(res *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return fmt.Errorf("unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
}

func decode(res *http.Response, want int, v any) error {
	defer drain(res)
	if res.StatusCode != want {
		return statusError(res)
	}
	return json.NewDecoder(res.Body).Decode(v)
}

func drain(res *http.Response) {
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
