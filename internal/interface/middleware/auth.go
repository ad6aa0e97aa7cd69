package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/schoollib-identity/pkg/helpers"
	"github.com/oksasatya/schoollib-identity/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	ctxPrincipalKey = "principal"
)

// Principal is the caller as described by a verified realm access token.
// ExternalUserID is the token subject, i.e. the identity provider's user id.
type Principal struct {
	ExternalUserID string
	Email          string
	Roles          []string
}

func (p Principal) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if slices.ContainsFunc(p.Roles, func(have string) bool { return strings.EqualFold(have, r) }) {
			return true
		}
	}
	return false
}

type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (Principal, error)
}

// OIDCVerifier checks signature, issuer and expiry against the realm's JWKS.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
	clientID string
}

// NewOIDCVerifier runs discovery against issuer. Keycloak access tokens carry
// "account" as audience, so the client is matched on azp instead of aud.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery %s: %w", issuer, err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{SkipClientIDCheck: true}),
		clientID: clientID,
	}, nil
}

func newOIDCVerifier(v *oidc.IDTokenVerifier, clientID string) *OIDCVerifier {
	return &OIDCVerifier{verifier: v, clientID: clientID}
}

type accessClaims struct {
	Subject           string `json:"sub"`
	Email             string `json:"email"`
	AuthorizedParty   string `json:"azp"`
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

var errWrongClient = errors.New("token issued for another client")

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (Principal, error) {
	tok, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return Principal{}, err
	}
	var claims accessClaims
	if err := tok.Claims(&claims); err != nil {
		return Principal{}, err
	}
	if v.clientID != "" && claims.AuthorizedParty != "" && claims.AuthorizedParty != v.clientID {
		return Principal{}, errWrongClient
	}
	email := claims.Email
	if email == "" {
		email = claims.PreferredUsername
	}
	return Principal{ExternalUserID: claims.Subject, Email: email, Roles: claims.RealmAccess.Roles}, nil
}

// Auth accepts a bearer token or the access_token cookie and stores the
// verified Principal in the Gin context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			response.Error[any](c, http.StatusServiceUnavailable, "authentication unavailable", nil)
			return
		}
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		p, err := verifier.Verify(c.Request.Context(), token)
		if err != nil || p.ExternalUserID == "" {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(ctxPrincipalKey, p)
		c.Set(CtxUserIDKey, p.ExternalUserID)
		c.Set(CtxUserEmailKey, p.Email)
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		if !p.HasAnyRole(roles...) {
			response.Error[any](c, http.StatusForbidden, "insufficient role", nil)
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(ctxPrincipalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if token, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
		return token
	}
	return ""
}
