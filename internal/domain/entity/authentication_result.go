package entity

import "strings"

const defaultTokenType = "Bearer"

// AuthenticationResult carries the tokens issued by the identity provider.
// It is built per login or refresh and never stored.
type AuthenticationResult struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64
	RefreshExpiresIn int64
	TokenType        string
}

func NewAuthenticationResult(accessToken, refreshToken string, expiresIn, refreshExpiresIn int64, tokenType string) (AuthenticationResult, error) {
	if strings.TrimSpace(accessToken) == "" {
		return AuthenticationResult{}, invalid(ErrInvalidToken, "access token cannot be blank")
	}
	if strings.TrimSpace(refreshToken) == "" {
		return AuthenticationResult{}, invalid(ErrInvalidToken, "refresh token cannot be blank")
	}
	if strings.TrimSpace(tokenType) == "" {
		tokenType = defaultTokenType
	}
	return AuthenticationResult{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        tokenType,
	}, nil
}

// IsAccessTokenExpiringSoon reports whether the access token lifetime is at
// or below thresholdSeconds.
func (r AuthenticationResult) IsAccessTokenExpiringSoon(thresholdSeconds int64) bool {
	return r.ExpiresIn <= thresholdSeconds
}
