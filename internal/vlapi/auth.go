package vlapi

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL bounds the validity of a request token. Tokens are minted per
// request, so a short lifetime is enough.
const tokenTTL = 10 * time.Minute

// signedToken mints the HS256 bearer token the remote API expects: signed
// with the API secret, carrying the API key as subject and key ID.
func signedToken(apiKey, apiSecret string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   apiKey,
		Issuer:    "vl-mcp-server",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = apiKey
	signed, err := token.SignedString([]byte(apiSecret))
	if err != nil {
		return "", fmt.Errorf("sign request token: %w", err)
	}
	return signed, nil
}
