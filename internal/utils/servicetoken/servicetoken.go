// Package servicetoken issues and verifies the HS256 bearer tokens accepted by the ledger API.
// The token subject is the acting identity stamped on every ledger write.
package servicetoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultIssuer is stamped on tokens issued by ledgerctl.
const DefaultIssuer = "erp-ledger"

// Issue signs a token for subject, valid for ttl from now.
func Issue(subject, secret string, ttl time.Duration, issuer string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse verifies the signature and standard time claims of tokenString.
// Only HMAC-signed tokens are accepted.
func Parse(tokenString, secret string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
