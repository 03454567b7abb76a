// Package auth implements the credential primitives of the server: bcrypt
// password hashing and HS256 JWT issuance/verification. The signing key is
// process-wide configuration, loaded once at startup and never mutated or
// logged.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/passvault/passvault/internal/common"
)

// Claims extends the registered JWT claims with the user identifier the
// token is bound to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken mints an HS256 token bound to userID, valid for
// validityDuration from now.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString against secretKey and returns the
// bound user ID. Failure modes are distinct sentinels:
//
//   - common.ErrorMalformedToken — the string does not parse as a JWT
//   - common.ErrorBadSignature — parses, but the signature does not verify
//   - common.ErrorTokenExpired — signature fine, expiry passed
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", common.ErrorMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", common.ErrorBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrorTokenExpired
		default:
			return "", common.ErrorMalformedToken
		}
	}

	if !token.Valid {
		return "", common.ErrorBadSignature
	}

	return claims.UserID, nil
}
