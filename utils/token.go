package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"eduplatform/models"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
)

// Claims is the session token payload.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrTokenMalformed
	}
	return uint(id), nil
}

// GenerateToken signs an HS256 session token for user valid for ttl.
func GenerateToken(user *models.User, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		Name:  user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// VerifyToken validates tokenString and returns its claims.
// Expiry is checked before the signature, and the signature before the payload is trusted,
// so an expired token always reports ErrTokenExpired and any payload edit reports
// ErrTokenInvalidSignature.
func VerifyToken(tokenString, secret string) (*Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, ErrTokenMalformed
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	unverified := &Claims{}
	_, _, decodeErr := parser.ParseUnverified(tokenString, unverified)
	if decodeErr == nil && unverified.ExpiresAt != nil && !time.Now().Before(unverified.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	signingString := parts[0] + "." + parts[1]
	if err := jwt.SigningMethodHS256.Verify(signingString, parts[2], []byte(secret)); err != nil {
		return nil, ErrTokenInvalidSignature
	}
	if decodeErr != nil {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if claims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>" header value.
func ExtractBearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
