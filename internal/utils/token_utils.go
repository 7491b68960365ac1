package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are carried by short-lived access tokens. Subject holds the user id.
type AccessClaims struct {
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the numeric user id out of the subject claim.
func (c AccessClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// RefreshClaims additionally carry the session epoch the token was minted in.
type RefreshClaims struct {
	AccessClaims
	RefreshTokenVersion int `json:"refresh_token_version"`
}

func newAccessClaims(user domain.User, issuer string, now time.Time, expiry time.Duration) AccessClaims {
	return AccessClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
}

// GenerateAccessToken signs an access token for user valid for expiry.
func GenerateAccessToken(user domain.User, secret string, expiry time.Duration, issuer string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newAccessClaims(user, issuer, now, expiry))
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken signs a refresh token bound to the user's current refresh_token_version.
func GenerateRefreshToken(user domain.User, secret string, expiry time.Duration, issuer string, now time.Time) (string, error) {
	claims := RefreshClaims{
		AccessClaims:        newAccessClaims(user, issuer, now, expiry),
		RefreshTokenVersion: user.RefreshTokenVersion,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates signature and standard claims of an access token.
func ParseAccessToken(tokenString string, secretKey string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parseJWT(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefreshToken validates signature and standard claims of a refresh token.
func ParseRefreshToken(tokenString string, secretKey string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parseJWT(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseJWT(tokenString string, secretKey string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return err // This will include errors like token expired, signature invalid, etc.
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	if sub, _ := claims.GetSubject(); sub == "" {
		return errors.New("token has no subject")
	}
	return nil
}
