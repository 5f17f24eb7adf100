// Package auth provides optional HS256 bearer-token authentication for the
// HTTP API. The token subject selects the traveller profile.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/config"
	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/errx"
)

// Claims are the identity carried by an access token.
type Claims struct {
	UserID    string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and validates access tokens.
type JWTService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	return &JWTService{
		secretKey: []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

func NewJWTServiceFromConfig(cfg config.AuthConfig) *JWTService {
	return NewJWTService(cfg.JWTSecret, cfg.Issuer, cfg.TokenTTL)
}

// GenerateToken issues a token whose subject is userID.
func (j *JWTService) GenerateToken(userID, name string) (string, error) {
	now := j.now()
	claims := jwtClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeTokenGeneration, err)
	}
	return signed, nil
}

func (j *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(j.issuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, ErrRegistry.New(CodeTokenInvalid).WithDetail("error", err.Error())
	}

	c, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid || c.Subject == "" {
		return nil, ErrRegistry.New(CodeTokenInvalid).WithDetail("error", "invalid claims")
	}

	claims := &Claims{UserID: c.Subject, Name: c.Name}
	if c.IssuedAt != nil {
		claims.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		claims.ExpiresAt = c.ExpiresAt.Time
	}
	return claims, nil
}

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeUnauthorized    = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeTokenInvalid    = ErrRegistry.Register("TOKEN_INVALID", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeTokenGeneration = ErrRegistry.Register("TOKEN_GENERATION", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
)
