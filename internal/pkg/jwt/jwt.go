package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

var ErrInvalidToken = errors.New("invalid or expired token")

type Service interface {
	GenerateAccessToken(subject string) (token string, expiresAt int64, err error)
	ValidateAccessToken(tokenString string) (subject string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken issues a token for an uploader, e.g. a device export job.
func (j *JWTService) GenerateAccessToken(subject string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, fmt.Errorf("parse access token expiration: %w", err)
	}
	now := j.now()
	expiresAt = now.Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": TokenTypeAccess,
		"iat":  now.Unix(),
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ValidateAccessToken(tokenString string) (subject string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeAccess {
		return "", ErrInvalidToken
	}

	return token.Subject(), nil
}
