package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"translate-chat/domain"
)

// CustomClaims defines the structure of the data stored inside a locally
// minted JWT.
type CustomClaims struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}

// LocalVendor mints HS256 credentials locally. It stands in for the hosted
// token endpoint when running against a local stack; the credentials it
// issues carry the same shape and expiry semantics.
type LocalVendor struct {
	secret []byte
	ttl    time.Duration
}

func NewLocalVendor(secret string, ttl time.Duration) *LocalVendor {
	return &LocalVendor{secret: []byte(secret), ttl: ttl}
}

// IssueToken creates a signed JWT for the user and wraps it as a Credential.
func (v *LocalVendor) IssueToken(_ context.Context, userName string, userID uuid.UUID) (domain.Credential, error) {
	expirationTime := time.Now().Add(v.ttl)

	claims := &CustomClaims{
		UserID:   userID.String(),
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "translate-chat",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return domain.Credential{}, err
	}
	return domain.Credential{Token: signed, ExpiresAt: expirationTime}, nil
}

// Validate parses and validates the signature and expiration of a locally
// minted token.
func (v *LocalVendor) Validate(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
