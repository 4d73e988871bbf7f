package helpers

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// SignedDetails is the claim set carried by every issued token. Uid is the
// hex user id; name and email ride along so handlers can respond without a
// second lookup.
type SignedDetails struct {
	Uid   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenMaker struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenMaker(secret string) *TokenMaker {
	return &TokenMaker{secret: []byte(secret), ttl: 24 * time.Hour}
}

func (tm *TokenMaker) GenerateToken(uid, name, email string) (string, error) {
	claims := &SignedDetails{
		Uid:   uid,
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

func (tm *TokenMaker) ValidateToken(clientToken string) (*SignedDetails, error) {
	if clientToken == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(
		clientToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return tm.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
