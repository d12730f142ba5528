package user

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JwtCustomClaims struct {
	Id uuid.UUID `json:"id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs bearer tokens. Claims stay minimal on purpose: the
// subject email and the user id. The profile is looked up per request, so
// a token never carries a stale copy of it.
type TokenIssuer interface {
	GenerateJWT(id uuid.UUID, email string) (string, error)
}

type JWTIssuer struct {
	secret []byte
}

func NewJWTIssuer(secret string) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret)}
}

func (j *JWTIssuer) GenerateJWT(id uuid.UUID, email string) (string, error) {
	claims := JwtCustomClaims{
		Id: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}
