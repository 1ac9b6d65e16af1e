package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const issuer = "recyclepay"

var ErrInvalidToken = errors.New("invalid token")

type JWTServiceInterface interface {
	GenerateJWT(accountID, role string, expirationTime time.Time) (string, *Claims, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims identify an account and carry a token id (jti) so that single
// tokens can be revoked.
type Claims struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
	jwt.StandardClaims
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

func (s *JWTService) GenerateJWT(accountID, role string, expirationTime time.Time) (string, *Claims, error) {
	claims := &Claims{
		AccountID: accountID,
		Role:      role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expirationTime.Unix(),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.AccountID == "" || claims.Id == "" || claims.Issuer != issuer {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
