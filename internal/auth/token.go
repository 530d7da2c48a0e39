package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nurpe/vat-invoicing/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	Username  string `json:"username"`
	VATNumber string `json:"vat_number"`
	jwt.RegisteredClaims
}

// Parser issues and verifies HS256 access tokens signed with a shared secret.
type Parser struct {
	secret []byte
	now    func() time.Time
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret), now: time.Now}
}

func (p *Parser) Issue(principal model.Principal, ttl time.Duration) (string, time.Time, error) {
	if principal.UserID == uuid.Nil {
		return "", time.Time{}, fmt.Errorf("issue token: empty subject")
	}
	now := p.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		Username:  principal.Username,
		VATNumber: principal.VATNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (p *Parser) Parse(raw string) (model.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Principal{}, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	)
	var claims Claims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, ErrInvalidToken
	}
	return model.Principal{
		UserID:    userID,
		Username:  claims.Username,
		VATNumber: claims.VATNumber,
	}, nil
}
