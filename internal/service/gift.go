package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

const giftSigner = "Santa"

type giftClaims struct {
	Company string `json:"company"`
	Value   string `json:"value"`
	jwt.RegisteredClaims
}

// GiftService seals an arbitrary JSON document into a signed token and opens it again.
type GiftService interface {
	Wrap(payload []byte) (string, error)
	Unwrap(token string) (json.RawMessage, error)
}

type giftService struct {
	secret []byte
	parser *jwt.Parser
}

func NewGiftService(secret string) GiftService {
	return &giftService{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (that *giftService) Wrap(payload []byte) (string, error) {
	if !json.Valid(payload) {
		return "", fmt.Errorf("%w: gift is not valid JSON", apperror.ErrInvalidInput)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrInvalidInput, err)
	}

	claims := giftClaims{
		Company: giftSigner,
		Value:   compact.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: giftSigner,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(that.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign gift: %w", err)
	}

	return token, nil
}

func (that *giftService) Unwrap(token string) (json.RawMessage, error) {
	claims := &giftClaims{}

	_, err := that.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return that.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrUnauthorized, err)
	}

	if !json.Valid([]byte(claims.Value)) {
		return nil, fmt.Errorf("%w: gift payload is not JSON", apperror.ErrUnauthorized)
	}

	return json.RawMessage(claims.Value), nil
}
