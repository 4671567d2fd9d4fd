// Package auth issues and verifies the bearer tokens that identify a player
// to the API. Tokens are PASETO v4.local with the player id as subject.
package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/Ars145/ZarubaProfile-sub000/internal/config"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "zaruba-profile"
	tokenAudience = "zaruba-client"

	keyBytesSize = 32
	keyHexSize   = 64
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	PlayerID  string
	TokenID   string
	ExpiresAt time.Time
}

type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
	ttl          time.Duration
}

func NewTokenServiceFromConfig(cfg *config.Config) (*TokenService, error) {
	return NewTokenService(cfg.AuthTokenKey, cfg.AuthTokenTTL)
}

func NewTokenService(keyHex string, ttl time.Duration) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey: key,
		ttl:          ttl,
	}, nil
}

// Issue creates a token for playerID valid for the configured TTL.
func (s *TokenService) Issue(playerID string) (string, error) {
	if playerID == "" {
		return "", fmt.Errorf("player id is required")
	}

	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(playerID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.ttl))
	token.SetJti(uuid.NewString())

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject, err := token.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	jti, _ := token.GetJti()
	expiresAt, _ := token.GetExpiration()

	return &Claims{
		PlayerID:  subject,
		TokenID:   jti,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
