// Package auth implements issuance, validation, and revocation of bearer
// session tokens.
package auth

import (
	"context"
	"strconv"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService signs and verifies session tokens. A token is live only
// while both checks pass: the HMAC signature proves authenticity, and a
// matching session row proves the token has not been revoked. Tokens carry
// no expiry; deleting the session row is the one way to kill them.
type TokenService struct {
	secret   []byte
	users    repository.UserRepository
	sessions repository.SessionRepository
}

// NewTokenService returns a TokenService signing with the given secret.
func NewTokenService(secret string, users repository.UserRepository, sessions repository.SessionRepository) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		users:    users,
		sessions: sessions,
	}
}

// Issue signs a new token for the user and records it as a session.
func (s *TokenService) Issue(ctx context.Context, userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": now.Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if err := s.sessions.Create(ctx, &models.Session{UserID: userID, Token: signed}); err != nil {
		return "", err
	}
	return signed, nil
}

// Validate resolves a raw token to its user. It returns the matched token
// string alongside the user so single-token logout can revoke exactly the
// credential that was presented.
func (s *TokenService) Validate(ctx context.Context, raw string) (*models.User, string, error) {
	userID, err := s.verifySignature(raw)
	if err != nil {
		return nil, "", err
	}

	// Signature alone is not enough: the session row is the source of
	// truth for revocation.
	live, err := s.sessions.Exists(ctx, userID, raw)
	if err != nil {
		return nil, "", err
	}
	if !live {
		return nil, "", models.NewUnauthorizedError("Token has been revoked")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", models.NewUnauthorizedError("Invalid token")
	}
	return user, raw, nil
}

// Revoke removes one session, invalidating that exact token.
func (s *TokenService) Revoke(ctx context.Context, userID uint, token string) error {
	return s.sessions.DeleteByToken(ctx, userID, token)
}

// RevokeAll removes every session for the user.
func (s *TokenService) RevokeAll(ctx context.Context, userID uint) error {
	return s.sessions.DeleteAllForUser(ctx, userID)
}

// verifySignature checks the HMAC signature and extracts the subject user ID.
func (s *TokenService) verifySignature(raw string) (uint, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.NewUnauthorizedError("Invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token subject")
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(userID), nil
}
