package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger}
}

// Issue creates an access/refresh pair and persists the refresh token state.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	now := time.Now()
	rt := model.RefreshToken{
		ID:        uuid.New(),
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.manager.RefreshTTL()),
		RevokedAt: nil,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return "", "", fmt.Errorf("persist refresh: %w", err)
	}

	return access, refresh, nil
}

// Refresh rotates the presented refresh token: the old JTI is revoked and a
// new pair is issued. Presenting an already-revoked token is treated as
// reuse of a stolen credential and kills every live token of the user.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (newAccess string, newRefresh string, err error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return "", "", err
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		return "", "", err
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), time.Now()); err != nil {
		if errors.Is(err, model.ErrTokenRevoked) {
			// A revoked token resurfacing means the credential leaked at
			// some point in its rotation chain. Record how far the chain
			// had rotated past it, then kill every session of the user.
			rotations, countErr := s.store.CountRotations(ctx, jti)
			if countErr != nil {
				s.logger.Error("Token service: failed to count token rotations",
					"jti", jti,
					"error", countErr.Error())
			}
			s.logger.Info("Token service: revoked refresh token reused, revoking all user sessions",
				"user_id", userID.String(),
				"jti", jti,
				"rotations_since", rotations)

			revoked, revokeErr := s.store.RevokeAllByUser(ctx, userID)
			if revokeErr != nil {
				s.logger.Error("Token service: failed to revoke user sessions",
					"user_id", userID.String(),
					"error", revokeErr.Error())
			} else {
				s.logger.Info("Token service: user sessions revoked",
					"user_id", userID.String(),
					"revoked", revoked)
			}
		}
		return "", "", err
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return "", "", fmt.Errorf("revoke old refresh: %w", err)
	}

	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue new access: %w", err)
	}

	refresh, newJTI, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue new refresh: %w", err)
	}

	now := time.Now()
	rotatedFrom := rt.JTI
	newRT := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            newJTI,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.manager.RefreshTTL()),
		RevokedAt:      nil,
		RotatedFromJTI: &rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Create(ctx, newRT); err != nil {
		return "", "", fmt.Errorf("persist rotated refresh: %w", err)
	}

	return access, refresh, nil
}

// RevokeByToken revokes the refresh token presented at logout. Access tokens
// already in the wild stay valid until natural expiry; only the refresh
// chain dies here.
func (s *TokenService) RevokeByToken(ctx context.Context, refreshToken string) error {
	_, jti, err := s.manager.ParseRefreshToken(refreshToken)
	if err != nil {
		return err
	}
	return s.store.RevokeByJTI(ctx, jti)
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.store.RevokeAllByUser(ctx, userID)
	return err
}

// PurgeExpired deletes refresh token rows past their expiry. Run it
// periodically; expired rows are dead weight the validation path never
// resurrects.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("purge expired refresh tokens: %w", err)
	}
	return deleted, nil
}

// GetUserID resolves the subject of a bearer access token.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if !equalBytes(rt.TokenHash, presentedHash) {
		return model.ErrTokenMismatch
	}
	return nil
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
