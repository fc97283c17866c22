package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yshalenyk/ordertrack/internal/common"
	"github.com/yshalenyk/ordertrack/internal/dbx"
	"github.com/yshalenyk/ordertrack/internal/logging"
	"github.com/yshalenyk/ordertrack/internal/server/config"
	"github.com/yshalenyk/ordertrack/internal/server/models"
	"github.com/yshalenyk/ordertrack/internal/server/repositories/repomanager"
	"github.com/yshalenyk/ordertrack/internal/server/token"
)

// AuthResult bundles a freshly minted token pair with the identity it was
// issued for.
type AuthResult struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
	User             *models.User
}

// SessionManager orchestrates login, refresh rotation, and logout against
// the token codec and the refresh-token store. It exclusively owns the
// write path to refresh-token records.
type SessionManager struct {
	db           *sql.DB
	repos        repomanager.RepositoryManager
	codec        *token.Codec
	verifier     *CredentialVerifier
	logger       logging.Logger
	storeTimeout time.Duration
}

// NewSessionManager constructs a SessionManager from its collaborators and
// server config.
func NewSessionManager(db *sql.DB, repos repomanager.RepositoryManager, codec *token.Codec,
	verifier *CredentialVerifier, logger logging.Logger, cfg *config.Config) *SessionManager {
	return &SessionManager{
		db:           db,
		repos:        repos,
		codec:        codec,
		verifier:     verifier,
		logger:       logger,
		storeTimeout: cfg.StoreTimeout,
	}
}

// Login verifies the credentials and, on success, issues an access token
// and a refresh token, persisting one active record keyed by the hash of
// the raw refresh secret.
func (s *SessionManager) Login(ctx context.Context, username, plain string) (*AuthResult, error) {
	user, err := s.verifier.Verify(ctx, username, plain)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	result, err := s.issue(ctx, user, s.db)
	if err != nil {
		s.logger.Error(ctx, "login issuance failed", "username", username, "error", err)
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Refresh rotates a refresh token: the presented record is revoked and a
// brand-new record, raw refresh secret, and access token are issued in one
// transaction. A missing, revoked, expired, foreign, or concurrently
// rotated token uniformly yields common.ErrInvalidToken.
func (s *SessionManager) Refresh(ctx context.Context, rawToken string) (*AuthResult, error) {
	subject, err := s.codec.VerifyRefresh(rawToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	hash := token.HashToken(rawToken)

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.RefreshTokens(tx)

		record, err := repo.FindByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("refresh lookup: %w", err)
		}
		if record.UserID != subject || !record.Active(time.Now()) {
			return common.ErrInvalidToken
		}

		revoked, err := repo.Revoke(ctx, record.ID)
		if err != nil {
			return fmt.Errorf("refresh revoke: %w", err)
		}
		if !revoked {
			// Lost the conditional update to a concurrent rotation.
			return common.ErrInvalidToken
		}

		user, err := s.repos.Users(tx).FindByID(ctx, record.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("refresh user lookup: %w", err)
		}

		result, err = s.issue(ctx, user, tx)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "refresh rotation failed", "error", err)
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Logout revokes the record behind rawToken when it belongs to
// expectedUserID. It is idempotent and best-effort: an unverifiable token,
// a missing record, a foreign owner, and a store failure are all silent
// no-ops, so callers can always treat logout as having succeeded.
func (s *SessionManager) Logout(ctx context.Context, rawToken, expectedUserID string) {
	subject, err := s.codec.VerifyRefresh(rawToken)
	if err != nil || subject != expectedUserID {
		return
	}

	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	repo := s.repos.RefreshTokens(s.db)
	record, err := repo.FindByHash(ctx, token.HashToken(rawToken))
	if err != nil {
		return
	}
	if record.UserID != expectedUserID {
		return
	}
	if _, err := repo.Revoke(ctx, record.ID); err != nil {
		s.logger.Warn(ctx, "logout revoke failed", "error", err)
	}
}

// LogoutAll revokes every active refresh record owned by userID.
func (s *SessionManager) LogoutAll(ctx context.Context, userID string) error {
	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()

	if err := s.repos.RefreshTokens(s.db).RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Error(ctx, "revoke all failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// GetIdentity verifies an access token and returns the embedded identity.
// It never touches the store: validating an access token costs no database
// round trip, which also means a single access token cannot be revoked
// before its natural expiry.
func (s *SessionManager) GetIdentity(accessToken string) (*token.Identity, error) {
	return s.codec.VerifyAccess(accessToken)
}

// issue mints a token pair for user and persists the new refresh record
// through the given handle (pool or open transaction).
func (s *SessionManager) issue(ctx context.Context, user *models.User, db dbx.DBTX) (*AuthResult, error) {
	access, err := s.codec.SignAccess(user)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refresh, expiresAt, err := s.codec.SignRefresh(user)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	repo := s.repos.RefreshTokens(db)
	if _, err := repo.Create(ctx, user.ID, token.HashToken(refresh), expiresAt); err != nil {
		return nil, fmt.Errorf("storing refresh record: %w", err)
	}

	return &AuthResult{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: expiresAt,
		User:             user,
	}, nil
}

// withStoreTimeout bounds store interactions so a hung database never
// leaves a caller assuming a rotation succeeded.
func (s *SessionManager) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}
