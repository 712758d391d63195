package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/internal/users"
	"github.com/rakibulhaque/trendibay-backend/pkg/auth"
	"github.com/rakibulhaque/trendibay-backend/pkg/auth/session"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/security"
)

// Service implements register, login, token refresh, and logout.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (AuthResultDTO, error)
	Login(ctx context.Context, input LoginInput) (AuthResultDTO, error)
	Refresh(ctx context.Context, input RefreshInput) (TokenPairDTO, error)
	Logout(ctx context.Context, refreshToken string) error
	BootstrapAdmin(ctx context.Context, email, secret string) error
}

type service struct {
	userRepo *users.Repository
	hasher   *security.Hasher
	issuer   *auth.TokenIssuer
	sessions *session.Manager
}

func NewService(userRepo *users.Repository, hasher *security.Hasher, issuer *auth.TokenIssuer, sessions *session.Manager) (Service, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("auth: user repository is required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("auth: password hasher is required")
	}
	if issuer == nil {
		return nil, fmt.Errorf("auth: token issuer is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("auth: session manager is required")
	}
	return &service{userRepo: userRepo, hasher: hasher, issuer: issuer, sessions: sessions}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (AuthResultDTO, error) {
	logg := logger.FromContext(ctx)

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return AuthResultDTO{}, errors.Wrap(errors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         enums.UserRoleCustomer,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = &phone
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return AuthResultDTO{}, errors.New(errors.CodeConflict, "email already registered")
		}
		return AuthResultDTO{}, errors.Wrap(errors.CodeInternal, err, "create user")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return AuthResultDTO{}, err
	}

	logg.WithUserID(user.ID.String()).Info("user registered")
	return AuthResultDTO{User: users.ToDTO(user), Tokens: tokens}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (AuthResultDTO, error) {
	logg := logger.FromContext(ctx)

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if db.IsNotFound(err) {
			return AuthResultDTO{}, errors.New(errors.CodeUnauthorized, "invalid credentials")
		}
		return AuthResultDTO{}, errors.Wrap(errors.CodeInternal, err, "load user")
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return AuthResultDTO{}, errors.Wrap(errors.CodeInternal, err, "verify password")
	}
	if !ok {
		return AuthResultDTO{}, errors.New(errors.CodeUnauthorized, "invalid credentials")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return AuthResultDTO{}, err
	}

	logg.WithUserID(user.ID.String()).Info("user logged in")
	return AuthResultDTO{User: users.ToDTO(user), Tokens: tokens}, nil
}

// Refresh rotates the refresh session: the presented token's session is
// revoked and a new pair is issued.
func (s *service) Refresh(ctx context.Context, input RefreshInput) (TokenPairDTO, error) {
	claims, err := s.issuer.Parse(input.RefreshToken, auth.TokenKindRefresh)
	if err != nil {
		return TokenPairDTO{}, errors.New(errors.CodeUnauthorized, "invalid refresh token")
	}

	live, err := s.sessions.Has(ctx, claims.UserID.String(), claims.ID)
	if err != nil {
		return TokenPairDTO{}, errors.Wrap(errors.CodeDependency, err, "check session")
	}
	if !live {
		return TokenPairDTO{}, errors.New(errors.CodeUnauthorized, "session revoked")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return TokenPairDTO{}, errors.New(errors.CodeUnauthorized, "session revoked")
		}
		return TokenPairDTO{}, errors.Wrap(errors.CodeInternal, err, "load user")
	}

	if err := s.sessions.RevokePair(ctx, claims.UserID.String(), claims.ID); err != nil {
		return TokenPairDTO{}, errors.Wrap(errors.CodeDependency, err, "revoke session")
	}

	return s.issueTokens(ctx, user)
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.issuer.Parse(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		// Logout with a dead token is still a successful logout.
		return nil
	}
	if err := s.sessions.RevokePair(ctx, claims.UserID.String(), claims.ID); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "revoke session")
	}
	return nil
}

// BootstrapAdmin ensures the configured first-admin account exists and
// holds the admin role. Runs once at startup; every outcome it can
// reach is safe to re-run.
func (s *service) BootstrapAdmin(ctx context.Context, email, secret string) error {
	logg := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	if secret == "" {
		return errors.New(errors.CodeValidation, "bootstrap admin secret is required when an email is set")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == enums.UserRoleAdmin {
			return nil
		}
		if _, err := s.userRepo.UpdateRole(ctx, existing.ID, enums.UserRoleAdmin); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "promote bootstrap admin")
		}
		logg.WithUserID(existing.ID.String()).Info("bootstrap admin promoted")
		return nil
	}
	if !db.IsNotFound(err) {
		return errors.Wrap(errors.CodeInternal, err, "load bootstrap admin")
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "hash bootstrap secret")
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         enums.UserRoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			// Another instance won the race and did the same work.
			return nil
		}
		return errors.Wrap(errors.CodeInternal, err, "create bootstrap admin")
	}
	logg.WithUserID(user.ID.String()).Info("bootstrap admin created")
	return nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (TokenPairDTO, error) {
	access, err := s.issuer.Issue(user.ID, user.Role, auth.TokenKindAccess)
	if err != nil {
		return TokenPairDTO{}, errors.Wrap(errors.CodeInternal, err, "issue access token")
	}
	refresh, err := s.issuer.Issue(user.ID, user.Role, auth.TokenKindRefresh)
	if err != nil {
		return TokenPairDTO{}, errors.Wrap(errors.CodeInternal, err, "issue refresh token")
	}

	err = s.sessions.CreatePair(ctx, user.ID.String(), access.JTI, s.issuer.AccessTTL(), refresh.JTI, s.issuer.RefreshTTL())
	if err != nil {
		return TokenPairDTO{}, errors.Wrap(errors.CodeDependency, err, "store session")
	}

	return TokenPairDTO{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(time.Until(access.ExpiresAt).Seconds()),
	}, nil
}
