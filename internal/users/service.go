package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
)

// Service exposes account lookups and role administration.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error)
	RoleByEmail(ctx context.Context, email string) (RoleDTO, error)
	GrantAdmin(ctx context.Context, targetID uuid.UUID) (UserDTO, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users: repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return UserDTO{}, errors.New(errors.CodeNotFound, "user not found")
		}
		return UserDTO{}, errors.Wrap(errors.CodeInternal, err, "load user")
	}
	return ToDTO(user), nil
}

// RoleByEmail reports the role recorded for an email, or none for an
// unknown address. Clients use it to decide whether to render admin
// chrome; the server still gates every privileged call.
func (s *service) RoleByEmail(ctx context.Context, email string) (RoleDTO, error) {
	dto := RoleDTO{Email: strings.ToLower(strings.TrimSpace(email))}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return dto, nil
		}
		return RoleDTO{}, errors.Wrap(errors.CodeInternal, err, "load user")
	}

	role := user.Role
	dto.Role = &role
	return dto, nil
}

// GrantAdmin promotes a customer to admin. Promoting an admin again is
// a no-op success.
func (s *service) GrantAdmin(ctx context.Context, targetID uuid.UUID) (UserDTO, error) {
	logg := logger.FromContext(ctx)

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		if db.IsNotFound(err) {
			return UserDTO{}, errors.New(errors.CodeNotFound, "user not found")
		}
		return UserDTO{}, errors.Wrap(errors.CodeInternal, err, "load user")
	}

	if user.Role == enums.UserRoleAdmin {
		return ToDTO(user), nil
	}

	if _, err := s.repo.UpdateRole(ctx, targetID, enums.UserRoleAdmin); err != nil {
		return UserDTO{}, errors.Wrap(errors.CodeInternal, err, "update user role")
	}
	user.Role = enums.UserRoleAdmin

	logg.WithField("target_user_id", targetID.String()).Info("granted admin role")
	return ToDTO(user), nil
}
