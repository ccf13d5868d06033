package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwellify/dwellify/internal/config"
)

const (
	UserRoleAdmin  = "ADMIN"
	UserRoleOwner  = "OWNER"
	UserRoleTenant = "TENANT"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type ListUsersOption struct {
	Skip   int
	Limit  int
	Name   string
	Role   string
	SortBy string
	SortIn string
}

func (u Usecase) ListUsers(ctx context.Context, opt ListUsersOption) ([]User, int, error) {
	role, ok := ctx.Value(config.CTX_KEY_USER_ROLE).(string)
	if !ok {
		return nil, 0, fmt.Errorf("user role not found in context")
	}
	if role != UserRoleAdmin {
		return nil, 0, fmt.Errorf("only admins may list users")
	}
	return u.repo.ListUsers(ctx, opt)
}

func (u Usecase) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return u.repo.GetUserByID(ctx, id)
}

func (u Usecase) GetMe(ctx context.Context) (User, error) {
	userID, ok := ctx.Value(config.CTX_KEY_USER_ID).(uuid.UUID)
	if !ok {
		return User{}, fmt.Errorf("user id not found in context")
	}
	return u.repo.GetUserByID(ctx, userID)
}

func (u Usecase) CreateUser(ctx context.Context, user User) (User, error) {
	switch user.Role {
	case UserRoleAdmin, UserRoleOwner, UserRoleTenant:
	case "":
		user.Role = UserRoleOwner
	default:
		return User{}, fmt.Errorf("invalid role: %s", user.Role)
	}
	return u.repo.CreateUser(ctx, user)
}

func (u Usecase) UpdateUser(ctx context.Context, user User) (User, error) {
	return u.repo.UpdateUser(ctx, user)
}

func (u Usecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	role, ok := ctx.Value(config.CTX_KEY_USER_ROLE).(string)
	if !ok {
		return fmt.Errorf("user role not found in context")
	}
	if role != UserRoleAdmin {
		return fmt.Errorf("only admins may delete users")
	}
	return u.repo.DeleteUser(ctx, id)
}
