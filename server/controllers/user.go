package controllers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql/dao"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
	"github.com/teamcbatch1/conceptclarity/server/sources/storage"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

type UserController struct {
	userDAO *dao.UserDAO

	// avatars is nil when no object store is configured; avatar uploads then
	// return an error while the rest of profile management keeps working.
	avatars *storage.AvatarStore
}

func NewUserController(userDAO *dao.UserDAO, avatars *storage.AvatarStore) *UserController {
	return &UserController{userDAO: userDAO, avatars: avatars}
}

func (c *UserController) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := c.userDAO.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: User not found", ErrNotFound)
	}
	return user, nil
}

func (c *UserController) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return c.userDAO.GetAllUsers(ctx)
}

// UpdateUser changes profile fields. Username and email must stay unique, and
// password changes go through the same policy as registration.
func (c *UserController) UpdateUser(ctx context.Context, id int, req types.UpdateUserRequest) (*models.User, error) {
	user, err := c.userDAO.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: User not found", ErrNotFound)
	}

	if req.Username != "" && req.Username != user.Username {
		existing, err := c.userDAO.GetUserByUsername(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: Username unavailable. Please choose another.", ErrBadRequest)
		}
		user.Username = req.Username
	}

	if req.Email != "" && strings.ToLower(req.Email) != user.Email {
		email := strings.ToLower(req.Email)
		existing, err := c.userDAO.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: Email already registered. Please use another.", ErrBadRequest)
		}
		user.Email = email
	}

	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if req.NewPassword != "" {
		if req.NewPassword != req.ConfirmNewPassword {
			return nil, fmt.Errorf("%w: Passwords do not match", ErrBadRequest)
		}
		if !ValidatePassword(req.NewPassword) {
			return nil, fmt.Errorf("%w: %s", ErrBadRequest, passwordPolicyMessage)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := c.userDAO.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *UserController) DeleteUser(ctx context.Context, id int) error {
	deleted, err := c.userDAO.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: User not found", ErrNotFound)
	}
	return nil
}

// UploadAvatar stores the image and records its URL on the user row.
func (c *UserController) UploadAvatar(ctx context.Context, id int, reader io.Reader, size int64, contentType string) (*models.User, error) {
	if c.avatars == nil {
		return nil, fmt.Errorf("%w: avatar storage is not configured", ErrBadRequest)
	}

	user, err := c.userDAO.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: User not found", ErrNotFound)
	}

	url, err := c.avatars.UploadAvatar(ctx, id, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	if err := c.userDAO.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
