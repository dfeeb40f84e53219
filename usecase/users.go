package usecase

import (
	"context"
	"errors"

	"quicknotes/model"
	"quicknotes/repository"
	"quicknotes/services"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	UsersRepo *repository.UserRepo
}

// Register creates a user with a hashed password.
func (svc *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: hash,
	}
	if err := svc.UsersRepo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials. A missing user and a wrong password
// produce the same error.
func (svc *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := svc.UsersRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !services.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ResetPassword replaces a user's password hash.
func (svc *UserService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := services.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return svc.UsersRepo.UpdatePassword(userID, hash)
}
