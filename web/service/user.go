// Package service implements the user CRUD operations over the database.
package service

import (
	"errors"

	"userpanel/database"
	"userpanel/database/model"
	"userpanel/logger"
	"userpanel/util/crypto"
)

var (
	// ErrUsernameTaken is returned when a username would collide with a
	// different existing account.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUserNotFound is returned when the target account does not exist.
	ErrUserNotFound = errors.New("user not found")
)

type UserService struct{}

// Register creates a new account with a bcrypt-hashed password. An empty role
// defaults to "user"; any other value is stored verbatim.
func (s *UserService) Register(username string, password string, role string) (*model.User, error) {
	if role == "" {
		role = "user"
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	err = database.GetDB().Create(user).Error
	if database.IsDuplicate(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the matching user, or nil on unknown username or wrong
// password. Callers must not reveal which of the two failed.
func (s *UserService) Authenticate(username string, password string) *model.User {
	user, err := s.GetUserByUsername(username)
	if err == ErrUserNotFound {
		return nil
	}
	if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}
	if !crypto.CheckPassword(user.PasswordHash, password) {
		return nil
	}
	return user
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	user := &model.User{}
	err := database.GetDB().First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	user := &model.User{}
	err := database.GetDB().Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers() ([]model.User, error) {
	var users []model.User
	err := database.GetDB().Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser renames and re-roles the target account. A username held by a
// different id is rejected; renaming to the current value is allowed. The
// check and the update are separate statements, so a concurrent insert can
// still hit the unique index, which reports the same collision.
func (s *UserService) UpdateUser(id int, username string, role string) error {
	db := database.GetDB()

	existing := &model.User{}
	err := db.Where("username = ?", username).First(existing).Error
	if err == nil && existing.Id != id {
		return ErrUsernameTaken
	}
	if err != nil && !database.IsNotFound(err) {
		return err
	}

	err = db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"username": username, "role": role}).
		Error
	if database.IsDuplicate(err) {
		return ErrUsernameTaken
	}
	return err
}

// DeleteUser removes the account. Deleting an id that does not exist is a
// silent no-op.
func (s *UserService) DeleteUser(id int) error {
	return database.GetDB().Delete(&model.User{}, id).Error
}
