package service

import (
	"github.com/feedbackboard/feedbackboard/database"
	"github.com/feedbackboard/feedbackboard/database/model"
	"github.com/feedbackboard/feedbackboard/logger"
	"github.com/feedbackboard/feedbackboard/util/crypto"

	"gorm.io/gorm"
)

// UserService persists accounts and verifies credentials.
type UserService struct{}

// Register hashes the password and creates the account. A username or
// email collision surfaces through database.IsDuplicate on the returned
// error; the caller re-presents the registration form in that case.
func (s *UserService) Register(username, password, email, firstName, lastName string) (*model.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies the credentials and returns the user on a match,
// nil otherwise. An unknown username and a wrong password are
// indistinguishable to the caller.
func (s *UserService) CheckUser(username, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}

	return user
}

// GetUser looks up an account; database.IsNotFound classifies a missing
// username.
func (s *UserService) GetUser(username string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account and all feedback it owns in one
// transaction. The schema-level cascade covers the same ground; the
// explicit delete keeps the invariant independent of how the database
// file was created.
func (s *UserService) DeleteUser(username string) error {
	db := database.GetDB()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&model.Feedback{}).Error; err != nil {
			return err
		}
		result := tx.Where("username = ?", username).Delete(&model.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
