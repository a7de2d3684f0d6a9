package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"betty_server_go/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword генерирует bcrypt хеш пароля.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash сравнивает пароль с хешем.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateUser создает пользователя. В user.PasswordHash передается исходный пароль.
func CreateUser(user *models.User) (int64, error) {
	hashedPassword, err := HashPassword(user.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	query := `INSERT INTO Users (Email, DisplayName, PasswordHash, CreatedAt, UpdatedAt)
	          VALUES (?, ?, ?, ?, ?)`
	result, err := AuthDB.Exec(query, user.Email, user.DisplayName, hashedPassword, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	user.ID = id
	user.PasswordHash = hashedPassword
	user.CreatedAt = now
	user.UpdatedAt = now
	return id, nil
}

// GetUserByEmail возвращает пользователя или nil, nil.
func GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT Id, Email, DisplayName, PasswordHash, CreatedAt, UpdatedAt
	          FROM Users WHERE Email = ?`
	if err := AuthDB.Get(user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// GetUserByID возвращает пользователя или nil, nil.
func GetUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT Id, Email, DisplayName, PasswordHash, CreatedAt, UpdatedAt
	          FROM Users WHERE Id = ?`
	if err := AuthDB.Get(user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return user, nil
}
