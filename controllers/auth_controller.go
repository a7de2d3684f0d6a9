package controllers

import (
	"net/http"
	"strings"

	"betty_server_go/auth"
	"betty_server_go/data"
	"betty_server_go/models"

	log "github.com/sirupsen/logrus"
)

// RegisterHandler регистрирует нового пользователя и сразу выдает токен.
// POST /api/auth/register
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	existingUser, err := data.GetUserByEmail(req.Email)
	if err != nil {
		log.Errorf("Ошибка при проверке email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to check email")
		return
	}
	if existingUser != nil {
		respondError(w, http.StatusConflict, "user with this email already exists")
		return
	}

	user := &models.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: req.Password, // хешируется в CreateUser
	}
	if _, err := data.CreateUser(user); err != nil {
		log.Errorf("Ошибка при создании пользователя %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respondWithToken(w, http.StatusCreated, user)
}

// LoginHandler проверяет email и пароль и выдает токен.
// POST /api/auth/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := data.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		log.Errorf("Ошибка при поиске пользователя по email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to look up user")
		return
	}
	if user == nil || !data.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	respondWithToken(w, http.StatusOK, user)
}

func respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	tokenString, _, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Errorf("Ошибка при генерации токена для пользователя %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "failed to generate access token")
		return
	}
	respondJSON(w, status, models.AuthResponse{
		Token: tokenString,
		User: models.UserPublicInfo{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	})
}
