package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"betty_server_go/betty"
	"betty_server_go/middleware"
	"betty_server_go/models"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

var validate = validator.New()

// requestLog - запись лога с ID пользователя из JWT, если он есть.
func requestLog(r *http.Request) *log.Entry {
	entry := log.WithField("path", r.URL.Path)
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// заголовки уже отправлены
			log.Errorf("Error encoding JSON response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	if statusCode >= http.StatusInternalServerError {
		log.Errorf("HTTP Error %d: %s", statusCode, message)
	} else {
		log.Debugf("HTTP Error %d: %s", statusCode, message)
	}
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// validationMessage собирает ошибки validator в одну строку "field: tag".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// decodeAndValidate читает JSON тело и проверяет struct-теги validate.
// Ошибка приведения ID изображения - это тоже ошибка валидации (400).
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, models.ErrInvalidImageID) {
			respondError(w, http.StatusBadRequest, "invalid image: "+err.Error())
			return false
		}
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// respondBettyError переводит ошибки клиента Betty в HTTP статусы.
func respondBettyError(w http.ResponseWriter, err error) {
	var apiErr *betty.APIError
	switch {
	case errors.Is(err, betty.ErrImageNotFound):
		respondError(w, http.StatusNotFound, "image not found in Betty")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "Betty did not respond in time")
	case errors.As(err, &apiErr):
		respondError(w, http.StatusBadGateway, fmt.Sprintf("Betty returned status %d", apiErr.StatusCode))
	default:
		respondError(w, http.StatusBadGateway, "Betty request failed: "+err.Error())
	}
}
