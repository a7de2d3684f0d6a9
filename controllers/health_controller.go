package controllers

import (
	"net/http"

	"betty_server_go/data"
)

// HealthCheck возвращает {"status": "OK"}, если сервер и БД доступны.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	if data.MainDB != nil {
		if err := data.MainDB.PingContext(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DB_UNAVAILABLE"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
