package middleware

import "net/http"

// StatusRecorder запоминает код ответа, отправленный обработчиком.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

// NewStatusRecorder оборачивает w; до вызова WriteHeader код считается 200.
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *StatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}
