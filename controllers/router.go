package controllers

import (
	"net/http"

	"betty_server_go/metrics"
	"betty_server_go/middleware"

	"github.com/gorilla/mux"
)

// NewRouter собирает все маршруты API.
func NewRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)
	router.Use(metrics.Middleware)

	// открытые маршруты
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", RegisterHandler).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", LoginHandler).Methods(http.MethodPost)

	router.HandleFunc("/api/Service/status", HealthCheck).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// все остальное под /api требует JWT
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.JWTMiddleware)

	articleRouter := apiRouter.PathPrefix("/articles").Subrouter()
	articleRouter.HandleFunc("", ListArticlesHandler).Methods(http.MethodGet)
	articleRouter.HandleFunc("", CreateArticleHandler).Methods(http.MethodPost)
	articleRouter.HandleFunc("/{id:[0-9]+}", GetArticleHandler).Methods(http.MethodGet)
	articleRouter.HandleFunc("/{id:[0-9]+}", UpdateArticleHandler).Methods(http.MethodPut)
	articleRouter.HandleFunc("/{id:[0-9]+}", DeleteArticleHandler).Methods(http.MethodDelete)
	articleRouter.HandleFunc("/{id:[0-9]+}/images/{field}", GetArticleImageHandler).Methods(http.MethodGet)
	articleRouter.HandleFunc("/{id:[0-9]+}/images/{field}", UploadArticleImageHandler).Methods(http.MethodPost)
	articleRouter.HandleFunc("/{id:[0-9]+}/images/{field}", SetArticleImageHandler).Methods(http.MethodPut)

	imageRouter := apiRouter.PathPrefix("/images").Subrouter()
	imageRouter.HandleFunc("", UploadImageHandler).Methods(http.MethodPost)
	imageRouter.HandleFunc("/{image_id:[0-9]+}", GetImageHandler).Methods(http.MethodGet)
	imageRouter.HandleFunc("/{image_id:[0-9]+}", UpdateImageHandler).Methods(http.MethodPatch)

	return router
}
