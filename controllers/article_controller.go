package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"betty_server_go/data"
	"betty_server_go/models"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// articleIDFromPath достает {id} из URL; при ошибке сам пишет 400.
func articleIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid article id")
		return 0, false
	}
	return id, true
}

// loadArticle читает статью по {id}; при ошибке или отсутствии сам пишет ответ.
func loadArticle(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	id, ok := articleIDFromPath(w, r)
	if !ok {
		return nil, false
	}
	article, err := data.GetArticleByID(id)
	if err != nil {
		log.Errorf("Ошибка получения статьи %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to load article")
		return nil, false
	}
	if article == nil {
		respondError(w, http.StatusNotFound, "article not found")
		return nil, false
	}
	return article, true
}

// ListArticlesHandler - GET /api/articles
func ListArticlesHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := data.GetAllArticles()
	if err != nil {
		log.Errorf("Ошибка получения списка статей: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load articles")
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

// CreateArticleHandler - POST /api/articles
// image и listing_image принимаются в виде {"id": ...}, голого ID или null.
func CreateArticleHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ArticleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	article := &models.Article{
		Title:        req.Title,
		Image:        req.Image,
		ListingImage: req.ListingImage,
	}
	if _, err := data.CreateArticle(article); err != nil {
		requestLog(r).Errorf("Ошибка создания статьи: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create article")
		return
	}
	requestLog(r).Infof("Создана статья %d", article.ID)
	respondJSON(w, http.StatusCreated, article)
}

// GetArticleHandler - GET /api/articles/{id}
func GetArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, ok := loadArticle(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// UpdateArticleHandler - PUT /api/articles/{id}
func UpdateArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, ok := loadArticle(w, r)
	if !ok {
		return
	}
	var req models.ArticleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	article.Title = req.Title
	article.Image = req.Image
	article.ListingImage = req.ListingImage
	if err := data.UpdateArticle(article); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "article not found")
			return
		}
		requestLog(r).Errorf("Ошибка обновления статьи %d: %v", article.ID, err)
		respondError(w, http.StatusInternalServerError, "failed to update article")
		return
	}
	requestLog(r).Infof("Обновлена статья %d", article.ID)
	respondJSON(w, http.StatusOK, article)
}

// DeleteArticleHandler - DELETE /api/articles/{id}
func DeleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := articleIDFromPath(w, r)
	if !ok {
		return
	}
	if err := data.DeleteArticle(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "article not found")
			return
		}
		requestLog(r).Errorf("Ошибка удаления статьи %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to delete article")
		return
	}
	requestLog(r).Infof("Удалена статья %d", id)
	w.WriteHeader(http.StatusNoContent)
}
