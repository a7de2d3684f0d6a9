package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"betty_server_go/models"

	log "github.com/sirupsen/logrus"
)

// ErrUnknownImageField - у статьи нет поля-изображения с таким именем.
var ErrUnknownImageField = errors.New("unknown image field")

const articleColumns = `Id, Title, Image, ImageAlt, ImageCaption, ListingImage, CreatedAt, UpdatedAt`

// CreateArticle сохраняет новую статью и возвращает ее ID.
// Ссылки на изображения сохраняются как есть: загрузка в Betty для этого не нужна.
func CreateArticle(article *models.Article) (int64, error) {
	article.UpdateImageProperties()
	now := time.Now().UTC().Truncate(time.Second)
	article.CreatedAt = now
	article.UpdatedAt = now

	query := `INSERT INTO Articles (Title, Image, ImageAlt, ImageCaption, ListingImage, CreatedAt, UpdatedAt)
	          VALUES (:Title, :Image, :ImageAlt, :ImageCaption, :ListingImage, :CreatedAt, :UpdatedAt)`
	result, err := MainDB.NamedExec(query, article)
	if err != nil {
		return 0, fmt.Errorf("CreateArticle: insert: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateArticle: LastInsertId: %w", err)
	}
	article.ID = id
	log.Debugf("Создана статья ID %d", id)
	return id, nil
}

// GetArticleByID возвращает статью или nil, nil если ее нет.
func GetArticleByID(id int64) (*models.Article, error) {
	article := &models.Article{}
	query := `SELECT ` + articleColumns + ` FROM Articles WHERE Id = ?`
	if err := MainDB.Get(article, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetArticleByID: article %d: %w", id, err)
	}
	article.LoadImageProperties()
	return article, nil
}

// GetAllArticles возвращает все статьи, последние измененные - первыми.
func GetAllArticles() ([]models.Article, error) {
	articles := []models.Article{}
	query := `SELECT ` + articleColumns + ` FROM Articles ORDER BY UpdatedAt DESC, Id DESC`
	if err := MainDB.Select(&articles, query); err != nil {
		return nil, fmt.Errorf("GetAllArticles: %w", err)
	}
	for i := range articles {
		articles[i].LoadImageProperties()
	}
	return articles, nil
}

// UpdateArticle обновляет статью целиком. sql.ErrNoRows, если статьи нет.
func UpdateArticle(article *models.Article) error {
	article.UpdateImageProperties()
	article.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `UPDATE Articles SET
	            Title = :Title, Image = :Image, ImageAlt = :ImageAlt, ImageCaption = :ImageCaption,
	            ListingImage = :ListingImage, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := MainDB.NamedExec(query, article)
	if err != nil {
		return fmt.Errorf("UpdateArticle: article %d: %w", article.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetArticleImage меняет одно поле-изображение статьи.
// Для listing_image alt и caption отбрасываются: у поля нет для них колонок.
func SetArticleImage(articleID int64, field string, image models.ImageField) error {
	now := time.Now().UTC().Truncate(time.Second)

	var (
		result sql.Result
		err    error
	)
	switch field {
	case models.FieldImage:
		holder := models.Article{Image: image}
		holder.UpdateImageProperties()
		result, err = MainDB.Exec(
			`UPDATE Articles SET Image = ?, ImageAlt = ?, ImageCaption = ?, UpdatedAt = ? WHERE Id = ?`,
			holder.Image, holder.ImageAlt, holder.ImageCaption, now, articleID)
	case models.FieldListingImage:
		result, err = MainDB.Exec(
			`UPDATE Articles SET ListingImage = ?, UpdatedAt = ? WHERE Id = ?`,
			image, now, articleID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownImageField, field)
	}
	if err != nil {
		return fmt.Errorf("SetArticleImage: article %d field %s: %w", articleID, field, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteArticle удаляет статью. Изображения в Betty не трогаются.
func DeleteArticle(id int64) error {
	result, err := MainDB.Exec(`DELETE FROM Articles WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("DeleteArticle: article %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
