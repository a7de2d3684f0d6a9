package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"betty_server_go/betty"
	"betty_server_go/data"
	"betty_server_go/models"

	"github.com/gorilla/mux"
)

var (
	// Images - клиент Betty, задается в Configure.
	Images betty.Service
	// BettyImageURL - базовый адрес Betty для построения crop_url.
	BettyImageURL string
	// MaxUploadSize - предельный размер загружаемого файла в байтах.
	MaxUploadSize int64 = 10 * 1024 * 1024
)

// DefaultCropWidth - ширина превью в crop_url.
const DefaultCropWidth = 600

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Configure задает зависимости контроллеров изображений.
func Configure(service betty.Service, bettyImageURL string, maxUploadMB int64) {
	Images = service
	BettyImageURL = bettyImageURL
	if maxUploadMB > 0 {
		MaxUploadSize = maxUploadMB * 1024 * 1024
	}
}

// imageResponse - метаданные из Betty вместе с локальной ссылкой.
type imageResponse struct {
	Image   interface{} `json:"image"`
	Name    string      `json:"name"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Credit  *string     `json:"credit"`
	CropURL string      `json:"crop_url"`
}

func newImageResponse(ref models.ImageField, img *betty.Image) imageResponse {
	return imageResponse{
		Image:   models.ImageFieldSerializer{}.ToRepresentation(&ref),
		Name:    img.Name,
		Width:   img.Width,
		Height:  img.Height,
		Credit:  img.Credit,
		CropURL: betty.CropURL(BettyImageURL, img.ID, betty.DefaultRatio, DefaultCropWidth, betty.DefaultFormat),
	}
}

// readUpload разбирает multipart форму и возвращает файл из поля "image" (или "file").
// При ошибке сам пишет ответ.
func readUpload(w http.ResponseWriter, r *http.Request) (name string, content *bytes.Buffer, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file must not exceed %dMB", MaxUploadSize/1024/1024))
		} else {
			respondError(w, http.StatusBadRequest, "failed to parse multipart form: "+err.Error())
		}
		return "", nil, false
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required in 'image' field")
		return "", nil, false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		respondError(w, http.StatusBadRequest, "unsupported file type, allowed: jpg, jpeg, png, gif, webp")
		return "", nil, false
	}

	content = &bytes.Buffer{}
	if _, err := content.ReadFrom(file); err != nil {
		respondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return "", nil, false
	}
	return filepath.Base(header.Filename), content, true
}

func requireImages(w http.ResponseWriter) bool {
	if Images == nil {
		respondError(w, http.StatusServiceUnavailable, "Betty client is not configured")
		return false
	}
	return true
}

// UploadImageHandler загружает файл в Betty без привязки к статье.
// POST /api/images
func UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	if !requireImages(w) {
		return
	}
	name, content, ok := readUpload(w, r)
	if !ok {
		return
	}
	img, err := Images.Upload(r.Context(), name, content)
	if err != nil {
		requestLog(r).Errorf("Ошибка загрузки %q в Betty: %v", name, err)
		respondBettyError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newImageResponse(models.NewImageField(img.ID), img))
}

// GetImageHandler возвращает метаданные изображения из Betty.
// GET /api/images/{image_id}
func GetImageHandler(w http.ResponseWriter, r *http.Request) {
	if !requireImages(w) {
		return
	}
	id, err := models.CoerceImageID(mux.Vars(r)["image_id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	img, err := Images.GetImage(r.Context(), id)
	if err != nil {
		respondBettyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newImageResponse(models.NewImageField(id), img))
}

// imageFieldFromPath проверяет имя поля {field} из URL; при ошибке сам пишет 404.
func imageFieldFromPath(w http.ResponseWriter, r *http.Request, article *models.Article) (string, *models.ImageField, bool) {
	field := mux.Vars(r)["field"]
	ref, ok := article.ImageByName(field)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown image field "+strconv.Quote(field))
		return "", nil, false
	}
	return field, ref, true
}

func saveArticleImage(w http.ResponseWriter, r *http.Request, article *models.Article, field string, ref models.ImageField) bool {
	if err := data.SetArticleImage(article.ID, field, ref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "article not found")
			return false
		}
		requestLog(r).Errorf("Ошибка сохранения %s статьи %d: %v", field, article.ID, err)
		respondError(w, http.StatusInternalServerError, "failed to save image reference")
		return false
	}
	imageID, _ := ref.ImageID()
	requestLog(r).WithField("image_id", imageID).Infof("Статья %d: обновлено поле %s", article.ID, field)
	return true
}

// UploadArticleImageHandler загружает файл в Betty и привязывает его к полю статьи.
// alt и caption берутся из полей формы, если у поля есть для них колонки.
// POST /api/articles/{id}/images/{field}
func UploadArticleImageHandler(w http.ResponseWriter, r *http.Request) {
	if !requireImages(w) {
		return
	}
	article, ok := loadArticle(w, r)
	if !ok {
		return
	}
	field, _, ok := imageFieldFromPath(w, r, article)
	if !ok {
		return
	}
	name, content, ok := readUpload(w, r)
	if !ok {
		return
	}

	img, err := Images.Upload(r.Context(), name, content)
	if err != nil {
		requestLog(r).Errorf("Ошибка загрузки %q в Betty для статьи %d: %v", name, article.ID, err)
		respondBettyError(w, err)
		return
	}

	ref := models.NewImageField(img.ID)
	if alt := r.FormValue("alt"); alt != "" {
		ref.Alt = &alt
	}
	if caption := r.FormValue("caption"); caption != "" {
		ref.Caption = &caption
	}
	if !models.HasImageMetadata(field) {
		ref.Alt, ref.Caption = nil, nil
	}
	if !saveArticleImage(w, r, article, field, ref) {
		return
	}
	respondJSON(w, http.StatusCreated, newImageResponse(ref, img))
}

// SetArticleImageHandler привязывает к полю статьи уже существующее изображение.
// Тело: {"id": ..., "alt": ..., "caption": ...} или null, чтобы убрать изображение.
// PUT /api/articles/{id}/images/{field}
func SetArticleImageHandler(w http.ResponseWriter, r *http.Request) {
	article, ok := loadArticle(w, r)
	if !ok {
		return
	}
	field, _, ok := imageFieldFromPath(w, r, article)
	if !ok {
		return
	}

	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	value, err := models.ImageFieldSerializer{}.ToInternalValue(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid image: "+err.Error())
		return
	}
	ref := models.ImageFieldFromValue(value)
	if !models.HasImageMetadata(field) {
		ref.Alt, ref.Caption = nil, nil
	}
	if !saveArticleImage(w, r, article, field, ref) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		field: models.ImageFieldSerializer{}.ToRepresentation(&ref),
	})
}

// GetArticleImageHandler возвращает метаданные изображения, привязанного к полю статьи.
// GET /api/articles/{id}/images/{field}
func GetArticleImageHandler(w http.ResponseWriter, r *http.Request) {
	if !requireImages(w) {
		return
	}
	article, ok := loadArticle(w, r)
	if !ok {
		return
	}
	_, ref, ok := imageFieldFromPath(w, r, article)
	if !ok {
		return
	}
	id, present := ref.ImageID()
	if !present {
		respondError(w, http.StatusNotFound, "no image assigned")
		return
	}
	img, err := Images.GetImage(r.Context(), id)
	if err != nil {
		respondBettyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newImageResponse(*ref, img))
}

// UpdateImageHandler меняет name/credit изображения в Betty.
// PATCH /api/images/{image_id}
func UpdateImageHandler(w http.ResponseWriter, r *http.Request) {
	if !requireImages(w) {
		return
	}
	id, err := models.CoerceImageID(mux.Vars(r)["image_id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req models.ImageUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	img, err := Images.UpdateImage(r.Context(), id, betty.ImageUpdate{Name: req.Name, Credit: req.Credit})
	if err != nil {
		respondBettyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newImageResponse(models.NewImageField(id), img))
}
