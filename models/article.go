package models

import "time"

// Article - модель с двумя полями-изображениями Betty.
// Image хранит alt и caption в отдельных колонках, ListingImage - только ID.
type Article struct {
	ID           int64      `json:"id" db:"Id"`
	Title        string     `json:"title" db:"Title"`
	Image        ImageField `json:"image" db:"Image"`
	ImageAlt     *string    `json:"-" db:"ImageAlt"`
	ImageCaption *string    `json:"-" db:"ImageCaption"`
	ListingImage ImageField `json:"listing_image" db:"ListingImage"`
	CreatedAt    time.Time  `json:"created_at" db:"CreatedAt"`
	UpdatedAt    time.Time  `json:"updated_at" db:"UpdatedAt"`
}

// Имена полей-изображений, используемые в URL.
const (
	FieldImage        = "image"
	FieldListingImage = "listing_image"
)

// ArticleRequest - тело запроса на создание/обновление статьи.
type ArticleRequest struct {
	Title        string     `json:"title" validate:"required,max=255"`
	Image        ImageField `json:"image"`
	ListingImage ImageField `json:"listing_image"`
}

// UpdateImageProperties переносит alt и caption из Image в колонки перед сохранением.
// Пустые значения сохраняются как NULL.
func (a *Article) UpdateImageProperties() {
	a.ImageAlt = nil
	a.ImageCaption = nil
	if IsPresent(a.Image.Alt) {
		alt := *a.Image.Alt
		a.ImageAlt = &alt
	}
	if IsPresent(a.Image.Caption) {
		caption := *a.Image.Caption
		a.ImageCaption = &caption
	}
	// у ListingImage нет колонок для метаданных
	a.ListingImage.Alt = nil
	a.ListingImage.Caption = nil
}

// LoadImageProperties переносит alt и caption из колонок в Image после чтения из БД.
func (a *Article) LoadImageProperties() {
	a.Image.Alt = a.ImageAlt
	a.Image.Caption = a.ImageCaption
	a.ListingImage.Alt = nil
	a.ListingImage.Caption = nil
}

// ImageByName возвращает указатель на поле-изображение по имени из URL.
func (a *Article) ImageByName(name string) (*ImageField, bool) {
	switch name {
	case FieldImage:
		return &a.Image, true
	case FieldListingImage:
		return &a.ListingImage, true
	}
	return nil, false
}

// HasImageMetadata сообщает, есть ли у поля колонки alt/caption.
func HasImageMetadata(name string) bool {
	return name == FieldImage
}

// ImageUpdateRequest - тело PATCH /api/images/{image_id}.
type ImageUpdateRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
	Credit *string `json:"credit" validate:"omitempty,max=255"`
}
