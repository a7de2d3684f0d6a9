package betty

// Selection - область кадрирования для одного соотношения сторон.
type Selection struct {
	X0     int    `json:"x0"`
	Y0     int    `json:"y0"`
	X1     int    `json:"x1"`
	Y1     int    `json:"y1"`
	Source string `json:"source,omitempty"`
}

// Image - метаданные изображения, как их отдает Betty API.
type Image struct {
	ID         int64                `json:"id"`
	Name       string               `json:"name"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Credit     *string              `json:"credit"`
	Selections map[string]Selection `json:"selections"`
}

// ImageUpdate - изменяемые через API поля изображения. nil - не менять.
type ImageUpdate struct {
	Name   *string `json:"name,omitempty"`
	Credit *string `json:"credit,omitempty"`
}
