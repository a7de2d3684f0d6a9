package betty

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultRatio  = "original"
	DefaultFormat = "jpg"
)

// IDPath разбивает ID на группы по 4 цифры: 12345 -> "1234/5".
func IDPath(id int64) string {
	digits := strconv.FormatInt(id, 10)
	groups := make([]string, 0, len(digits)/4+1)
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, "/")
}

// CropURL строит адрес кадрированной версии изображения:
// {base}/{id path}/{ratio}/{width}.{format}
func CropURL(baseURL string, id int64, ratio string, width int, format string) string {
	if ratio == "" {
		ratio = DefaultRatio
	}
	if format == "" {
		format = DefaultFormat
	}
	return fmt.Sprintf("%s/%s/%s/%d.%s", strings.TrimRight(baseURL, "/"), IDPath(id), ratio, width, format)
}

// AnimatedURL - адрес анимированного оригинала (gif).
func AnimatedURL(baseURL string, id int64) string {
	return fmt.Sprintf("%s/%s/animated/original.gif", strings.TrimRight(baseURL, "/"), IDPath(id))
}
