package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidImageID возвращается, когда значение нельзя превратить в целочисленный ID изображения Betty.
var ErrInvalidImageID = errors.New("invalid image id")

// ImageField - ссылка на изображение, хранящееся в Betty.
// Локально хранится только ID (или NULL) и, при наличии отдельных колонок, alt и caption.
// ID == nil означает "изображения нет".
type ImageField struct {
	ID      *int64
	Alt     *string
	Caption *string
}

// NewImageField создает ссылку на изображение с указанным ID.
func NewImageField(id int64) ImageField {
	return ImageField{ID: &id}
}

// IsEmpty сообщает, что ссылка не указывает ни на какое изображение.
func (f ImageField) IsEmpty() bool {
	return f.ID == nil
}

// ImageID возвращает ID и признак его наличия.
func (f ImageField) ImageID() (int64, bool) {
	if f.ID == nil {
		return 0, false
	}
	return *f.ID, true
}

// Clear сбрасывает ссылку вместе с alt и caption.
func (f *ImageField) Clear() {
	f.ID = nil
	f.Alt = nil
	f.Caption = nil
}

// Clean проверяет значение поля, как это делает валидация модели перед сохранением.
// Принимает nil, "", целые числа и числовые строки.
func Clean(value interface{}) (ImageField, error) {
	switch v := value.(type) {
	case ImageField:
		return v, nil
	case *ImageField:
		if v == nil {
			return ImageField{}, nil
		}
		return *v, nil
	}
	id, err := ParseImageID(value)
	if err != nil {
		return ImageField{}, err
	}
	return ImageField{ID: id}, nil
}

// ParseImageID приводит значение, присвоенное полю модели, к ID.
// Пустая строка и nil означают отсутствие изображения, bool не принимается.
func ParseImageID(value interface{}) (*int64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageID, v)
	case string:
		if v == "" {
			return nil, nil
		}
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
	case *int64:
		return v, nil
	}
	id, err := CoerceImageID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CoerceImageID приводит значение к int64 по правилам целочисленного конструктора:
// целые как есть, дробные отбрасывают дробную часть, bool -> 1/0,
// строки обрезаются по пробелам и разбираются как десятичное число
// (допускаются "_" между цифрами).
func CoerceImageID(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return uintToID(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToID(v)
	case float32:
		return floatToID(float64(v))
	case float64:
		return floatToID(v)
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		if id, err := v.Int64(); err == nil {
			return id, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidImageID, v.String())
		}
		return floatToID(f)
	case string:
		return parseIDString(v)
	case []byte:
		return parseIDString(string(v))
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidImageID, value)
	}
}

func parseIDString(s string) (int64, error) {
	digits, ok := stripDigitSeparators(strings.TrimSpace(s))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidImageID, s)
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidImageID, s)
	}
	return id, nil
}

// stripDigitSeparators убирает одиночные "_" между цифрами: "1_000" -> "1000".
// "_1", "1_", "1__0" и "+_1" недопустимы.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func floatToID(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImageID, f)
	}
	return int64(f), nil
}

func uintToID(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d overflows int64", ErrInvalidImageID, u)
	}
	return int64(u), nil
}

// Scan реализует sql.Scanner для колонки с ID изображения.
// alt и caption хранятся в отдельных колонках и здесь не трогаются.
func (f *ImageField) Scan(value interface{}) error {
	id, err := ParseImageID(value)
	if err != nil {
		return fmt.Errorf("ImageField.Scan: %w", err)
	}
	f.ID = id
	return nil
}

// Value реализует driver.Valuer: NULL или целочисленный ID.
func (f ImageField) Value() (driver.Value, error) {
	if f.ID == nil {
		return nil, nil
	}
	return *f.ID, nil
}

// MarshalJSON отдает null или {"id": ..., ["alt": ...], ["caption": ...]}.
func (f ImageField) MarshalJSON() ([]byte, error) {
	return json.Marshal(ImageFieldSerializer{}.ToRepresentation(&f))
}

// UnmarshalJSON принимает null, объект с ключом "id" или голый ID (число либо строку).
func (f *ImageField) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	if obj, ok := raw.(map[string]interface{}); ok {
		value, err := ImageFieldSerializer{}.ToInternalValue(obj)
		if err != nil {
			return err
		}
		*f = ImageFieldFromValue(value)
		return nil
	}

	id, err := ParseImageID(raw)
	if err != nil {
		return err
	}
	*f = ImageField{ID: id}
	return nil
}
