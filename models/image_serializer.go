package models

import "fmt"

// ImageFieldSerializer конвертирует ImageField в JSON-совместимый map и обратно.
// Состояния не имеет.
type ImageFieldSerializer struct{}

// IsPresent сообщает, что опциональное строковое значение задано и не пустое.
func IsPresent(value *string) bool {
	return value != nil && *value != ""
}

// ToRepresentation возвращает nil, если изображения нет.
// Иначе {"id": ...}; alt и caption добавляются только если они не пустые.
func (ImageFieldSerializer) ToRepresentation(ref *ImageField) map[string]interface{} {
	if ref == nil || ref.ID == nil {
		return nil
	}
	data := map[string]interface{}{
		"id": *ref.ID,
	}
	if IsPresent(ref.Alt) {
		data["alt"] = *ref.Alt
	}
	if IsPresent(ref.Caption) {
		data["caption"] = *ref.Caption
	}
	return data
}

// ToInternalValue возвращает nil для nil и для map без ключа "id".
// Иначе возвращает новый map, где "id" приведен к int64; остальные ключи копируются как есть.
// Исходный map не изменяется.
func (ImageFieldSerializer) ToInternalValue(data map[string]interface{}) (map[string]interface{}, error) {
	if data == nil {
		return nil, nil
	}
	raw, ok := data["id"]
	if !ok {
		return nil, nil
	}
	id, err := CoerceImageID(raw)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}

	result := make(map[string]interface{}, len(data))
	for key, value := range data {
		result[key] = value
	}
	result["id"] = id
	return result, nil
}

// ImageFieldFromValue собирает ImageField из результата ToInternalValue.
func ImageFieldFromValue(value map[string]interface{}) ImageField {
	var field ImageField
	if value == nil {
		return field
	}
	if id, ok := value["id"].(int64); ok {
		field.ID = &id
	}
	if alt, ok := value["alt"].(string); ok {
		field.Alt = &alt
	}
	if caption, ok := value["caption"].(string); ok {
		field.Caption = &caption
	}
	return field
}
