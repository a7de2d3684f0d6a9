package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	field, err := Clean(12345)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), *field.ID)

	field, err = Clean(nil)
	require.NoError(t, err)
	assert.True(t, field.IsEmpty())

	field, err = Clean("12345")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), *field.ID)

	field, err = Clean("")
	require.NoError(t, err)
	assert.True(t, field.IsEmpty())

	_, err = Clean("abcdef")
	assert.ErrorIs(t, err, ErrInvalidImageID)
}

func TestImageFieldScanAndValue(t *testing.T) {
	var f ImageField

	require.NoError(t, f.Scan(int64(12345)))
	id, ok := f.ImageID()
	assert.True(t, ok)
	assert.Equal(t, int64(12345), id)

	v, err := f.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(12345), v)

	require.NoError(t, f.Scan(nil))
	assert.True(t, f.IsEmpty())
	v, err = f.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, f.Scan([]byte("")))
	assert.True(t, f.IsEmpty())

	require.NoError(t, f.Scan("42"))
	assert.Equal(t, int64(42), *f.ID)

	assert.ErrorIs(t, f.Scan("abcdef"), ErrInvalidImageID)
}

func TestImageFieldJSON(t *testing.T) {
	t.Run("marshal empty", func(t *testing.T) {
		out, err := json.Marshal(ImageField{Alt: strPtr("ignored")})
		require.NoError(t, err)
		assert.JSONEq(t, `null`, string(out))
	})

	t.Run("marshal full", func(t *testing.T) {
		f := NewImageField(12345)
		f.Alt = strPtr("Just a cool chick")
		f.Caption = strPtr("")
		out, err := json.Marshal(f)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id": 12345, "alt": "Just a cool chick"}`, string(out))
	})

	t.Run("unmarshal object", func(t *testing.T) {
		var f ImageField
		require.NoError(t, json.Unmarshal([]byte(`{"id": "12345", "caption": "c"}`), &f))
		assert.Equal(t, int64(12345), *f.ID)
		assert.Nil(t, f.Alt)
		assert.Equal(t, "c", *f.Caption)
	})

	t.Run("unmarshal bare id", func(t *testing.T) {
		var f ImageField
		require.NoError(t, json.Unmarshal([]byte(`12345`), &f))
		assert.Equal(t, int64(12345), *f.ID)

		require.NoError(t, json.Unmarshal([]byte(`"777"`), &f))
		assert.Equal(t, int64(777), *f.ID)
	})

	t.Run("unmarshal null and empty", func(t *testing.T) {
		f := NewImageField(1)
		require.NoError(t, json.Unmarshal([]byte(`null`), &f))
		assert.True(t, f.IsEmpty())

		f = NewImageField(1)
		require.NoError(t, json.Unmarshal([]byte(`{}`), &f))
		assert.True(t, f.IsEmpty())

		f = NewImageField(1)
		require.NoError(t, json.Unmarshal([]byte(`""`), &f))
		assert.True(t, f.IsEmpty())
	})

	t.Run("unmarshal invalid", func(t *testing.T) {
		var f ImageField
		assert.ErrorIs(t, json.Unmarshal([]byte(`{"id": "abcdef"}`), &f), ErrInvalidImageID)
		assert.ErrorIs(t, json.Unmarshal([]byte(`"abcdef"`), &f), ErrInvalidImageID)
	})
}

func TestCoerceImageID(t *testing.T) {
	valid := map[interface{}]int64{
		"1_000":      1000,
		" -1_2_3 ":   -123,
		"+7":         7,
		true:         1,
		false:        0,
		uint32(9):    9,
		float32(2.5): 2,
	}
	for in, want := range valid {
		id, err := CoerceImageID(in)
		require.NoError(t, err, "value %#v", in)
		assert.Equal(t, want, id, "value %#v", in)
	}

	for _, bad := range []interface{}{"_1", "1_", "1__0", "+_1", "1_a", "_"} {
		_, err := CoerceImageID(bad)
		assert.ErrorIs(t, err, ErrInvalidImageID, "value %#v", bad)
	}
}

func TestModelRejectsBool(t *testing.T) {
	_, err := ParseImageID(true)
	assert.ErrorIs(t, err, ErrInvalidImageID)

	_, err = Clean(false)
	assert.ErrorIs(t, err, ErrInvalidImageID)

	var f ImageField
	assert.ErrorIs(t, json.Unmarshal([]byte(`false`), &f), ErrInvalidImageID)
	assert.ErrorIs(t, json.Unmarshal([]byte(`true`), &f), ErrInvalidImageID)
	assert.True(t, f.IsEmpty())

	// внутри объекта действует правило сериализатора
	require.NoError(t, json.Unmarshal([]byte(`{"id": true}`), &f))
	assert.Equal(t, int64(1), *f.ID)
}
