package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDCursorRoundTrip(t *testing.T) {
	c := EncodeIDCursor(1234567)
	id, err := DecodeIDCursor(c)
	require.NoError(t, err)
	assert.EqualValues(t, 1234567, id)

	id, err = DecodeIDCursor("")
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.Empty(t, EncodeIDCursor(0))
}

func TestDecodeIDCursorRejectsGarbage(t *testing.T) {
	for _, c := range []string{"not-base64!!", EncodeCursor([]interface{}{"abc"}), EncodeCursor([]interface{}{-3}), EncodeCursor([]interface{}{1.5})} {
		_, err := DecodeIDCursor(c)
		assert.ErrorIs(t, err, ErrInvalidCursor, c)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" #Coffee ", "coffee", "##Latte", "", "  #  ", "Tea"})
	assert.Equal(t, []string{"coffee", "latte", "tea"}, got)
}

func TestMakeThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 960, 540))
	for x := 0; x < 960; x++ {
		src.Set(x, 10, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := MakeThumbnail(&buf, 480)
	require.NoError(t, err)
	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, 270, img.Bounds().Dy())
}

func TestMakeThumbnailRejectsNonImage(t *testing.T) {
	_, err := MakeThumbnail(bytes.NewReader([]byte("plain text")), 480)
	assert.Error(t, err)
}

func TestValidateDTO_UsesTagNames(t *testing.T) {
	type query struct {
		Limit int    `form:"limit" validate:"omitempty,min=1,max=50"`
		Kind  string `json:"target_type" validate:"oneof=business video product"`
	}
	err := ValidateDTO(&query{Limit: 99, Kind: "shop"})
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	fields := []string{ve[0].Field(), ve[1].Field()}
	assert.ElementsMatch(t, []string{"limit", "target_type"}, fields)

	assert.NoError(t, ValidateDTO(&query{Kind: "video"}))
}
