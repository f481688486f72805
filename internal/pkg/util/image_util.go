package util

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// MakeThumbnail 等比缩放到指定宽度并编码为 JPEG，原图更窄时不放大
func MakeThumbnail(r io.Reader, width int) ([]byte, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	var dst image.Image = src
	if src.Bounds().Dx() > width {
		dst = imaging.Resize(src, width, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err = imaging.Encode(&buf, dst, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
