package service

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

// downscale shrinks JPEG and PNG images wider than maxWidth, keeping the
// aspect ratio and the original encoding. Anything else is returned as is.
func downscale(data []byte, contentType string, maxWidth uint) ([]byte, error) {
	if maxWidth == 0 {
		return data, nil
	}

	var (
		img image.Image
		err error
	)
	switch contentType {
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	if uint(img.Bounds().Dx()) <= maxWidth {
		return data, nil
	}

	resized := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if contentType == "image/png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
