package tools

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
)

const (
	DefaultJPEGQuality = 90
	ResizedMimeType    = "image/jpeg"

	MaxDimension    = 10000
	maxSourcePixels = 64 << 20
)

// ResizeImage decodes the input, stretches it to exactly Width x Height with
// Lanczos resampling and re-encodes it as JPEG
func ResizeImage(in *model.ImageResizeInput, quality int) (*model.ResizedImage, error) {
	if !in.Width.Valid || !in.Height.Valid {
		return nil, newOperationError("width and height must be integers", nil,
			goerr.V("width_valid", in.Width.Valid),
			goerr.V("height_valid", in.Height.Valid))
	}
	width, height := in.Width.Value, in.Height.Value
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, newOperationError("width and height must be between 1 and 10000", nil,
			goerr.V("width", width),
			goerr.V("height", height))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(in.Image))
	if err != nil {
		return nil, newOperationError("unsupported or corrupt image", err, goerr.V("size", len(in.Image)))
	}
	if cfg.Width*cfg.Height > maxSourcePixels {
		return nil, newOperationError("source image is too large", nil,
			goerr.V("width", cfg.Width),
			goerr.V("height", cfg.Height),
			goerr.V("format", format))
	}

	src, err := imaging.Decode(bytes.NewReader(in.Image), imaging.AutoOrientation(true))
	if err != nil {
		return nil, newOperationError("unsupported or corrupt image", err, goerr.V("format", format))
	}

	dst := imaging.Resize(src, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, newOperationError("failed to encode image", err)
	}

	return &model.ResizedImage{
		Data:     buf.Bytes(),
		MimeType: ResizedMimeType,
	}, nil
}
