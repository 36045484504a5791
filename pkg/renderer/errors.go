package renderer

import "errors"

var (
	ErrBadResolution     = errors.New("renderer: width and height must be positive")
	ErrBadSampleCount    = errors.New("renderer: samples per pixel must be positive")
	ErrUnsupportedFormat = errors.New("renderer: unsupported image format")
	ErrSizeMismatch      = errors.New("renderer: image sizes differ")
)
