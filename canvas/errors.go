package canvas

import "errors"

// ErrInvalidSize is returned when a picture is rendered to an empty image.
var ErrInvalidSize = errors.New("canvas: invalid image size")
