package imageprocessor

import (
	"fmt"

	"gocv.io/x/gocv"
)

// fullDepth keeps floating point samples and every color channel
const fullDepth = gocv.IMReadAnyDepth | gocv.IMReadAnyColor

// BaseImageLoader provides common functionality for all image loaders.
// Loaders are selected by the registry from the file extension, so they
// do not check the format themselves.
type BaseImageLoader struct{}

// DefaultLoadImage reads the image without reducing its depth or color
func (l *BaseImageLoader) DefaultLoadImage(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, fullDepth)
	if img.Empty() {
		return img, newImageLoadError("failed to load image", path)
	}
	return img, nil
}

// newImageLoadError creates a standardized error for image loading failures
func newImageLoadError(message, path string) error {
	return fmt.Errorf("%s: %s", message, path)
}
