package imageprocessor

import (
	"gocv.io/x/gocv"

	"skydb/logging"
)

// RadianceImageLoader handles floating point formats: OpenEXR, Radiance
// RGBE and PFM
type RadianceImageLoader struct {
	BaseImageLoader
}

// NewRadianceImageLoader creates a new loader for floating point formats
func NewRadianceImageLoader() *RadianceImageLoader {
	return &RadianceImageLoader{}
}

// LoadImage loads a floating point image
func (l *RadianceImageLoader) LoadImage(path string) (gocv.Mat, error) {
	return l.DefaultLoadImage(path)
}

// TiffImageLoader handles TIFF, which may hold integer or float samples
type TiffImageLoader struct {
	BaseImageLoader
}

// NewTiffImageLoader creates a new TIFF image loader
func NewTiffImageLoader() *TiffImageLoader {
	return &TiffImageLoader{}
}

// LoadImage loads a TIFF image. Multi-page and alpha TIFFs that fail the
// depth-preserving read are retried unchanged.
func (l *TiffImageLoader) LoadImage(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, fullDepth)
	if !img.Empty() {
		return img, nil
	}
	img.Close()

	logging.DebugLog("Retrying TIFF without depth conversion: %s", path)
	img = gocv.IMRead(path, gocv.IMReadUnchanged)
	if img.Empty() {
		return img, newImageLoadError("failed to load TIFF image", path)
	}
	return img, nil
}

// StandardImageLoader handles 8-bit formats such as PNG and JPEG. Their
// samples are decoded as is, without any inverse camera response.
type StandardImageLoader struct {
	BaseImageLoader
}

// NewStandardImageLoader creates a new loader for standard image formats
func NewStandardImageLoader() *StandardImageLoader {
	return &StandardImageLoader{}
}

// LoadImage loads a standard image format
func (l *StandardImageLoader) LoadImage(path string) (gocv.Mat, error) {
	return l.DefaultLoadImage(path)
}
