// Package imageprocessor decodes high dynamic range probe images with
// OpenCV and writes tone mapped results back to disk.
//
// OpenEXR support in OpenCV 4 is disabled unless OPENCV_IO_ENABLE_OPENEXR
// is set. NewDecoder sets it when the caller has not.
package imageprocessor

import "gocv.io/x/gocv"

// ImageLoader is the interface that all image loaders must implement
type ImageLoader interface {
	// LoadImage loads the image at full bit depth. The caller closes the Mat.
	LoadImage(path string) (gocv.Mat, error)
}
