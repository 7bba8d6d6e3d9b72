package imageprocessor

import (
	"fmt"
	"os"

	"skydb/envmap"
	"skydb/logging"
)

const openEXREnv = "OPENCV_IO_ENABLE_OPENEXR"

// Decoder reads probe images through OpenCV. It implements envmap.Decoder
// and is safe for concurrent use.
type Decoder struct {
	registry *ImageLoaderRegistry
}

// NewDecoder creates a decoder with the default loaders registered. It
// enables the OpenEXR codec unless OPENCV_IO_ENABLE_OPENEXR is already set.
func NewDecoder() *Decoder {
	if _, ok := os.LookupEnv(openEXREnv); !ok {
		if err := os.Setenv(openEXREnv, "1"); err != nil {
			logging.LogWarning("Could not enable OpenEXR support: %v", err)
		}
	}
	return &Decoder{registry: NewImageLoaderRegistry()}
}

// Decode loads the image at path and wraps it as an environment map of
// the given format. Panics raised by the C library are turned into errors.
func (d *Decoder) Decode(path string, format envmap.Format) (em *envmap.EnvironmentMap, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during image loading: %v", r)
			em = nil
			logging.LogError("Panic during image loading: %v, file: %s", r, path)
		}
	}()

	// OpenCV reports a missing file as an empty image, so check here to
	// keep the fs error
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	img, err := d.registry.LoadImage(path)
	if err != nil {
		img.Close()
		return nil, err
	}
	defer img.Close()

	hdr, err := MatToHDR(img)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	logging.DebugLog("Decoded %s: %dx%d, %d channels, format %s",
		path, hdr.Width, hdr.Height, hdr.Channels, GetFileFormat(path))

	return envmap.New(format, hdr)
}
