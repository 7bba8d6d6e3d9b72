package imageprocessor

import (
	"fmt"

	"skydb/envmap"

	"gocv.io/x/gocv"
)

// MatToHDR copies an OpenCV image into a float buffer with RGB(A) channel
// order. Integer samples keep their numeric value; they are not rescaled.
func MatToHDR(img gocv.Mat) (*envmap.HDR, error) {
	if img.Empty() {
		return nil, envmap.ErrEmptyImage
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	switch img.Channels() {
	case 3:
		gocv.CvtColor(img, &rgb, gocv.ColorBGRToRGB)
	case 4:
		gocv.CvtColor(img, &rgb, gocv.ColorBGRAToRGBA)
	default:
		img.CopyTo(&rgb)
	}

	floats := gocv.NewMat()
	defer floats.Close()
	rgb.ConvertTo(&floats, gocv.MatTypeCV32F)

	data, err := floats.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read float samples: %w", err)
	}

	hdr := envmap.NewHDR(floats.Rows(), floats.Cols(), floats.Channels())
	if len(data) != len(hdr.Pix) {
		return nil, fmt.Errorf("unexpected sample count %d for %dx%dx%d image",
			len(data), hdr.Height, hdr.Width, hdr.Channels)
	}
	for i, v := range data {
		hdr.Pix[i] = float64(v)
	}
	return hdr, nil
}

// LDRToMat builds an 8-bit OpenCV image in BGR(A) channel order. The
// returned Mat owns its memory; the caller closes it.
func LDRToMat(ldr *envmap.LDR) (gocv.Mat, error) {
	if ldr == nil || len(ldr.Pix) == 0 {
		return gocv.NewMat(), envmap.ErrEmptyImage
	}

	var mt gocv.MatType
	switch ldr.Channels {
	case 1:
		mt = gocv.MatTypeCV8UC1
	case 3:
		mt = gocv.MatTypeCV8UC3
	case 4:
		mt = gocv.MatTypeCV8UC4
	default:
		return gocv.NewMat(), fmt.Errorf("cannot encode %d channel image", ldr.Channels)
	}

	src, err := gocv.NewMatFromBytes(ldr.Height, ldr.Width, mt, ldr.Pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("wrap pixels: %w", err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	switch ldr.Channels {
	case 3:
		gocv.CvtColor(src, &dst, gocv.ColorRGBToBGR)
	case 4:
		gocv.CvtColor(src, &dst, gocv.ColorRGBAToBGRA)
	default:
		src.CopyTo(&dst)
	}
	return dst, nil
}

// WriteLDR encodes ldr to path. The extension selects the codec.
func WriteLDR(path string, ldr *envmap.LDR) error {
	img, err := LDRToMat(ldr)
	if err != nil {
		return err
	}
	defer img.Close()

	if !gocv.IMWrite(path, img) {
		return newImageLoadError("failed to write image", path)
	}
	return nil
}
