package imageprocessor

import (
	"path/filepath"
	"sort"
	"strings"
)

// FormatType represents a known image file format
type FormatType string

// Known image format constants
const (
	FormatUnknown  FormatType = "unknown"
	FormatEXR      FormatType = "exr"
	FormatRadiance FormatType = "hdr"
	FormatPFM      FormatType = "pfm"
	FormatTIFF     FormatType = "tiff"
	FormatPNG      FormatType = "png"
	FormatJPEG     FormatType = "jpeg"
)

// Map of extensions to format types
var formatExtensions = map[string]FormatType{
	".exr":  FormatEXR,
	".hdr":  FormatRadiance,
	".pic":  FormatRadiance,
	".pfm":  FormatPFM,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
}

// GetFileFormat returns the format type based on file extension
func GetFileFormat(path string) FormatType {
	ext := strings.ToLower(filepath.Ext(path))
	format, exists := formatExtensions[ext]
	if !exists {
		return FormatUnknown
	}
	return format
}

// IsHDRFormat reports whether the format stores floating point radiance
func IsHDRFormat(format FormatType) bool {
	switch format {
	case FormatEXR, FormatRadiance, FormatPFM:
		return true
	}
	return false
}

// GetSupportedExtensions returns all supported image file extensions, sorted
func GetSupportedExtensions() []string {
	extensions := make([]string, 0, len(formatExtensions))
	for ext := range formatExtensions {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

// FormatToExtension returns a canonical file extension for a format
func FormatToExtension(format FormatType) string {
	switch format {
	case FormatEXR:
		return ".exr"
	case FormatRadiance:
		return ".hdr"
	case FormatPFM:
		return ".pfm"
	case FormatTIFF:
		return ".tiff"
	case FormatPNG:
		return ".png"
	case FormatJPEG:
		return ".jpg"
	default:
		return ""
	}
}
