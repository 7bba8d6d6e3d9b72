package imageprocessor

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

// ImageLoaderRegistry maintains a registry of image loaders
type ImageLoaderRegistry struct {
	loaders       map[string]ImageLoader
	defaultLoader ImageLoader
	mutex         sync.RWMutex
}

// NewImageLoaderRegistry creates a new image loader registry
func NewImageLoaderRegistry() *ImageLoaderRegistry {
	registry := &ImageLoaderRegistry{
		loaders: make(map[string]ImageLoader),
	}

	registry.registerRadianceLoaders()
	registry.registerStandardLoaders()

	return registry
}

// registerRadianceLoaders registers loaders for HDR formats. Probe files
// with unknown extensions go to the radiance loader.
func (r *ImageLoaderRegistry) registerRadianceLoaders() {
	radianceLoader := NewRadianceImageLoader()
	r.RegisterLoader(".exr", radianceLoader)
	r.RegisterLoader(".hdr", radianceLoader)
	r.RegisterLoader(".pic", radianceLoader)
	r.RegisterLoader(".pfm", radianceLoader)

	tiffLoader := NewTiffImageLoader()
	r.RegisterLoader(".tif", tiffLoader)
	r.RegisterLoader(".tiff", tiffLoader)

	r.defaultLoader = radianceLoader
}

// registerStandardLoaders registers loaders for 8-bit formats
func (r *ImageLoaderRegistry) registerStandardLoaders() {
	standardLoader := NewStandardImageLoader()
	r.RegisterLoader(".png", standardLoader)
	r.RegisterLoader(".jpg", standardLoader)
	r.RegisterLoader(".jpeg", standardLoader)
}

// RegisterLoader registers a new loader for a specific file extension
func (r *ImageLoaderRegistry) RegisterLoader(ext string, loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ext = strings.ToLower(ext)
	r.loaders[ext] = loader
}

// GetLoader returns the appropriate loader for the given path
func (r *ImageLoaderRegistry) GetLoader(path string) ImageLoader {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	if loader, ok := r.loaders[ext]; ok {
		return loader
	}

	return r.defaultLoader
}

// CanLoadFile reports whether a loader is registered for the file's
// extension. Files it rejects still go to the default loader.
func (r *ImageLoaderRegistry) CanLoadFile(path string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	_, ok := r.loaders[ext]
	return ok
}

// LoadImage loads an image using the appropriate registered loader
func (r *ImageLoaderRegistry) LoadImage(path string) (gocv.Mat, error) {
	loader := r.GetLoader(path)
	if loader == nil {
		return gocv.NewMat(), fmt.Errorf("no suitable loader found for: %s", path)
	}

	return loader.LoadImage(path)
}
