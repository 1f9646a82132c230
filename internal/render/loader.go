package render

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

// ErrNoImage is returned for an empty image reference.
var ErrNoImage = errors.New("no image")

// ImageSource resolves an image reference to a decoded image.
type ImageSource interface {
	Load(ref string) (image.Image, error)
}

// FileLoader decodes images from disk, honouring EXIF orientation, and
// keeps the most recent decodes in memory. Safe for concurrent use.
type FileLoader struct {
	mu      sync.Mutex
	max     int
	order   []string
	entries map[string]image.Image
}

// NewFileLoader creates a loader caching up to max images.
func NewFileLoader(max int) *FileLoader {
	if max < 1 {
		max = 1
	}
	return &FileLoader{max: max, entries: make(map[string]image.Image)}
}

// Load opens the image at path.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, ErrNoImage
	}
	l.mu.Lock()
	if img, ok := l.entries[path]; ok {
		l.mu.Unlock()
		return img, nil
	}
	l.mu.Unlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[path]; !ok {
		l.order = append(l.order, path)
		if len(l.order) > l.max {
			delete(l.entries, l.order[0])
			l.order = l.order[1:]
		}
	}
	l.entries[path] = img
	return img, nil
}

// Forget drops a cached image, e.g. after the file was replaced.
func (l *FileLoader) Forget(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, path)
	for i, p := range l.order {
		if p == path {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}
