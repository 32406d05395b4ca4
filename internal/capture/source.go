package capture

import (
	"context"
	"os"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/media"
)

// FrameSource is an acquired camera. Close releases it.
type FrameSource interface {
	Capture(ctx context.Context) (media.Image, error)
	Close() error
}

// Opener acquires a FrameSource. Failing here is the "camera denied or
// missing" case.
type Opener func(ctx context.Context) (FrameSource, error)

// FileSource treats an image file as a camera that always shows the
// file's current contents.
type FileSource struct {
	path     string
	maxBytes int64
	mu       sync.Mutex
	closed   bool
}

// OpenFile returns an Opener for path.
func OpenFile(path string, maxBytes int64) Opener {
	return func(ctx context.Context) (FrameSource, error) {
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.NoCamera("no image at " + path)
		}
		if err != nil {
			return nil, apperr.Camera(err, "open image source")
		}
		if info.IsDir() {
			return nil, apperr.NoCamera(path + " is a directory")
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, apperr.Camera(err, "open image source")
		}
		_ = f.Close()
		return &FileSource{path: path, maxBytes: maxBytes}, nil
	}
}

func (s *FileSource) Capture(ctx context.Context) (media.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return media.Image{}, apperr.Camera(ErrClosed, "capture")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return media.Image{}, apperr.Camera(err, "read frame")
	}
	return media.Detect(data, s.maxBytes)
}

func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// UploadSource yields one frame that arrived with a request.
type UploadSource struct {
	frame media.Image
}

// OpenUpload returns an Opener over already decoded frame bytes.
func OpenUpload(data []byte, maxBytes int64) Opener {
	return func(ctx context.Context) (FrameSource, error) {
		if len(data) == 0 {
			return nil, apperr.Camera(ErrNotReady, "no frame uploaded")
		}
		img, err := media.Detect(data, maxBytes)
		if err != nil {
			return nil, err
		}
		return &UploadSource{frame: img}, nil
	}
}

func (s *UploadSource) Capture(ctx context.Context) (media.Image, error) {
	return s.frame, nil
}

func (s *UploadSource) Close() error {
	s.frame = media.Image{}
	return nil
}
