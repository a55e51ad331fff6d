package capture

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"

	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

// Camera acquires a video stream. Acquire fails when the device is missing or
// access is denied.
type Camera interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream is an acquired camera.
type Stream interface {
	// Frame returns the current video frame.
	Frame() (image.Image, error)
	// Metadata delivers the intrinsic video size whenever it becomes known.
	// The channel is closed when the stream stops.
	Metadata() <-chan emotion.Size
	// Stop releases every track held by the stream.
	Stop()
}

// StillCamera replays image files from a directory as a video stream, cycling
// through them in name order. It stands in for a real device on hosts without one.
type StillCamera struct {
	Dir string
}

var stillExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

func (c StillCamera) Acquire(ctx context.Context) (Stream, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("open frames dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !stillExt[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(c.Dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames in %s", c.Dir)
	}
	sort.Strings(paths)

	first, err := decodeFile(paths[0])
	if err != nil {
		return nil, err
	}
	s := &stillStream{paths: paths, meta: make(chan emotion.Size, 1)}
	b := first.Bounds()
	s.meta <- emotion.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	return s, nil
}

type stillStream struct {
	paths []string

	mu      sync.Mutex
	next    int
	stopped bool
	meta    chan emotion.Size
}

func (s *stillStream) Frame() (image.Image, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil, fmt.Errorf("stream stopped")
	}
	p := s.paths[s.next%len(s.paths)]
	s.next++
	s.mu.Unlock()
	return decodeFile(p)
}

func (s *stillStream) Metadata() <-chan emotion.Size { return s.meta }

func (s *stillStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.meta)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
