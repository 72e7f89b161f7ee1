package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// DefaultImageTimeout bounds how long a render waits for one image.
const DefaultImageTimeout = 1500 * time.Millisecond

// AssetSource returns the raw bytes behind an image reference.
type AssetSource interface {
	Open(ctx context.Context, ref string) ([]byte, error)
}

// DecodeImage decodes bytes in any format imaging understands, applying
// EXIF orientation.
func DecodeImage(b []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
}

// loadImages fetches and decodes every non-empty ref concurrently. Each
// image gets its own deadline; an image that fails or times out is simply
// absent from the result.
func loadImages(ctx context.Context, src AssetSource, timeout time.Duration, refs map[string]string) map[string]image.Image {
	if timeout <= 0 {
		timeout = DefaultImageTimeout
	}
	out := make(map[string]image.Image, len(refs))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for key, ref := range refs {
		if ref == "" || src == nil {
			continue
		}
		wg.Add(1)
		go func(key, ref string) {
			defer wg.Done()
			img, err := loadOne(ctx, src, timeout, ref)
			if err != nil {
				slog.Warn("Image not ready, rendering without it", "slot", key, "ref", ref, "err", err)
				return
			}
			mu.Lock()
			out[key] = img
			mu.Unlock()
		}(key, ref)
	}
	wg.Wait()
	return out
}

func loadOne(ctx context.Context, src AssetSource, timeout time.Duration, ref string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)
	go func() {
		b, err := src.Open(ctx, ref)
		if err != nil {
			ch <- result{err: err}
			return
		}
		img, err := DecodeImage(b)
		ch <- result{img: img, err: err}
	}()

	select {
	case r := <-ch:
		return r.img, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for %s: %w", ref, ctx.Err())
	}
}
