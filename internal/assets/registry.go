// Package assets keeps uploaded images addressable by their original filename.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/youruser/coverapp/internal/util"
)

// RefPrefix marks references that resolve through the registry.
const RefPrefix = "asset:"

// MaxRemoteSize caps images fetched from URLs.
const MaxRemoteSize = 20 << 20

var (
	ErrNotFound = errors.New("asset not found")
	// ErrLocalRef is returned for disk paths that were not allowed with
	// AllowLocal.
	ErrLocalRef = errors.New("local file reference not allowed")
)

// Asset is one uploaded image. Data is shared and must not be modified.
type Asset struct {
	Ref         string    `json:"ref"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Data        []byte    `json:"-"`
}

// Registry maps filenames to assets. Keys are compared verbatim, so
// "Photo.JPG" and "photo.jpg" are different assets.
type Registry struct {
	byName map[string]*Asset
	byRef  map[string]*Asset
	local  map[string]bool
	mu     sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Asset),
		byRef:  make(map[string]*Asset),
		local:  make(map[string]bool),
	}
}

// AllowLocal lets Open read the given disk paths, typically the configured
// default logo. Reset keeps the list.
func (r *Registry) AllowLocal(paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range paths {
		if p != "" {
			r.local[filepath.Clean(p)] = true
		}
	}
}

// Register stores data under filename, replacing any earlier upload with the
// same name. The previous reference stops resolving.
func (r *Registry) Register(filename string, data []byte) Asset {
	a := &Asset{
		Ref:         RefPrefix + uuid.New().String(),
		Filename:    filename,
		ContentType: http.DetectContentType(data),
		Size:        len(data),
		UploadedAt:  time.Now(),
		Data:        data,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byName[filename]; ok {
		delete(r.byRef, old.Ref)
	}
	r.byName[filename] = a
	r.byRef[a.Ref] = a
	return *a
}

func (r *Registry) Remove(filename string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byName[filename]
	if !ok {
		return false
	}
	delete(r.byName, filename)
	delete(r.byRef, a.Ref)
	return true
}

func (r *Registry) Resolve(filename string) (Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byName[filename]
	if !ok {
		return Asset{}, false
	}
	return *a, true
}

func (r *Registry) ByRef(ref string) (Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byRef[ref]
	if !ok {
		return Asset{}, false
	}
	return *a, true
}

// List returns every asset sorted by filename.
func (r *Registry) List() []Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Asset, 0, len(r.byName))
	for _, a := range r.byName {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = make(map[string]*Asset)
	r.byRef = make(map[string]*Asset)
}

// RegisterURL downloads an image and registers it under the last path
// segment of the URL.
func (r *Registry) RegisterURL(ctx context.Context, rawURL string) (Asset, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Asset{}, fmt.Errorf("invalid image url %q", rawURL)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		name = u.Host
	}
	data, err := util.GetBytes(ctx, rawURL, MaxRemoteSize)
	if err != nil {
		return Asset{}, fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	return r.Register(name, data), nil
}

// Open returns the bytes behind ref. Registry refs resolve in memory,
// http(s) refs are downloaded and anything else is read from disk when it
// was allowed with AllowLocal.
func (r *Registry) Open(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == "":
		return nil, ErrNotFound
	case strings.HasPrefix(ref, RefPrefix):
		a, ok := r.ByRef(ref)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return a.Data, nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return util.GetBytes(ctx, ref, MaxRemoteSize)
	default:
		r.mu.RLock()
		allowed := r.local[filepath.Clean(ref)]
		r.mu.RUnlock()
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrLocalRef, ref)
		}
		b, err := os.ReadFile(ref)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return b, err
	}
}
