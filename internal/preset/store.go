// Package preset saves named configuration snapshots in a YAML file.
package preset

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/youruser/coverapp/internal/cover"
	"github.com/youruser/coverapp/internal/util"
)

// KeyPrefix namespaces presets inside the store file.
const KeyPrefix = "preset_"

var (
	ErrNotFound    = errors.New("preset not found")
	ErrInvalidName = errors.New("preset names may only contain letters, digits, spaces, '-' and '_'")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9 _-]{1,64}$`)

// Preset is one saved snapshot.
type Preset struct {
	Name    string       `json:"name" yaml:"name"`
	SavedAt time.Time    `json:"saved_at" yaml:"saved_at"`
	Config  cover.Config `json:"config" yaml:"config"`
}

// record is the on-disk form. Config stays a raw node so it can be decoded
// over fresh defaults: fields missing from old snapshots keep their default
// and unknown fields are ignored.
type record struct {
	Name    string    `yaml:"name"`
	SavedAt time.Time `yaml:"saved_at"`
	Config  yaml.Node `yaml:"config"`
}

// Store is a preset file. Every call reads and rewrites the whole file;
// keys without the preset prefix are carried through untouched.
type Store struct {
	Path     string
	Defaults cover.Config

	mu sync.Mutex
}

func NewStore(path string, defaults cover.Config) *Store {
	return &Store{Path: path, Defaults: defaults}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !validName.MatchString(name) {
		return "", ErrInvalidName
	}
	return name, nil
}

func (s *Store) read() (map[string]yaml.Node, error) {
	out := map[string]yaml.Node{}
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("reading presets from %s: %w", s.Path, err)
	}
	return out, nil
}

func (s *Store) write(all map[string]yaml.Node) error {
	b, err := yaml.Marshal(all)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(s.Path, b)
}

func (s *Store) decode(r record) (Preset, error) {
	cfg := s.Defaults
	if !r.Config.IsZero() {
		if err := r.Config.Decode(&cfg); err != nil {
			return Preset{}, fmt.Errorf("decoding preset %q: %w", r.Name, err)
		}
	}
	return Preset{Name: r.Name, SavedAt: r.SavedAt, Config: cfg.Clamp()}, nil
}

func (s *Store) decodeNode(n yaml.Node) (Preset, error) {
	var r record
	if err := n.Decode(&r); err != nil {
		return Preset{}, fmt.Errorf("decoding preset: %w", err)
	}
	return s.decode(r)
}

// Save stores cfg under name, overwriting an existing preset.
func (s *Store) Save(name string, cfg cover.Config) (Preset, error) {
	name, err := normalizeName(name)
	if err != nil {
		return Preset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return Preset{}, err
	}
	r := record{Name: name, SavedAt: time.Now().UTC().Truncate(time.Second)}
	if err := r.Config.Encode(cfg); err != nil {
		return Preset{}, err
	}
	var node yaml.Node
	if err := node.Encode(r); err != nil {
		return Preset{}, err
	}
	all[KeyPrefix+name] = node
	if err := s.write(all); err != nil {
		return Preset{}, err
	}
	return Preset{Name: name, SavedAt: r.SavedAt, Config: cfg}, nil
}

func (s *Store) Load(name string) (Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return Preset{}, err
	}
	n, ok := all[KeyPrefix+strings.TrimSpace(name)]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.decodeNode(n)
}

// List returns every preset sorted by name. Keys without the preset prefix
// are left alone.
func (s *Store) List() ([]Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	out := []Preset{}
	for k, n := range all {
		if !strings.HasPrefix(k, KeyPrefix) {
			continue
		}
		p, err := s.decodeNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	key := KeyPrefix + strings.TrimSpace(name)
	if _, ok := all[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(all, key)
	return s.write(all)
}
