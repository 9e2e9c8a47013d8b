package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
)

var ErrNotFound = errors.New("asset not found")

var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// Store resolves the opaque asset IDs a scenario names (portrait, mascot)
// to decoded images under a directory. Decoded images are cached; a missing
// asset is reported once and then skipped.
type Store struct {
	// Trim crops decoded images to their visible content, so renders with
	// wide transparent margins scale like tightly cropped ones.
	Trim bool

	dir string

	mu       sync.Mutex
	cache    map[string]image.Image
	missing  map[string]bool
	reported map[string]bool
}

func NewStore(dir string) *Store {
	return &Store{
		Trim:     true,
		dir:      dir,
		cache:    make(map[string]image.Image),
		missing:  make(map[string]bool),
		reported: make(map[string]bool),
	}
}

// IDs lists the image files available in the store directory.
func (s *Store) IDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, e := range imageExts {
			if ext == e {
				ids = append(ids, entry.Name())
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Load decodes id, reading from disk only the first time.
func (s *Store) Load(id string) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if img, ok := s.cache[id]; ok {
		return img, nil
	}
	if s.missing[id] {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	img, err := decode(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.missing[id] = true
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	if s.Trim {
		img = trim(img)
	}
	s.cache[id] = img
	return img, nil
}

// Get is Load for the render loop: failures are logged once and yield nil.
func (s *Store) Get(id string) image.Image {
	if id == "" {
		return nil
	}
	img, err := s.Load(id)
	if err != nil {
		s.mu.Lock()
		first := !s.reported[id]
		s.reported[id] = true
		s.mu.Unlock()
		if first {
			log.Printf("[!] asset %s skipped: %v", id, err)
		}
		return nil
	}
	return img
}

// Size reports an asset's dimensions without keeping its pixels.
func (s *Store) Size(id string) (int, int, error) {
	path, err := s.path(id)
	if err != nil {
		return 0, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func (s *Store) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid asset id %q", id)
	}
	return filepath.Join(s.dir, id), nil
}

func decode(path string) (image.Image, error) {
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
