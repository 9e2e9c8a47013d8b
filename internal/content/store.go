// Package content reads the long-form articles published next to the videos:
// markdown files with a YAML front matter block.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("post not found")

var extensions = []string{".mdx", ".md"}

// Meta is a post's front matter plus its slug.
type Meta struct {
	Slug        string `yaml:"-"`
	Title       string `yaml:"title"`
	Date        string `yaml:"date"` // YYYY-MM-DD, compared as text
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	HeroImage   string `yaml:"heroImage,omitempty"`
}

type Post struct {
	Meta Meta
	Body string
}

type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// List returns every post's metadata, newest first.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	var posts []Meta
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		slug, ok := trimExt(entry.Name())
		if !ok {
			continue
		}
		post, err := s.read(filepath.Join(s.Dir, entry.Name()), slug)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post.Meta)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// Get returns one post. Unknown or malformed slugs give ErrNotFound.
func (s *Store) Get(slug string) (*Post, error) {
	if slug == "" || strings.ContainsAny(slug, `/\`) || slug == "." || slug == ".." {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	for _, ext := range extensions {
		path := filepath.Join(s.Dir, slug+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return s.read(path, slug)
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, slug)
}

func (s *Store) read(path, slug string) (*Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	post, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	post.Meta.Slug = slug
	return post, nil
}

var fence = []byte("---")

// Parse splits a document into front matter and body. A document without a
// leading fence is all body.
func Parse(data []byte) (*Post, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	post := &Post{}

	rest, ok := cutLine(data, fence)
	if !ok {
		post.Body = string(data)
		return post, nil
	}

	idx := closingFence(rest)
	if idx < 0 {
		return nil, errors.New("front matter is not closed")
	}
	if err := yaml.Unmarshal(rest[:idx], &post.Meta); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	body := rest[idx+len(fence):]
	body = bytes.TrimLeft(body, "\r\n")
	post.Body = string(body)
	return post, nil
}

// cutLine strips a first line equal to prefix.
func cutLine(data, prefix []byte) ([]byte, bool) {
	line, rest, found := bytes.Cut(data, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimRight(line, " \r"), prefix) {
		return nil, false
	}
	return rest, true
}

// closingFence finds a line consisting of the fence alone.
func closingFence(data []byte) int {
	offset := 0
	for offset <= len(data) {
		line := data[offset:]
		end := bytes.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if bytes.Equal(bytes.TrimRight(line, " \r"), fence) {
			return offset
		}
		if end < 0 {
			return -1
		}
		offset += end + 1
	}
	return -1
}

func trimExt(name string) (string, bool) {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}
