package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const post = `---
title: Stop babysitting your terminal
date: 2025-03-01
description: Sound packs for coding agents
author: peon
heroImage: /hero.png
---

Body text.
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(post))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Meta.Title != "Stop babysitting your terminal" || p.Meta.Date != "2025-03-01" {
		t.Errorf("unexpected meta %+v", p.Meta)
	}
	if p.Meta.HeroImage != "/hero.png" {
		t.Errorf("hero image lost: %+v", p.Meta)
	}
	if p.Body != "Body text.\n" {
		t.Errorf("unexpected body %q", p.Body)
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	p, err := Parse([]byte("# Just text\n"))
	if err != nil {
		t.Fatal(err)
	}
	if p.Body != "# Just text\n" || p.Meta.Title != "" {
		t.Errorf("unexpected post %+v", p)
	}
}

func TestParseUnclosed(t *testing.T) {
	if _, err := Parse([]byte("---\ntitle: x\n")); err == nil {
		t.Error("expected error for unclosed front matter")
	}
}

func TestListNewestFirst(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"old.mdx":   "---\ntitle: Old\ndate: 2024-01-10\n---\n",
		"new.md":    "---\ntitle: New\ndate: 2025-06-01\n---\n",
		"mid.mdx":   "---\ntitle: Mid\ndate: 2024-11-30\n---\n",
		"notes.txt": "ignored",
	})

	posts, err := NewStore(dir).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"new", "mid", "old"}
	if len(posts) != len(want) {
		t.Fatalf("expected %d posts, got %+v", len(want), posts)
	}
	for i, slug := range want {
		if posts[i].Slug != slug {
			t.Errorf("position %d: expected %s, got %s", i, slug, posts[i].Slug)
		}
	}
}

func TestGet(t *testing.T) {
	dir := writeFiles(t, map[string]string{"sound-packs.mdx": post})
	s := NewStore(dir)

	p, err := s.Get("sound-packs")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.Meta.Slug != "sound-packs" || p.Meta.Author != "peon" {
		t.Errorf("unexpected meta %+v", p.Meta)
	}

	for _, slug := range []string{"missing", "", "../sound-packs", `a\b`} {
		if _, err := s.Get(slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q): expected ErrNotFound, got %v", slug, err)
		}
	}
}
