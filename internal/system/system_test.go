package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.mp3", "b.wav", "c.txt"}
	for i, n := range names {
		p := filepath.Join(dir, n)
		os.WriteFile(p, []byte("x"), 0644)
		mod := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(p, mod, mod)
	}

	latest, err := FindLatest(dir, AudioExtensions)
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	// c.txt is newer but not audio
	if filepath.Base(latest) != "b.wav" {
		t.Errorf("expected b.wav, got %s", latest)
	}

	if _, err := FindLatest(dir, []string{".png"}); err == nil {
		t.Error("expected error when nothing matches")
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Peon.MP3", true},
		{"peon.ogg", true},
		{"peon.mp3.txt", false},
		{"mp3", false},
	}
	for _, tt := range tests {
		if got := HasExtension(tt.name, AudioExtensions); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("2.640000\n")
	if err != nil || d != 2.64 {
		t.Errorf("expected 2.64, got %v (%v)", d, err)
	}
	if _, err := parseDuration("N/A"); err == nil {
		t.Error("expected error for N/A")
	}
}

func TestDefaultQuality(t *testing.T) {
	tests := map[string]int{
		"h264_videotoolbox": 75,
		"h264_nvenc":        28,
		"libx264":           23,
	}
	for enc, want := range tests {
		if got := DefaultQuality(enc); got != want {
			t.Errorf("%s: expected %d, got %d", enc, want, got)
		}
	}
}

func TestFitBatch(t *testing.T) {
	s := HostStats{LogicalCPUs: 8, AvailableMemory: 100 << 20}
	frame := 1280 * 720 * 4 // ~3.5 MiB

	if got := s.FitBatch(8, frame); got != 8 {
		t.Errorf("small batch should fit, got %d", got)
	}
	if got := s.FitBatch(1000, frame); got != 14 {
		t.Errorf("expected batch capped at 14, got %d", got)
	}
	if got := (HostStats{}).FitBatch(1000, frame); got != 1000 {
		t.Errorf("unknown memory must not cap, got %d", got)
	}
	tiny := HostStats{AvailableMemory: 1024}
	if got := tiny.FitBatch(32, frame); got != 1 {
		t.Errorf("expected at least one frame, got %d", got)
	}
}

func TestFitWorkers(t *testing.T) {
	s := HostStats{LogicalCPUs: 4}
	if got := s.FitWorkers(16); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
	if got := s.FitWorkers(0); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := s.FitWorkers(2); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestReadHostStats(t *testing.T) {
	s := ReadHostStats()
	if s.LogicalCPUs < 1 {
		t.Errorf("expected at least one CPU, got %d", s.LogicalCPUs)
	}
	t.Logf("host: %s", s)
}

func TestFramePool(t *testing.T) {
	p := NewFramePool()
	r := image.Rect(0, 0, 16, 9)

	img := p.Get(r)
	if img.Bounds() != r {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	p.Put(img)
	p.Put(nil)

	other := p.Get(image.Rect(0, 0, 8, 8))
	if other.Bounds().Dx() != 8 {
		t.Errorf("pools must be keyed by size, got %v", other.Bounds())
	}
}
