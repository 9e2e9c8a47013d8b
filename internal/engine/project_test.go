package engine

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/ivlev/scenereel/internal/audio"
	"github.com/ivlev/scenereel/internal/config"
	"github.com/ivlev/scenereel/internal/raster"
	"github.com/ivlev/scenereel/internal/timeline"
	"github.com/ivlev/scenereel/internal/video"
)

type fakeEncoder struct {
	mu       sync.Mutex
	params   video.StreamParams
	frames   int
	bounds   image.Rectangle
	closed   int
	muxed    []audio.Cue
	muxedOut string
}

func (f *fakeEncoder) Start(ctx context.Context, p video.StreamParams) (video.FrameWriter, error) {
	f.params = p
	return f, nil
}

func (f *fakeEncoder) WriteFrame(img image.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames++
	f.bounds = img.Bounds()
	return nil
}

func (f *fakeEncoder) Close() error {
	f.closed++
	return nil
}

func (f *fakeEncoder) MuxAudio(ctx context.Context, videoPath string, cues []audio.Cue, soundsDir string, fps int, volume float64, output string) error {
	f.muxed = cues
	f.muxedOut = output
	return nil
}

func testProject(t *testing.T) (*Project, *fakeEncoder) {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 64, 36
	cfg.Workers = 4
	cfg.BatchSize = 100
	cfg.OutputVideo = "out.mp4"
	cfg.VideoEncoder = "libx264"

	eng, err := New(timeline.Demo(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	enc := &fakeEncoder{}
	return NewProject(cfg, eng, enc, raster.New(cfg.Width, cfg.Height, nil)), enc
}

func TestProjectRun(t *testing.T) {
	p, enc := testProject(t)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if enc.frames != 840 {
		t.Errorf("expected 840 frames written, got %d", enc.frames)
	}
	if enc.bounds != image.Rect(0, 0, 64, 36) {
		t.Errorf("unexpected frame bounds %v", enc.bounds)
	}
	if enc.params.FPS != 30 || enc.params.Encoder != "libx264" {
		t.Errorf("unexpected stream params %+v", enc.params)
	}
	if enc.closed != 1 {
		t.Errorf("expected the stream closed once, got %d", enc.closed)
	}
	if len(enc.muxed) != 6 || enc.muxedOut != "out.mp4" {
		t.Errorf("expected 6 cues muxed into out.mp4, got %d into %q", len(enc.muxed), enc.muxedOut)
	}
}

func TestProjectRunCancelled(t *testing.T) {
	p, enc := testProject(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if enc.closed != 1 {
		t.Errorf("expected the stream closed after cancel, got %d", enc.closed)
	}
	if enc.muxed != nil {
		t.Error("audio must not be muxed after a failed render")
	}
}

func TestStatsFPS(t *testing.T) {
	if fps := (Stats{}).FPS(); fps != 0 {
		t.Errorf("expected 0 for an empty run, got %v", fps)
	}
}
