package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scenereel/internal/config"
	"github.com/ivlev/scenereel/internal/raster"
	"github.com/ivlev/scenereel/internal/system"
	"github.com/ivlev/scenereel/internal/video"
)

// Project renders an engine's frames to a video file with its cue audio.
type Project struct {
	Config  *config.Config
	Engine  *Engine
	Encoder video.VideoEncoder
	Raster  *raster.Rasterizer
	tempDir string
}

func NewProject(cfg *config.Config, eng *Engine, ve video.VideoEncoder, r *raster.Rasterizer) *Project {
	return &Project{
		Config:  cfg,
		Engine:  eng,
		Encoder: ve,
		Raster:  r,
	}
}

func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()

	var err error
	p.tempDir, err = os.MkdirTemp("", "scenereel_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tempDir)

	total := p.Engine.TotalFrames()
	if total <= 0 {
		return fmt.Errorf("scenario has no frames to render")
	}

	host := system.ReadHostStats()
	bounds := p.Raster.Bounds()
	workers := host.FitWorkers(p.Config.Workers)
	batch := host.FitBatch(p.Config.BatchSize, bounds.Dx()*bounds.Dy()*4)

	fmt.Println("--- [PROJECT: SCENE ENGINE] ---")
	fmt.Printf("[*] Scenario: %s | Frames: %d | Cues: %d\n", p.Config.ScenarioPath, total, len(p.Engine.Cues()))
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | Encoder: %s\n", bounds.Dx(), bounds.Dy(), p.Engine.FPS(), p.Config.VideoEncoder)
	fmt.Printf("[*] Host: %s | Workers: %d | Batch: %d\n", host, workers, batch)
	fmt.Println("-----------------------------")

	silent := filepath.Join(p.tempDir, "silent.mp4")
	session, err := p.Encoder.Start(ctx, video.StreamParams{
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		FPS:     p.Engine.FPS(),
		Encoder: p.Config.VideoEncoder,
		Quality: p.Config.Quality,
		Output:  silent,
	})
	if err != nil {
		return err
	}

	renderStart := time.Now()
	var renderTime, writeTime time.Duration
	for start := 0; start < total; start += batch {
		n := min(batch, total-start)

		t0 := time.Now()
		frames, err := p.renderBatch(ctx, start, n, workers, bounds)
		renderTime += time.Since(t0)
		if err != nil {
			session.Close()
			return fmt.Errorf("render frames %d-%d: %w", start, start+n-1, err)
		}

		t0 = time.Now()
		for _, img := range frames {
			if err == nil {
				err = session.WriteFrame(img)
			}
			system.PutFrame(img)
		}
		writeTime += time.Since(t0)
		if err != nil {
			session.Close()
			return err
		}
		fmt.Printf("[>] Ready: %d/%d\n", start+n, total)
	}

	if err := session.Close(); err != nil {
		return err
	}
	encodeTime := time.Since(renderStart)

	fmt.Println("[*] Mixing cue audio...")
	muxStart := time.Now()
	err = p.Encoder.MuxAudio(ctx, silent, p.Engine.Cues(), p.Config.SoundsDir, p.Engine.FPS(), p.Config.Volume, p.Config.OutputVideo)
	if err != nil {
		return fmt.Errorf("audio mux failed: %w", err)
	}

	if p.Config.ShowStats {
		p.report(Stats{
			Frames:  total,
			Total:   time.Since(startTime),
			Render:  renderTime,
			Write:   writeTime,
			Encode:  encodeTime,
			Mux:     time.Since(muxStart),
			Workers: workers,
			MemUsed: system.ReadHostStats().MemoryUsed,
		})
	}

	return nil
}

// renderBatch draws frames [start, start+n) in parallel into pooled buffers.
// The result is in frame order.
func (p *Project) renderBatch(ctx context.Context, start, n, workers int, bounds image.Rectangle) ([]*image.RGBA, error) {
	frames := make([]*image.RGBA, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img := system.GetFrame(bounds)
			p.Raster.Draw(img, p.Engine.RenderFrame(start+i).Layers)
			frames[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, img := range frames {
			system.PutFrame(img)
		}
		return nil, err
	}
	return frames, nil
}

// Stats is the timing breakdown of one run.
type Stats struct {
	Frames  int
	Total   time.Duration
	Render  time.Duration
	Write   time.Duration
	Encode  time.Duration
	Mux     time.Duration
	Workers int
	MemUsed float64
}

// FPS is the effective end-to-end frame rate.
func (s Stats) FPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}

func (p *Project) report(s Stats) {
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Frame Upload: %.2fs\n"+
			"Encoding (GPU/CPU): %.2fs\n"+
			"Audio Mux: %.2fs\n"+
			"Workers: %d | Memory Used: %.0f%%\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, s.Total.Seconds(), s.Render.Seconds(), s.Write.Seconds(), s.Encode.Seconds(), s.Mux.Seconds(), s.Workers, s.MemUsed, s.FPS(),
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Scenario: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.ScenarioPath),
		s.Frames,
		s.Total.Seconds(),
		s.Render.Seconds(),
		s.Encode.Seconds(),
		s.FPS(),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
	}
}
