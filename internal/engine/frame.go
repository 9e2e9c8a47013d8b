package engine

import (
	"fmt"
	"log"

	"github.com/ivlev/scenereel/internal/audio"
	"github.com/ivlev/scenereel/internal/config"
	"github.com/ivlev/scenereel/internal/scene"
	"github.com/ivlev/scenereel/internal/timeline"
)

// FrameState is everything the render pipeline needs for one frame.
type FrameState struct {
	Frame  int
	Layers []scene.Layer
	Cues   []audio.Cue // cues sounding on this frame
}

// Engine samples a validated scenario. All of its methods are safe for
// concurrent use: nothing is mutated after New returns.
type Engine struct {
	fps      int
	total    int
	timeline *timeline.Timeline
	composer *scene.Composer
	cues     []audio.Cue
	warnings []audio.Warning
}

// New validates a scenario and derives its scene windows and audio cues.
// Structural problems fail with *timeline.MalformedTimelineError; authoring
// problems are logged and kept in Warnings unless cfg.StrictAudio is set.
func New(sc *timeline.Scenario, cfg *config.Config) (*Engine, error) {
	fallback := cfg.FallbackDuration
	if sc.FallbackDuration != nil {
		fallback = *sc.FallbackDuration
	}
	sched := audio.NewScheduler(sc.Sounds, fallback)

	tl, err := timeline.Load(sc.Events, timeline.Options{Resolve: sched.Resolvable})
	if err != nil {
		return nil, err
	}

	cues, warnings := sched.Schedule(tl)
	overlaps := audio.Validate(cues)
	if cfg.StrictAudio {
		if err := audio.Check(cues); err != nil {
			return nil, fmt.Errorf("scenario audio: %w", err)
		}
	}
	warnings = append(warnings, overlaps...)
	for _, w := range warnings {
		log.Printf("[!] audio: %s", w)
	}

	fps := sc.FPS
	if fps <= 0 {
		fps = scene.DefaultConfig().FPS
	}
	sceneCfg := scene.DefaultConfig()
	sceneCfg.FPS = fps
	composer := scene.NewComposer(tl, sc.Status, sc.Cards, sceneCfg)

	total := sc.DurationInFrames
	if total <= 0 {
		total = composer.End()
	}

	return &Engine{
		fps:      fps,
		total:    total,
		timeline: tl,
		composer: composer,
		cues:     cues,
		warnings: warnings,
	}, nil
}

// RenderFrame returns the visual tree and active cues at frame n.
func (e *Engine) RenderFrame(n int) FrameState {
	return FrameState{
		Frame:  n,
		Layers: e.composer.Compose(n),
		Cues:   audio.ActiveAt(e.cues, n),
	}
}

func (e *Engine) FPS() int {
	return e.fps
}

// TotalFrames is the configured length of the rendered sequence.
func (e *Engine) TotalFrames() int {
	return e.total
}

// Cues returns the full audio schedule.
func (e *Engine) Cues() []audio.Cue {
	out := make([]audio.Cue, len(e.cues))
	copy(out, e.cues)
	return out
}

func (e *Engine) Warnings() []audio.Warning {
	out := make([]audio.Warning, len(e.warnings))
	copy(out, e.warnings)
	return out
}

func (e *Engine) Windows() []scene.SceneWindow {
	return e.composer.Windows()
}

func (e *Engine) Timeline() *timeline.Timeline {
	return e.timeline
}
