package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/scenereel/internal/assets"
	"github.com/ivlev/scenereel/internal/audio"
	"github.com/ivlev/scenereel/internal/config"
	"github.com/ivlev/scenereel/internal/content"
	"github.com/ivlev/scenereel/internal/engine"
	"github.com/ivlev/scenereel/internal/preview"
	"github.com/ivlev/scenereel/internal/raster"
	"github.com/ivlev/scenereel/internal/system"
	"github.com/ivlev/scenereel/internal/timeline"
	"github.com/ivlev/scenereel/internal/video"
)

var buildVersion = "dev"

func main() {
	// Raise open file limits (macOS/Linux)
	system.InitResourceLimits()

	cfg := config.Default()

	scenarioPtr := flag.String("scenario", "", "Scenario YAML (default: the newest file in scenarios/, else the built-in demo)")
	outputPtr := flag.String("output", "", "Output video (default: generated in output/)")
	configPtr := flag.String("config", "", "YAML settings file; flags override it")
	widthPtr := flag.Int("width", cfg.Width, "Width")
	heightPtr := flag.Int("height", cfg.Height, "Height")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	workersPtr := flag.Int("workers", cfg.Workers, "Render goroutines")
	soundsPtr := flag.String("sounds", cfg.SoundsDir, "Directory with the sound files named by the scenario")
	assetsPtr := flag.String("assets", cfg.AssetsDir, "Directory with the card images named by the scenario")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = auto; x264: CRF 1-51, VideoToolbox: bitrate = Q*100 kbit/s)")
	strictPtr := flag.Bool("strict", false, "Fail on overlapping audio cues instead of warning")
	statsPtr := flag.Bool("stats", false, "Print a performance report and append it to benchmark.log")
	previewPtr := flag.Int("preview", -1, "Print the scene tree of frame N and exit")
	cuesPtr := flag.Bool("cues", false, "Print the audio schedule and exit")
	writeDemoPtr := flag.String("write-demo", "", "Write the built-in demo scenario to PATH and exit")
	postsPtr := flag.String("posts", "", "List the articles in DIR and exit")

	flag.Parse()

	if *writeDemoPtr != "" {
		os.MkdirAll(filepath.Dir(*writeDemoPtr), 0755)
		if err := timeline.WriteScenario(timeline.Demo(), *writeDemoPtr); err != nil {
			log.Fatalf("[-] Could not write demo scenario: %v", err)
		}
		fmt.Printf("[+++] Demo scenario saved: %s\n", *writeDemoPtr)
		return
	}

	if *postsPtr != "" {
		listPosts(*postsPtr)
		return
	}

	if *configPtr != "" {
		if err := config.LoadFile(cfg, *configPtr); err != nil {
			log.Fatalf("[-] Config error: %v", err)
		}
	}

	// explicit flags beat the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "preset":
			cfg.Preset = *presetPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "sounds":
			cfg.SoundsDir = *soundsPtr
		case "assets":
			cfg.AssetsDir = *assetsPtr
		case "quality":
			cfg.Quality = *qualityPtr
		case "strict":
			cfg.StrictAudio = *strictPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "scenario":
			cfg.ScenarioPath = *scenarioPtr
		case "output":
			cfg.OutputVideo = *outputPtr
		}
	})
	cfg.BuildVersion = buildVersion

	if err := cfg.ApplyPreset(); err != nil {
		log.Fatalf("[-] %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Invalid settings: %v", err)
	}

	sc := loadScenario(cfg)

	eng, err := engine.New(sc, cfg)
	if err != nil {
		log.Fatalf("[-] Scenario error: %v", err)
	}

	if *previewPtr >= 0 {
		fmt.Println(preview.Frame(eng.RenderFrame(*previewPtr), eng.FPS()))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *cuesPtr {
		fmt.Println(preview.Cues(eng.Cues(), eng.Warnings(), eng.FPS()))
		checkSoundFiles(ctx, eng.Cues(), cfg.SoundsDir, eng.FPS())
		return
	}

	os.MkdirAll("output", 0755)
	if cfg.OutputVideo == "" {
		name := "demo"
		if cfg.ScenarioPath != "" {
			base := filepath.Base(cfg.ScenarioPath)
			name = strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), " ", "_")
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", name, timestamp))
	}

	if cfg.VideoEncoder == "" {
		cfg.VideoEncoder, _ = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Hardware encoder detected: %s\n", cfg.VideoEncoder)
		}
	}
	if cfg.Quality == 0 {
		cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
	}

	r := raster.New(cfg.Width, cfg.Height, assets.NewStore(cfg.AssetsDir))
	project := engine.NewProject(cfg, eng, &video.FFmpegEncoder{}, r)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputVideo)
}

// loadScenario reads the configured scenario, falling back to the newest
// file in scenarios/ and then to the built-in demo.
func loadScenario(cfg *config.Config) *timeline.Scenario {
	if cfg.ScenarioPath == "" {
		latest, err := timeline.FindLatestScenario(timeline.ScenariosDir)
		if err != nil {
			fmt.Println("[*] No scenario given, using the built-in demo")
			return timeline.Demo()
		}
		cfg.ScenarioPath = latest
		fmt.Printf("[*] Selected scenario: %s\n", latest)
	}

	sc, err := timeline.ReadScenario(cfg.ScenarioPath)
	if err != nil {
		log.Fatalf("[-] Could not read scenario: %v", err)
	}
	return sc
}

// checkSoundFiles compares each sound file with its cue window. Longer files
// are cut at the end of the window when mixed.
func checkSoundFiles(ctx context.Context, cues []audio.Cue, soundsDir string, fps int) {
	seen := map[string]bool{}
	for _, c := range cues {
		if seen[c.SoundID] {
			continue
		}
		seen[c.SoundID] = true

		if !system.HasExtension(c.SoundID, system.AudioExtensions) {
			log.Printf("[!] %s: not a known audio format", c.SoundID)
		}
		path := filepath.Join(soundsDir, c.SoundID)
		if _, err := os.Stat(path); err != nil {
			log.Printf("[!] %s: missing from %s", c.SoundID, soundsDir)
			continue
		}
		secs, err := system.GetAudioDuration(ctx, path)
		if err != nil {
			log.Printf("[!] %s: %v", c.SoundID, err)
			continue
		}
		window := float64(c.Duration) / float64(fps)
		if secs > window {
			log.Printf("[!] %s lasts %.2fs but its cue window is %.2fs; the tail will be cut", c.SoundID, secs, window)
		}
	}
}

func listPosts(dir string) {
	posts, err := content.NewStore(dir).List()
	if err != nil {
		log.Fatalf("[-] Could not read posts: %v", err)
	}
	for _, p := range posts {
		fmt.Printf("%s  %-32s  %s\n", p.Date, p.Slug, p.Title)
	}
}
