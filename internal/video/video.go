package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/scenereel/internal/audio"
)

// StreamParams describes the raw frame stream handed to ffmpeg.
type StreamParams struct {
	Width, Height int
	FPS           int
	Encoder       string
	Quality       int
	Output        string
}

// FrameWriter accepts frames in order until it is closed.
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

type VideoEncoder interface {
	Start(ctx context.Context, p StreamParams) (FrameWriter, error)
	MuxAudio(ctx context.Context, videoPath string, cues []audio.Cue, soundsDir string, fps int, volume float64, output string) error
}

type FFmpegEncoder struct{}

// Session is a running ffmpeg process reading RGBA frames on stdin.
type Session struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    bytes.Buffer
	frames int
}

func (e *FFmpegEncoder) Start(ctx context.Context, p StreamParams) (FrameWriter, error) {
	s := &Session{}
	s.cmd = exec.CommandContext(ctx, "ffmpeg", e.buildFFmpegArgs(p)...)
	s.cmd.Stdout = &s.out
	s.cmd.Stderr = &s.out

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(p StreamParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", p.Encoder,
	}
	args = append(args, qualityArgs(p.Encoder, p.Quality)...)
	args = append(args, p.Output)
	return args
}

// qualityArgs maps one quality number onto each encoder's own knob.
func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		bitrate := quality * 100 // kbit/s, 75 -> 7.5 Mbit/s
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// WriteFrame sends one frame. Frames must arrive in order.
func (s *Session) WriteFrame(img image.Image) error {
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write frame %d: %w", s.frames, err)
	}
	s.frames++
	return nil
}

// Frames is the number of frames written so far.
func (s *Session) Frames() int {
	return s.frames
}

// Close ends the stream and waits for ffmpeg to finish the file.
func (s *Session) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, s.out.String())
	}
	return nil
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	// ffmpeg expects tightly packed rows starting at the origin
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

// MuxAudio lays every cue's sound file over the silent video at its start
// frame. Each sound is trimmed to its cue duration. Cues whose file is
// missing are left out; with no playable cues the video is copied as is.
func (e *FFmpegEncoder) MuxAudio(ctx context.Context, videoPath string, cues []audio.Cue, soundsDir string, fps int, volume float64, output string) error {
	var playable []audio.Cue
	var inputs []string
	for _, c := range cues {
		path := filepath.Join(soundsDir, c.SoundID)
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("[!] Sound %s not found, cue at frame %d is silent\n", c.SoundID, c.Start)
			continue
		}
		playable = append(playable, c)
		inputs = append(inputs, path)
	}

	var args []string
	if len(playable) == 0 {
		args = []string{"-y", "-i", videoPath, "-c", "copy", output}
	} else {
		args = buildMixArgs(videoPath, inputs, playable, fps, volume, output)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mux error: %w, output: %s", err, string(out))
	}
	return nil
}

func buildMixArgs(videoPath string, inputs []string, cues []audio.Cue, fps int, volume float64, output string) []string {
	args := []string{"-y", "-i", videoPath}
	for _, in := range inputs {
		args = append(args, "-i", in)
	}

	args = append(args,
		"-filter_complex", MixFilter(cues, fps, volume),
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		output,
	)
	return args
}

// MixFilter builds the filter graph for cues fed as inputs 1..n after the
// video. Audio is padded with silence so -shortest follows the video.
func MixFilter(cues []audio.Cue, fps int, volume float64) string {
	if fps <= 0 {
		fps = 30
	}
	var b strings.Builder
	for i, c := range cues {
		dur := float64(c.Duration) / float64(fps)
		delay := c.Start * 1000 / fps
		fmt.Fprintf(&b, "[%d:a]atrim=0:%.6f,asetpts=PTS-STARTPTS,adelay=%d|%d,volume=%.3f[a%d];",
			i+1, dur, delay, delay, volume, i)
	}
	for i := range cues {
		fmt.Fprintf(&b, "[a%d]", i)
	}
	fmt.Fprintf(&b, "amix=inputs=%d:duration=longest:normalize=0,apad[aout]", len(cues))
	return b.String()
}
