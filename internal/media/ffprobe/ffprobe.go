package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Duration   string `json:"duration"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Prober inspects a media file.
type Prober interface {
	Inspect(ctx context.Context, path string) (Result, error)
}

// OutputFunc runs a command and returns its combined output.
type OutputFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// CLI runs the ffprobe binary.
type CLI struct {
	Binary string
	output OutputFunc
}

// NewCLI returns a Prober for the given ffprobe binary.
func NewCLI(binary string) *CLI {
	return &CLI{Binary: binary, output: combinedOutput}
}

// WithOutputFunc replaces command execution, for tests.
func (c *CLI) WithOutputFunc(fn OutputFunc) *CLI {
	if fn != nil {
		c.output = fn
	}
	return c
}

// Inspect executes ffprobe against path and decodes the JSON response.
func (c *CLI) Inspect(ctx context.Context, path string) (Result, error) {
	binary := strings.TrimSpace(c.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}
	run := c.output
	if run == nil {
		run = combinedOutput
	}

	output, err := run(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	return r.countStreams("video")
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	return r.countStreams("audio")
}

// HasAudio reports whether at least one audio stream is present.
func (r Result) HasAudio() bool {
	return r.AudioStreamCount() > 0
}

func (r Result) countStreams(kind string) int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, kind) {
			count++
		}
	}
	return count
}

// Dimensions returns the frame size of the first video stream.
func (r Result) Dimensions() (width, height int, ok bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") && stream.Width > 0 && stream.Height > 0 {
			return stream.Width, stream.Height, true
		}
	}
	return 0, 0, false
}

// DurationSeconds returns the container duration in seconds. When the
// container does not report one, the longest stream duration is used. The
// result is 0 when unavailable and NaN when the value does not parse.
func (r Result) DurationSeconds() float64 {
	if d := parseFloat(r.Format.Duration); d != 0 {
		return d
	}
	longest := 0.0
	for _, stream := range r.Streams {
		if d := parseFloat(stream.Duration); d > longest {
			longest = d
		}
	}
	return longest
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
