package compose

import (
	"fmt"
	"math"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"shortreel/internal/media/encode"
	"shortreel/internal/project"
	"shortreel/internal/services"
)

// Frame is the output video size.
type Frame struct {
	Width  int
	Height int
}

// Source is a probed scene image.
type Source struct {
	Path   string
	Width  int
	Height int
}

// Clip is one scene of the composition.
type Clip struct {
	Image    string
	Duration float64
	Pan      PanCrop
	// Offset is where this clip starts fading in on the output timeline.
	Offset float64
}

// Settings are the encoder parameters of a composition.
type Settings struct {
	FPS         int
	Crossfade   float64
	VideoCodec  string
	AudioCodec  string
	PixelFormat string
	Preset      string
	Aspect      Aspect
}

// Plan is a fully resolved composition.
type Plan struct {
	Clips     []Clip
	Frame     Frame
	Narration string
	Settings  Settings
	Total     float64
}

// Offsets returns the crossfade start of each clip: offset_k is the sum of the
// preceding durations minus k crossfades. The first offset is 0.
func Offsets(durations []float64, crossfade float64) []float64 {
	out := make([]float64, len(durations))
	sum := 0.0
	for k, d := range durations {
		out[k] = sum - float64(k)*crossfade
		sum += d
	}
	if len(out) > 0 {
		out[0] = 0
	}
	return out
}

// TotalDuration is the composed length, sum(d) - (n-1)*crossfade.
func TotalDuration(durations []float64, crossfade float64) float64 {
	if len(durations) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	return sum - float64(len(durations)-1)*crossfade
}

// NewPlan validates the inputs and resolves each clip's pan and offset. When
// frame is zero it is derived from the first image's crop window.
func NewPlan(sources []Source, durations []float64, narration string, frame Frame, settings Settings) (Plan, error) {
	fail := func(msg string) (Plan, error) {
		return Plan{}, services.Wrap(services.ErrValidation, project.StageCompose, "plan", msg, nil)
	}
	n := len(sources)
	switch {
	case n == 0:
		return fail("no scenes to compose")
	case len(durations) != n:
		return fail(fmt.Sprintf("found %d images for %d scenes", n, len(durations)))
	case settings.FPS <= 0:
		return fail("frame rate must be positive")
	case settings.Crossfade < 0 || math.IsNaN(settings.Crossfade):
		return fail("crossfade must not be negative")
	}
	for i, d := range durations {
		if math.IsNaN(d) || d <= 0 {
			return fail(fmt.Sprintf("scene %d has non-positive duration %v", i, d))
		}
		if n > 1 && d < settings.Crossfade {
			return fail(fmt.Sprintf("scene %d lasts %.3fs, shorter than the %.3fs crossfade", i, d, settings.Crossfade))
		}
		if sources[i].Width <= 0 || sources[i].Height <= 0 {
			return fail(fmt.Sprintf("image %s has no dimensions", sources[i].Path))
		}
	}

	offsets := Offsets(durations, settings.Crossfade)
	clips := make([]Clip, n)
	for i, src := range sources {
		clips[i] = Clip{
			Image:    src.Path,
			Duration: durations[i],
			Pan:      NewPanCropAspect(src.Width, src.Height, durations[i], i, settings.Aspect),
			Offset:   offsets[i],
		}
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		frame = Frame{Width: clips[0].Pan.Width &^ 1, Height: clips[0].Pan.Height &^ 1}
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return fail("first image is too small for an output frame")
	}
	return Plan{
		Clips:     clips,
		Frame:     frame,
		Narration: narration,
		Settings:  settings,
		Total:     TotalDuration(durations, settings.Crossfade),
	}, nil
}

// clipStream builds the looped, panned, and scaled stream of one clip.
func (p Plan) clipStream(c Clip) *ffmpeg.Stream {
	fps := fmt.Sprint(p.Settings.FPS)
	return ffmpeg.Input(c.Image, ffmpeg.KwArgs{
		"loop":      "1",
		"framerate": fps,
		"t":         encode.Seconds(c.Duration),
	}).
		Filter("crop", ffmpeg.Args{}, ffmpeg.KwArgs{
			"w": fmt.Sprint(c.Pan.Width),
			"h": fmt.Sprint(c.Pan.Height),
			"x": c.Pan.Expression(),
			"y": "0",
		}).
		Filter("scale", ffmpeg.Args{fmt.Sprint(p.Frame.Width), fmt.Sprint(p.Frame.Height)}).
		Filter("setsar", ffmpeg.Args{"1"}).
		Filter("fps", ffmpeg.Args{fps}).
		Filter("format", ffmpeg.Args{p.Settings.PixelFormat})
}

// Graph returns the ffmpeg-go graph that renders the plan.
func (p Plan) Graph() encode.GraphBuilder {
	return func(out string) *ffmpeg.Stream {
		streams := make([]*ffmpeg.Stream, len(p.Clips))
		for i, c := range p.Clips {
			streams[i] = p.clipStream(c)
		}

		video := streams[0]
		switch {
		case len(streams) == 1:
		case p.Settings.Crossfade == 0:
			video = ffmpeg.Filter(streams, "concat", ffmpeg.Args{}, ffmpeg.KwArgs{
				"n": fmt.Sprint(len(streams)),
				"v": "1",
				"a": "0",
			})
		default:
			for i := 1; i < len(streams); i++ {
				video = ffmpeg.Filter([]*ffmpeg.Stream{video, streams[i]}, "xfade", ffmpeg.Args{}, ffmpeg.KwArgs{
					"transition": "fade",
					"duration":   encode.Seconds(p.Settings.Crossfade),
					"offset":     encode.Seconds(p.Clips[i].Offset),
				})
			}
		}

		narration := ffmpeg.Input(p.Narration).Audio()
		kwargs := ffmpeg.KwArgs{
			"c:v":      p.Settings.VideoCodec,
			"c:a":      p.Settings.AudioCodec,
			"pix_fmt":  p.Settings.PixelFormat,
			"r":        fmt.Sprint(p.Settings.FPS),
			"movflags": "+faststart",
		}
		if p.Settings.Preset != "" {
			kwargs["preset"] = p.Settings.Preset
		}
		return ffmpeg.Output([]*ffmpeg.Stream{video, narration}, out, kwargs)
	}
}
