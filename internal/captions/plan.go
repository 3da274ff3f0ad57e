package captions

import (
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"shortreel/internal/media/encode"
)

// centerX centers the rendered text box on the frame.
const centerX = "(w-text_w)/2"

// optionEscaper escapes a drawtext option value. ffmpeg-go only applies the
// filtergraph level of escaping, so values must arrive option-escaped.
var optionEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`, `=`, `\=`)

func escapeOption(value string) string {
	return optionEscaper.Replace(value)
}

// Plan is a caption burn-in ready to encode.
type Plan struct {
	Video       string
	Overlays    []Overlay
	Style       Style
	WithAudio   bool
	VideoCodec  string
	PixelFormat string
	Preset      string
}

// DrawtextArgs returns the drawtext options for one overlay.
func (p Plan) DrawtextArgs(o Overlay) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"text":      escapeOption(o.Text),
		"expansion": "none",
		"fontsize":  strconv.Itoa(p.Style.FontSize),
		"fontcolor": o.Color,
		"x":         centerX,
		"y":         strconv.Itoa(o.Y),
		"enable":    fmt.Sprintf("gte(t,%s)*lt(t,%s)", encode.Seconds(o.Start), encode.Seconds(o.End)),
	}
	if p.Style.FontFile != "" {
		args["fontfile"] = escapeOption(p.Style.FontFile)
	} else if p.Style.FontName != "" {
		args["font"] = escapeOption(p.Style.FontName)
	}
	if o.BorderWidth > 0 && o.BorderColor != "" {
		args["borderw"] = strconv.Itoa(o.BorderWidth)
		args["bordercolor"] = o.BorderColor
	}
	return args
}

// Graph chains one drawtext filter per overlay over the video stream. Later
// filters draw on top, so each shadow sits under its word. Audio is copied.
func (p Plan) Graph() encode.GraphBuilder {
	return func(out string) *ffmpeg.Stream {
		in := ffmpeg.Input(p.Video)
		video := in.Video()
		for _, o := range p.Overlays {
			video = video.Filter("drawtext", ffmpeg.Args{}, p.DrawtextArgs(o))
		}
		streams := []*ffmpeg.Stream{video}
		kwargs := ffmpeg.KwArgs{
			"c:v":     p.VideoCodec,
			"pix_fmt": p.PixelFormat,
		}
		if p.Preset != "" {
			kwargs["preset"] = p.Preset
		}
		if p.WithAudio {
			streams = append(streams, in.Audio())
			kwargs["c:a"] = "copy"
		}
		return ffmpeg.Output(streams, out, kwargs)
	}
}
