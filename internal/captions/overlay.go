package captions

import (
	"math"
	"strings"

	"shortreel/internal/config"
	"shortreel/internal/project"
	"shortreel/internal/textutil"
)

// ShadowColor fills the shadow overlay.
const ShadowColor = "black"

// Style controls caption appearance.
type Style struct {
	FontFile         string
	FontName         string
	FontSize         int
	Color            string
	StrokeColor      string
	StrokeWidth      int
	ShadowOffset     int
	VerticalPosition float64
}

// StyleFromConfig builds a Style from the subtitle and font settings.
func StyleFromConfig(cfg *config.Config) Style {
	return Style{
		FontFile:         cfg.Paths.FontFile,
		FontName:         cfg.Paths.FontName,
		FontSize:         cfg.Subtitles.FontSize,
		Color:            cfg.Subtitles.Color,
		StrokeColor:      cfg.Subtitles.StrokeColor,
		StrokeWidth:      cfg.Subtitles.StrokeWidth,
		ShadowOffset:     cfg.Subtitles.ShadowOffset,
		VerticalPosition: cfg.Subtitles.VerticalPosition,
	}
}

// Overlay is one timed text layer, horizontally centered at row Y.
type Overlay struct {
	Text        string
	Start       float64
	End         float64
	Y           int
	Color       string
	BorderColor string
	BorderWidth int
	Shadow      bool
}

// BuildOverlays returns two overlays per word, shadow then main, in
// transcript order. Blank words and empty time spans are skipped. Overlays are
// centered horizontally at render time, so width only guards against an
// empty frame.
func BuildOverlays(segments []project.Segment, width, height int, style Style) []Overlay {
	if width <= 0 || height <= 0 {
		return nil
	}
	y := int(math.Round(float64(height) * style.VerticalPosition))
	overlays := make([]Overlay, 0, 2*len(segments))
	for _, seg := range segments {
		text := textutil.CaptionText(seg.Word)
		if strings.TrimSpace(text) == "" || !(seg.End > seg.Start) {
			continue
		}
		overlays = append(overlays,
			Overlay{
				Text:        text,
				Start:       seg.Start,
				End:         seg.End,
				Y:           y + style.ShadowOffset,
				Color:       ShadowColor,
				BorderColor: style.StrokeColor,
				BorderWidth: style.StrokeWidth,
				Shadow:      true,
			},
			Overlay{
				Text:        text,
				Start:       seg.Start,
				End:         seg.End,
				Y:           y,
				Color:       style.Color,
				BorderColor: style.StrokeColor,
				BorderWidth: style.StrokeWidth,
			},
		)
	}
	return overlays
}
