package compose

import (
	"fmt"
	"math"
	"strconv"
)

// Aspect is a width:height ratio.
type Aspect struct {
	W int
	H int
}

// Portrait is the 9:16 vertical frame.
var Portrait = Aspect{W: 9, H: 16}

// PanCrop is the moving crop window over one still image.
type PanCrop struct {
	SrcW, SrcH int
	// Width and Height are the window size. Width is clamped to SrcW when the
	// image is narrower than the aspect requires.
	Width, Height int
	Duration      float64
	Reverse       bool // right to left
}

// NewPanCrop builds the 9:16 pan for the scene at index; even indices pan left
// to right and odd ones right to left.
func NewPanCrop(srcW, srcH int, duration float64, index int) PanCrop {
	return NewPanCropAspect(srcW, srcH, duration, index, Portrait)
}

// NewPanCropAspect is NewPanCrop with a custom aspect ratio.
func NewPanCropAspect(srcW, srcH int, duration float64, index int, aspect Aspect) PanCrop {
	if aspect.W <= 0 || aspect.H <= 0 {
		aspect = Portrait
	}
	w := int(math.Round(float64(srcH) * float64(aspect.W) / float64(aspect.H)))
	if w > srcW {
		w = srcW
	}
	return PanCrop{
		SrcW:     srcW,
		SrcH:     srcH,
		Width:    w,
		Height:   srcH,
		Duration: duration,
		Reverse:  index%2 != 0,
	}
}

// Travel is the horizontal distance the window moves, W-w.
func (p PanCrop) Travel() int {
	if d := p.SrcW - p.Width; d > 0 {
		return d
	}
	return 0
}

func (p PanCrop) static() bool {
	return p.Travel() == 0 || p.Duration <= 0
}

// X returns the window's left edge at time t seconds into the clip.
func (p PanCrop) X(t float64) int {
	if p.static() {
		return 0
	}
	travel := float64(p.Travel())
	var x float64
	if p.Reverse {
		x = math.Floor(travel - t*travel/p.Duration)
	} else {
		x = math.Floor(t * travel / p.Duration)
	}
	return int(math.Max(0, math.Min(x, travel)))
}

// Window returns the crop rectangle (x, y, w, h) at time t.
func (p PanCrop) Window(t float64) (x, y, w, h int) {
	return p.X(t), 0, p.Width, p.Height
}

// Expression renders X as an ffmpeg crop x-expression in t, so the encoder
// evaluates the same function per frame.
func (p PanCrop) Expression() string {
	if p.static() {
		return "0"
	}
	travel := p.Travel()
	d := strconv.FormatFloat(p.Duration, 'f', -1, 64)
	if p.Reverse {
		return fmt.Sprintf("clip(floor(%d-t*%d/%s),0,%d)", travel, travel, d, travel)
	}
	return fmt.Sprintf("clip(floor(t*%d/%s),0,%d)", travel, d, travel)
}
