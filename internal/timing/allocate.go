package timing

import (
	"fmt"
	"math"

	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/textutil"
)

// Span is one scene's position on the narration timeline.
type Span struct {
	Start float64
	End   float64
	Words int
}

// Duration returns End-Start.
func (s Span) Duration() float64 { return s.End - s.Start }

// Allocation is the result of Allocate.
type Allocation struct {
	Spans      []Span
	TotalWords int
	PerWord    float64 // seconds of narration per word
}

// Allocate splits total seconds of narration across scenes in proportion to
// their word counts. Spans are contiguous: the first starts at 0 and each one
// ends where the next begins. The last end equals total up to floating-point
// accumulation; no correction is applied.
func Allocate(total float64, scenes []project.Scene) (Allocation, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return Allocation{}, services.Wrap(services.ErrValidation, project.StageTiming, "allocate",
			fmt.Sprintf("narration duration %v must be positive", total), nil)
	}
	if len(scenes) == 0 {
		return Allocation{}, services.Wrap(services.ErrValidation, project.StageTiming, "allocate", "script has no scenes", nil)
	}

	words := make([]int, len(scenes))
	totalWords := 0
	for i, scene := range scenes {
		words[i] = textutil.WordCount(scene.Script)
		totalWords += words[i]
	}
	if totalWords == 0 {
		return Allocation{}, services.Wrap(services.ErrValidation, project.StageTiming, "allocate", "script has no words", nil)
	}
	for i, n := range words {
		if n == 0 {
			return Allocation{}, services.Wrap(services.ErrValidation, project.StageTiming, "allocate",
				fmt.Sprintf("scene %d has no words and would get a zero-length clip", i), nil)
		}
	}

	perWord := total / float64(totalWords)
	spans := make([]Span, len(scenes))
	clock := 0.0
	for i, n := range words {
		start := clock
		clock += float64(n) * perWord
		spans[i] = Span{Start: start, End: clock, Words: n}
	}
	return Allocation{Spans: spans, TotalWords: totalWords, PerWord: perWord}, nil
}

// Apply returns a copy of scenes with the allocation's times filled in.
func (a Allocation) Apply(scenes []project.Scene) []project.Scene {
	out := project.Script{Scenes: scenes}.Clone().Scenes
	for i := range out {
		if i >= len(a.Spans) {
			break
		}
		start, end := a.Spans[i].Start, a.Spans[i].End
		out[i].Start = &start
		out[i].End = &end
	}
	return out
}
