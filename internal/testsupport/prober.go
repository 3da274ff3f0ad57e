package testsupport

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"shortreel/internal/media/ffprobe"
)

// FakeProber returns canned ffprobe results keyed by path.
type FakeProber struct {
	mu      sync.Mutex
	Results map[string]ffprobe.Result
	Default *ffprobe.Result
	Err     error
	calls   []string
}

// NewFakeProber constructs an empty FakeProber.
func NewFakeProber() *FakeProber {
	return &FakeProber{Results: make(map[string]ffprobe.Result)}
}

// Set registers the result for path.
func (f *FakeProber) Set(path string, result ffprobe.Result) *FakeProber {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Results[path] = result
	return f
}

// Inspect implements ffprobe.Prober.
func (f *FakeProber) Inspect(_ context.Context, path string) (ffprobe.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if f.Err != nil {
		return ffprobe.Result{}, f.Err
	}
	if result, ok := f.Results[path]; ok {
		return result, nil
	}
	if f.Default != nil {
		return *f.Default, nil
	}
	return ffprobe.Result{}, fmt.Errorf("fake prober: no result for %s", path)
}

// Calls returns the number of Inspect invocations.
func (f *FakeProber) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// AudioResult describes an audio-only file of the given length.
func AudioResult(seconds float64) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "audio", CodecName: "mp3"}},
		Format:  ffprobe.Format{Duration: strconv.FormatFloat(seconds, 'f', -1, 64)},
	}
}

// ImageResult describes a still image of the given size.
func ImageResult(width, height int) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "video", CodecName: "png", Width: width, Height: height}},
	}
}

// VideoResult describes a rendered video.
func VideoResult(width, height int, seconds float64, withAudio bool) ffprobe.Result {
	result := ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "video", CodecName: "h264", Width: width, Height: height}},
		Format:  ffprobe.Format{Duration: strconv.FormatFloat(seconds, 'f', -1, 64)},
	}
	if withAudio {
		result.Streams = append(result.Streams, ffprobe.Stream{CodecType: "audio", CodecName: "aac"})
	}
	return result
}
