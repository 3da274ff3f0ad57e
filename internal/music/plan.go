package music

import (
	"math"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"shortreel/internal/media/encode"
)

// ClipStart is the offset into the track whose remainder ends with the video:
// max(0, track - video).
func ClipStart(trackSeconds, videoSeconds float64) float64 {
	return math.Max(0, trackSeconds-videoSeconds)
}

// Plan is a music mix ready to encode.
type Plan struct {
	Video        string
	Track        string
	VideoSeconds float64
	TrackSeconds float64
	ClipStart    float64
	Volume       float64
	AudioCodec   string
}

// NewPlan computes the tail alignment for track under video.
func NewPlan(video, track string, videoSeconds, trackSeconds, volume float64, audioCodec string) Plan {
	return Plan{
		Video:        video,
		Track:        track,
		VideoSeconds: videoSeconds,
		TrackSeconds: trackSeconds,
		ClipStart:    ClipStart(trackSeconds, videoSeconds),
		Volume:       volume,
		AudioCodec:   audioCodec,
	}
}

// Graph trims and attenuates the track, restarts its timestamps at zero, and
// sums it with the video's audio for the video's length. The video stream is
// copied.
func (p Plan) Graph() encode.GraphBuilder {
	return func(out string) *ffmpeg.Stream {
		video := ffmpeg.Input(p.Video)
		bed := ffmpeg.Input(p.Track).Audio().
			Filter("atrim", ffmpeg.Args{}, ffmpeg.KwArgs{"start": encode.Seconds(p.ClipStart)}).
			Filter("asetpts", ffmpeg.Args{"PTS-STARTPTS"}).
			Filter("volume", ffmpeg.Args{strconv.FormatFloat(p.Volume, 'f', -1, 64)})
		mixed := ffmpeg.Filter([]*ffmpeg.Stream{video.Audio(), bed}, "amix", ffmpeg.Args{}, ffmpeg.KwArgs{
			"inputs":    "2",
			"duration":  "first",
			"normalize": "0",
		})
		return ffmpeg.Output([]*ffmpeg.Stream{video.Video(), mixed}, out, ffmpeg.KwArgs{
			"c:v": "copy",
			"c:a": p.AudioCodec,
		})
	}
}
