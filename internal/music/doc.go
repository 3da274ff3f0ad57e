// Package music lays a randomly chosen background track under a finished
// video. The track is attenuated and tail-aligned so that it ends with the
// video, then summed with the narration without ducking or normalization.
package music
