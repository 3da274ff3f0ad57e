// Package compose turns the scene images and narration into the base video.
//
// Each image becomes a still clip lasting its scene's duration. A 9:16 window
// pans across the image (left to right for even scenes, right to left for odd
// ones), the window is scaled to the output frame, and consecutive clips are
// joined with crossfades. The narration track is attached unchanged.
//
// Crossfades overlap neighbouring clips, so the video is shorter than the
// narration by (n-1) crossfade lengths; the encoder trims the narration to the
// video length.
package compose
