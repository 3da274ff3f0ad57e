// Package captions burns word-synchronized captions into the composed video.
//
// Every transcript word becomes a pair of drawtext overlays: a black shadow
// drawn first and the styled word drawn over it. Both are confined to the
// word's time span through the filter's enable expression, so the whole
// caption track is applied in a single ffmpeg pass.
package captions
