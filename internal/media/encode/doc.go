// Package encode executes ffmpeg filter graphs built with ffmpeg-go.
//
// Stages describe their work as an ffmpeg-go stream graph targeting a path
// supplied by Runner.Render. The runner compiles the graph to an argument list,
// executes ffmpeg through an injectable command runner, and promotes the
// finished file into place only when ffmpeg succeeds. Tests swap the command
// runner for a spy so no encoder is needed.
package encode
