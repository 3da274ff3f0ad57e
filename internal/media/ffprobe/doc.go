// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Prober: the interface stages depend on, so tests can substitute canned results
//   - CLI: the Prober backed by the ffprobe binary
//
// Helper methods on Result expose the facts the render stages need: duration,
// frame dimensions, and whether an audio stream is present.
package ffprobe
