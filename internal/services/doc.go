// Package services defines shared utilities consumed by the render stages.
//
// Key responsibilities:
//   - Context helpers that stamp the project title, stage name, and run
//     correlation identifier for logging.
//   - Structured error markers plus the Wrap helper that translate stage
//     failures into consistent history statuses (failed vs review).
//
// Stage code should wrap every returned error with one of the markers so the
// orchestrator and CLI can classify it without string matching.
package services
