// Package project holds the on-disk model of one short video: the Script and
// its Scenes, the word-level Transcript, the artifact Layout derived from the
// sanitized title, and the versioned State the orchestrator threads through
// the render stages.
package project
