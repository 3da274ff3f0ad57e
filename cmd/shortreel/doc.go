// Package main hosts the shortreel CLI entrypoint and command graph.
//
// The Cobra command tree renders projects end to end ("render"), runs single
// stages ("timing", "compose", "subtitles", "music"), inspects artifacts and
// dependencies ("status"), lists recorded stage runs ("history"), and
// scaffolds configuration ("config"). Configuration, logging, and the history
// store are resolved once per invocation by commandContext.
//
// Keep this package lean: rendering logic lives in internal/workflow and the
// stage packages; commands only translate flags into orchestrator calls.
package main
