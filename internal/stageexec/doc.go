// Package stageexec runs a single render stage with uniform logging and
// history recording. Both the full render workflow and the single-stage CLI
// commands go through Run.
package stageexec
