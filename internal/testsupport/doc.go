// Package testsupport provides fixtures shared by package tests: a temp-dir
// config builder, project artifact writers, a canned ffprobe, and a spy ffmpeg
// runner that counts invocations.
package testsupport
