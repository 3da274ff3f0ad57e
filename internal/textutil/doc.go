// Package textutil provides the small text helpers shared by the render stages:
// project title sanitization, numeric-aware filename ordering, narration word
// counting, and caption casing.
package textutil
