// Package timing assigns each scene a start and end time on the narration
// timeline, proportional to the number of words the scene narrates.
package timing
