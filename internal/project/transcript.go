package project

import (
	"encoding/json"
	"fmt"
	"os"
)

// Segment is one transcribed word with its time span in seconds.
type Segment struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcript is the word-level transcription of the narration.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// LoadTranscript reads a Transcript JSON document.
func LoadTranscript(path string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Transcript{}, err
	}
	var transcript Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return Transcript{}, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return transcript, nil
}
