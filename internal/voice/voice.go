// Package voice builds the text read aloud on the detail view and
// interprets the voice commands spoken there.
package voice

import (
	"strings"
)

// Settings are the speech parameters the client should use.
type Settings struct {
	Lang   string  `json:"lang"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}

// DefaultSettings speaks slightly slower than normal for clarity.
var DefaultSettings = Settings{Lang: "en-US", Rate: 0.9, Pitch: 1.0, Volume: 1.0}

// Narration is the text spoken for a piece of equipment. Catalog entries
// opened without a description get a pointer to the question form instead.
func Narration(name, category, description string) string {
	var sb strings.Builder
	sb.WriteString("Equipment identified: ")
	sb.WriteString(name)
	sb.WriteString(". ")

	if category != "" {
		sb.WriteString("Category: ")
		sb.WriteString(category)
		sb.WriteString(". ")
	}

	if description != "" {
		sb.WriteString("Description: ")
		sb.WriteString(description)
	} else {
		sb.WriteString("This is a catalog entry for ")
		sb.WriteString(name)
		sb.WriteString(". Use the form below to ask specific questions.")
	}
	return sb.String()
}

type Command string

const (
	CommandNone         Command = "none"
	CommandScanAnother  Command = "scan_another"
	CommandStopSpeaking Command = "stop_speaking"
)

// ScanPath is where CommandScanAnother navigates.
const ScanPath = "/"

const (
	phraseScanAnother = "another equipment"
	phraseStop        = "okay"
)

// ParseCommand maps the latest recognised transcript to a command.
// "another equipment" wins over "okay" when both are present.
func ParseCommand(transcript string) Command {
	t := strings.ToLower(strings.TrimSpace(transcript))
	switch {
	case strings.Contains(t, phraseScanAnother):
		return CommandScanAnother
	case strings.Contains(t, phraseStop):
		return CommandStopSpeaking
	default:
		return CommandNone
	}
}

// Navigation returns the path a command navigates to, or "".
func (c Command) Navigation() string {
	if c == CommandScanAnother {
		return ScanPath
	}
	return ""
}
