package orchestrator

import (
	"time"

	"github.com/MUHAMMAD-FARMAN/Trusai/capture"
	"github.com/MUHAMMAD-FARMAN/Trusai/emotion"
)

// RunOptions are the per-run inputs that do not come from config.
type RunOptions struct {
	// Transcripts is a text file replayed one line per capture interval
	// through the text emotion service. Optional.
	Transcripts string
	// Speech carries readings from an external voice producer. Optional.
	Speech <-chan emotion.Reading
	// Listen overrides report.listen when set.
	Listen string
	// Outputs overrides session.outputs when set.
	Outputs string
}

// Summary describes a finished session.
type Summary struct {
	SessionID      string        `json:"session_id"`
	StartedAt      time.Time     `json:"started_at"`
	EndedAt        time.Time     `json:"ended_at"`
	CameraError    string        `json:"camera_error,omitempty"`
	Capture        capture.Stats `json:"capture"`
	FacialReadings int           `json:"facial_readings"`
	SpeechReadings int           `json:"speech_readings"`
	OutputDir      string        `json:"output_dir,omitempty"`
}
