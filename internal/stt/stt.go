// Package stt provides speech-to-text backends.
//
// Supported backends:
//   - google: Google Cloud Speech-to-Text REST API
//   - companion: recovers the transcript written next to a synthesized or
//     placeholder artifact (no real recognition)
package stt

import (
	"context"
	"fmt"

	"github.com/kotoba-dev/kotoba/internal/config"
)

// Recognizer converts an audio file to text.
type Recognizer interface {
	// Recognize transcribes the audio file at path.
	Recognize(ctx context.Context, path string) (string, error)
}

// New creates a Recognizer based on the config backend setting.
func New(cfg *config.STTConfig) (Recognizer, error) {
	switch cfg.Backend {
	case "google":
		return NewGoogleRecognizer(cfg.GoogleAPIKey, cfg.Language)
	case "companion", "":
		return NewCompanionRecognizer(), nil
	default:
		return nil, fmt.Errorf("stt: unknown backend %q (supported: google, companion)", cfg.Backend)
	}
}
