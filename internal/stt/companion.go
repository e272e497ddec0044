package stt

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kotoba-dev/kotoba/internal/tts"
)

// CompanionRecognizer performs no real recognition: it recovers the
// transcript that the tts package writes next to each artifact. It is the
// default backend, usable without credentials.
type CompanionRecognizer struct{}

// NewCompanionRecognizer creates a companion-transcript backend.
func NewCompanionRecognizer() *CompanionRecognizer {
	return &CompanionRecognizer{}
}

// Recognize reads the companion transcript for the audio file at path.
// The trailing note block after the first "---" divider is stripped.
func (c *CompanionRecognizer) Recognize(_ context.Context, path string) (string, error) {
	txtPath := tts.TranscriptPath(path)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("stt: no companion transcript for %s: %w", path, err)
	}

	content := string(data)
	if i := strings.Index(content, "---"); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSpace(content), nil
}
