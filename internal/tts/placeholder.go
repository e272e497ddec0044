package tts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PlaceholderMarker is the first line of a placeholder artifact. Analysis
// code checks for it before treating a file as audio.
const PlaceholderMarker = "PLACEHOLDER AUDIO FILE"

// transcriptDivider separates the spoken text from trailing notes in a
// companion transcript. The stt companion backend splits on it.
const transcriptDivider = "---"

// WritePlaceholder writes a deterministic non-audio marker file at path and
// a companion transcript next to it holding the text that would have been
// spoken. The target directory is created if needed.
func WritePlaceholder(path, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	marker := PlaceholderMarker + "\n" +
		"This file stands in for synthesized audio; no engine produced output.\n"
	if err := os.WriteFile(path, []byte(marker), 0644); err != nil {
		return fmt.Errorf("writing placeholder: %w", err)
	}

	if err := WriteTranscript(path, text); err != nil {
		return err
	}
	return nil
}

// WriteTranscript writes the companion .txt transcript for an audio artifact.
func WriteTranscript(audioPath, text string) error {
	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(transcriptDivider + " transcript of text-to-speech input " + transcriptDivider + "\n")

	txtPath := TranscriptPath(audioPath)
	if err := os.WriteFile(txtPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	return nil
}

// TranscriptPath returns the companion transcript path for an audio file.
func TranscriptPath(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return strings.TrimSuffix(audioPath, ext) + ".txt"
}
