package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// OpenJTalkEngine synthesizes speech by running the Open JTalk binary.
// It produces WAV output and needs no network access.
type OpenJTalkEngine struct {
	binary     string
	dictionary string
	voice      string
	available  bool
}

// NewOpenJTalkEngine creates an openjtalk engine. Availability is checked
// once here: the binary must be on PATH and the dictionary and voice files
// must exist.
func NewOpenJTalkEngine(binary, dictionary, voice string) *OpenJTalkEngine {
	e := &OpenJTalkEngine{
		binary:     binary,
		dictionary: dictionary,
		voice:      voice,
	}

	if _, err := exec.LookPath(binary); err != nil {
		return e
	}
	if _, err := os.Stat(dictionary); err != nil {
		return e
	}
	if _, err := os.Stat(voice); err != nil {
		return e
	}
	e.available = true
	return e
}

func (o *OpenJTalkEngine) Name() string { return "openjtalk" }

func (o *OpenJTalkEngine) Available() bool { return o.available }

func (o *OpenJTalkEngine) Synthesize(ctx context.Context, text, outPath string) (string, error) {
	wavPath := withExt(outPath, ".wav")
	if err := os.MkdirAll(filepath.Dir(wavPath), 0755); err != nil {
		return "", fmt.Errorf("openjtalk: creating output dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, o.binary,
		"-x", o.dictionary,
		"-m", o.voice,
		"-ow", wavPath,
	)
	cmd.Stdin = bytes.NewBufferString(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("openjtalk: %w: %s", err, stderr.String())
	}

	// Open JTalk exits zero even when it writes nothing useful.
	if info, err := os.Stat(wavPath); err != nil || info.Size() == 0 {
		return "", fmt.Errorf("openjtalk: no audio written to %s", wavPath)
	}

	if err := WriteTranscript(wavPath, text); err != nil {
		return "", fmt.Errorf("openjtalk: %w", err)
	}
	return wavPath, nil
}
