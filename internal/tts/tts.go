// Package tts converts Japanese text to speech by trying a prioritized list
// of synthesis engines and falling back to a placeholder artifact when none
// can produce audio.
//
// Supported engines:
//   - gtts: Google Translate TTS endpoint (MP3, no credentials)
//   - googlecloud: Google Cloud Text-to-Speech REST API (WAV, API key)
//   - openjtalk: local Open JTalk binary (WAV)
package tts

import "context"

// Engine is a single text-to-speech backend.
type Engine interface {
	// Name returns the engine identifier used in config and diagnostics.
	Name() string
	// Available reports whether the engine can be attempted at all
	// (credentials present, binary on PATH). Computed at construction,
	// not probed per call.
	Available() bool
	// Synthesize renders text as audio near outPath and returns the path
	// actually written. An engine may substitute its native extension
	// (gtts always emits MP3 regardless of the requested suffix).
	Synthesize(ctx context.Context, text, outPath string) (string, error)
}

// Candidate describes one engine the selector may attempt.
type Candidate struct {
	Name      string
	Available bool
	Priority  int // lower is tried first
}

// Outcome is the result of one synthesis request. It is always well-formed:
// total failure is reported through Success=false and Message, never through
// a returned error.
type Outcome struct {
	Success      bool
	EngineUsed   string
	ArtifactPath string
	Message      string
}

// SynthesizeFunc produces an audio artifact for text using the named engine,
// returning the path written.
type SynthesizeFunc func(name, text string) (string, error)
