// Package audioinfo inspects audio artifacts: container properties for WAV
// and MP3 files, placeholder detection for failed synthesis output, and
// optional spectral features.
package audioinfo

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/kotoba-dev/kotoba/internal/tts"
)

// Properties describes an audio file. Format-specific fields are zero when
// they do not apply; Note explains anything unusual (placeholder files,
// undecodable content).
type Properties struct {
	Path            string  `json:"path"`
	SizeBytes       int64   `json:"size_bytes"`
	Extension       string  `json:"extension"`
	IsPlaceholder   bool    `json:"is_placeholder"`
	HasTranscript   bool    `json:"has_transcript"`
	TranscriptChars int     `json:"transcript_chars"`
	Channels        int     `json:"channels,omitempty"`
	SampleWidth     int     `json:"sample_width_bytes,omitempty"`
	FrameRate       int     `json:"frame_rate_hz,omitempty"`
	Frames          int     `json:"frames,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Note            string  `json:"note,omitempty"`

	Spectral *SpectralFeatures `json:"spectral,omitempty"`
}

// Analyze inspects the audio file at path. withSpectral additionally
// computes spectral features, which requires decodable WAV content.
func Analyze(path string, withSpectral bool) (Properties, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Properties{}, fmt.Errorf("audioinfo: %w", err)
	}

	p := Properties{
		Path:      path,
		SizeBytes: info.Size(),
		Extension: strings.ToLower(filepath.Ext(path)),
	}

	if txt, err := os.ReadFile(tts.TranscriptPath(path)); err == nil {
		p.HasTranscript = true
		content := string(txt)
		if i := strings.Index(content, "---"); i >= 0 {
			content = content[:i]
		}
		p.TranscriptChars = len([]rune(strings.TrimSpace(content)))
	}

	if isPlaceholder(path) {
		p.IsPlaceholder = true
		p.Note = "placeholder artifact, not actual audio"
		return p, nil
	}

	switch p.Extension {
	case ".wav":
		err = analyzeWAV(path, &p, withSpectral)
	case ".mp3":
		err = analyzeMP3(path, &p)
	default:
		p.Note = fmt.Sprintf("unsupported audio format %q", p.Extension)
	}
	if err != nil {
		// The file exists but cannot be decoded; report what is known.
		slog.Debug("audio decode failed", "path", path, "error", err)
		p.Note = err.Error()
	}

	return p, nil
}

// isPlaceholder reports whether the file starts with the synthesis
// placeholder marker.
func isPlaceholder(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	prefix := make([]byte, len(tts.PlaceholderMarker))
	if _, err := io.ReadFull(f, prefix); err != nil {
		return false
	}
	return string(prefix) == tts.PlaceholderMarker
}

func analyzeWAV(path string, p *Properties, withSpectral bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening wav: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decoding wav: %w", err)
	}
	if buf == nil || buf.Format == nil {
		return fmt.Errorf("decoding wav: no format information")
	}

	channels := buf.Format.NumChannels
	if channels == 0 {
		channels = 1
	}

	p.Channels = channels
	p.SampleWidth = int(d.BitDepth) / 8
	p.FrameRate = buf.Format.SampleRate
	p.Frames = len(buf.Data) / channels
	if buf.Format.SampleRate > 0 {
		p.DurationSeconds = float64(p.Frames) / float64(buf.Format.SampleRate)
	}

	if withSpectral && len(buf.Data) > 0 {
		samples := monoFloats(buf.Data, channels, int(d.BitDepth))
		sf := computeSpectral(samples, buf.Format.SampleRate)
		p.Spectral = &sf
	}

	return nil
}

func analyzeMP3(path string, p *Properties) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening mp3: %w", err)
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("decoding mp3: %w", err)
	}

	// The decoder always produces 16-bit stereo output.
	p.Channels = 2
	p.SampleWidth = 2
	p.FrameRate = d.SampleRate()
	p.Frames = int(d.Length() / 4)
	if d.SampleRate() > 0 {
		p.DurationSeconds = float64(p.Frames) / float64(d.SampleRate())
	}
	return nil
}

// monoFloats downmixes interleaved integer samples to mono and rescales
// them to [-1, 1].
func monoFloats(data []int, channels, bitDepth int) []float64 {
	if channels < 1 {
		channels = 1
	}
	scale := float64(int64(1) << (bitDepth - 1))
	if bitDepth == 0 {
		scale = 1 << 15
	}

	frames := len(data) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(data[i*channels+c])
		}
		out[i] = sum / float64(channels) / scale
	}
	return out
}
