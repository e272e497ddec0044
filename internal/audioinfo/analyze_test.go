package audioinfo

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kotoba-dev/kotoba/internal/audio"
	"github.com/kotoba-dev/kotoba/internal/tts"
)

// writeTone writes a mono 16kHz sine wave and returns its path.
func writeTone(t *testing.T, freq float64, seconds float64) string {
	t.Helper()

	const rate = 16000
	n := int(seconds * rate)
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/rate))
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := audio.WriteWAV(path, samples, rate, 1); err != nil {
		t.Fatalf("writing test wav: %v", err)
	}
	return path
}

func TestAnalyzeWAV(t *testing.T) {
	path := writeTone(t, 440, 0.5)

	p, err := Analyze(path, false)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if p.Extension != ".wav" {
		t.Errorf("Extension = %q, want .wav", p.Extension)
	}
	if p.IsPlaceholder {
		t.Error("IsPlaceholder = true for real audio")
	}
	if p.Channels != 1 {
		t.Errorf("Channels = %d, want 1", p.Channels)
	}
	if p.SampleWidth != 2 {
		t.Errorf("SampleWidth = %d, want 2", p.SampleWidth)
	}
	if p.FrameRate != 16000 {
		t.Errorf("FrameRate = %d, want 16000", p.FrameRate)
	}
	if p.Frames != 8000 {
		t.Errorf("Frames = %d, want 8000", p.Frames)
	}
	if math.Abs(p.DurationSeconds-0.5) > 0.001 {
		t.Errorf("DurationSeconds = %f, want 0.5", p.DurationSeconds)
	}
	if p.Spectral != nil {
		t.Error("Spectral set without withSpectral")
	}
}

func TestAnalyzeSpectral(t *testing.T) {
	path := writeTone(t, 440, 0.5)

	p, err := Analyze(path, true)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if p.Spectral == nil {
		t.Fatal("Spectral = nil with withSpectral")
	}

	// A pure 440Hz tone should have its spectral centroid near 440Hz.
	if p.Spectral.CentroidHz < 300 || p.Spectral.CentroidHz > 600 {
		t.Errorf("CentroidHz = %f, want near 440", p.Spectral.CentroidHz)
	}
	if p.Spectral.RolloffHz < p.Spectral.CentroidHz {
		t.Errorf("RolloffHz = %f below centroid %f", p.Spectral.RolloffHz, p.Spectral.CentroidHz)
	}
	// RMS of a 0.5-amplitude sine is about 0.354.
	if math.Abs(p.Spectral.RMS-0.354) > 0.05 {
		t.Errorf("RMS = %f, want ~0.354", p.Spectral.RMS)
	}
	if p.Spectral.ZeroCrossingRate <= 0 {
		t.Errorf("ZeroCrossingRate = %f, want > 0", p.Spectral.ZeroCrossingRate)
	}
}

func TestAnalyzePlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.wav")
	if err := tts.WritePlaceholder(path, "こんにちは"); err != nil {
		t.Fatalf("writing placeholder: %v", err)
	}

	p, err := Analyze(path, false)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !p.IsPlaceholder {
		t.Error("IsPlaceholder = false for placeholder file")
	}
	if !p.HasTranscript {
		t.Error("HasTranscript = false, companion transcript exists")
	}
	if p.TranscriptChars != 5 {
		t.Errorf("TranscriptChars = %d, want 5", p.TranscriptChars)
	}
	if p.Note == "" {
		t.Error("Note empty for placeholder")
	}
	if p.Channels != 0 || p.Frames != 0 {
		t.Error("format fields set for placeholder file")
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := Analyze(filepath.Join(t.TempDir(), "nope.wav"), false)
	if err == nil {
		t.Error("Analyze() error = nil for missing file")
	}
}

func TestAnalyzeUndecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("not a riff header at all"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Analyze(path, false)
	if err != nil {
		t.Fatalf("Analyze() error = %v, want nil with Note set", err)
	}
	if p.Note == "" {
		t.Error("Note empty for undecodable file")
	}
	if p.SizeBytes == 0 {
		t.Error("SizeBytes = 0, stat info should still be reported")
	}
}

func TestAnalyzeUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Analyze(path, false)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if p.Note == "" {
		t.Error("Note empty for unsupported format")
	}
}

func TestMonoFloats(t *testing.T) {
	// Stereo frames downmix to the channel average.
	data := []int{16384, -16384, 8192, 8192}
	out := monoFloats(data, 2, 16)

	if len(out) != 2 {
		t.Fatalf("monoFloats() returned %d frames, want 2", len(out))
	}
	if out[0] != 0 {
		t.Errorf("frame 0 = %f, want 0", out[0])
	}
	if math.Abs(out[1]-0.25) > 1e-9 {
		t.Errorf("frame 1 = %f, want 0.25", out[1])
	}
}
