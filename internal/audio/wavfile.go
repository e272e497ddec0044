package audio

import (
	"fmt"
	"os"
	"path/filepath"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV saves float32 samples in [-1, 1] as a 16-bit PCM WAV file.
func WriteWAV(path string, samples []float32, sampleRate, channels uint32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("audio: creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, int(sampleRate), 16, int(channels), 1)

	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: int(channels),
			SampleRate:  int(sampleRate),
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(clamp(s) * 32767)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audio: writing samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: finalizing %s: %w", path, err)
	}
	return nil
}

func clamp(s float32) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return float64(s)
}
