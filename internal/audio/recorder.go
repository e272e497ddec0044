// Package audio captures microphone input and writes it to WAV files,
// giving the speech-to-text path a local input source.
package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

// Recorder captures audio from the default microphone into a float32 buffer.
// The malgo context is initialized lazily on the first Record call, so a
// Recorder can be constructed on machines without audio devices.
type Recorder struct {
	sampleRate uint32
	channels   uint32

	mu  sync.Mutex
	ctx *malgo.AllocatedContext
	buf []float32
}

// NewRecorder creates a recorder for the given capture format. Call Close
// when done.
func NewRecorder(sampleRate, channels uint32) *Recorder {
	return &Recorder{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Record captures audio until the duration elapses or ctx is cancelled,
// whichever comes first, and returns the captured samples.
func (r *Recorder) Record(ctx context.Context, duration time.Duration) ([]float32, error) {
	mctx, err := r.audioContext()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.buf = r.buf[:0]
	r.mu.Unlock()

	deviceCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceCfg.Capture.Format = malgo.FormatF32
	deviceCfg.Capture.Channels = r.channels
	deviceCfg.SampleRate = r.sampleRate

	device, err := malgo.InitDevice(mctx.Context, deviceCfg, malgo.DeviceCallbacks{
		Data: r.onData,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: initializing capture device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return nil, fmt.Errorf("audio: starting capture device: %w", err)
	}

	select {
	case <-time.After(duration):
	case <-ctx.Done():
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float32, len(r.buf))
	copy(out, r.buf)
	return out, nil
}

// Close releases the audio context if one was initialized.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ctx == nil {
		return nil
	}
	if err := r.ctx.Uninit(); err != nil {
		return fmt.Errorf("audio: uninitializing context: %w", err)
	}
	r.ctx.Free()
	r.ctx = nil
	return nil
}

func (r *Recorder) audioContext() (*malgo.AllocatedContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ctx != nil {
		return r.ctx, nil
	}
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("audio: initializing context: %w", err)
	}
	r.ctx = ctx
	return ctx, nil
}

// onData is the malgo callback invoked when audio data is available.
// pSample contains the captured frames as raw little-endian float32 bytes.
func (r *Recorder) onData(_, pSample []byte, frameCount uint32) {
	samples := bytesToFloat32(pSample, frameCount*r.channels)

	r.mu.Lock()
	r.buf = append(r.buf, samples...)
	r.mu.Unlock()
}

// bytesToFloat32 converts raw bytes (little-endian float32) to a float32
// slice.
func bytesToFloat32(data []byte, sampleCount uint32) []float32 {
	samples := make([]float32, 0, sampleCount)
	for i := uint32(0); i < sampleCount; i++ {
		offset := i * 4
		if offset+4 > uint32(len(data)) {
			break
		}
		bits := binary.LittleEndian.Uint32(data[offset : offset+4])
		samples = append(samples, math.Float32frombits(bits))
	}
	return samples
}
