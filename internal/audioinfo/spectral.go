package audioinfo

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// SpectralFeatures summarizes the frequency content of a signal. Values are
// means over Hann-windowed FFT frames, mirroring the usual short-time
// analysis parameters (2048-sample frames, 512-sample hop).
type SpectralFeatures struct {
	CentroidHz       float64 `json:"centroid_hz"`
	RolloffHz        float64 `json:"rolloff_hz"`
	ZeroCrossingRate float64 `json:"zero_crossing_rate"`
	RMS              float64 `json:"rms"`
}

const (
	frameSize = 2048
	hopSize   = 512
	// rolloffFraction is the spectral energy fraction below the rolloff
	// frequency.
	rolloffFraction = 0.85
)

// computeSpectral derives spectral features from mono samples in [-1, 1].
func computeSpectral(samples []float64, sampleRate int) SpectralFeatures {
	var out SpectralFeatures

	out.ZeroCrossingRate = zeroCrossingRate(samples)
	out.RMS = rms(samples)

	if len(samples) < frameSize || sampleRate <= 0 {
		return out
	}

	hann := window.Hann(frameSize)
	binHz := float64(sampleRate) / float64(frameSize)

	var centroidSum, rolloffSum float64
	frames := 0

	buf := make([]float64, frameSize)
	for start := 0; start+frameSize <= len(samples); start += hopSize {
		for i := 0; i < frameSize; i++ {
			buf[i] = samples[start+i] * hann[i]
		}

		spectrum := fft.FFTReal(buf)

		// Magnitudes of the non-negative frequency bins.
		mags := make([]float64, frameSize/2+1)
		var total float64
		for k := range mags {
			mags[k] = cmplx.Abs(spectrum[k])
			total += mags[k]
		}
		if total == 0 {
			continue
		}

		var weighted float64
		for k, m := range mags {
			weighted += float64(k) * binHz * m
		}
		centroidSum += weighted / total

		var cum float64
		for k, m := range mags {
			cum += m
			if cum >= rolloffFraction*total {
				rolloffSum += float64(k) * binHz
				break
			}
		}

		frames++
	}

	if frames > 0 {
		out.CentroidHz = centroidSum / float64(frames)
		out.RolloffHz = rolloffSum / float64(frames)
	}
	return out
}

// zeroCrossingRate is the fraction of adjacent sample pairs whose signs
// differ.
func zeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}

func rms(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}
