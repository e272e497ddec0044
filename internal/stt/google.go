package stt

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"

	"github.com/kotoba-dev/kotoba/internal/webapi"
)

const recognizeEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
	LanguageCode    string `json:"languageCode"`
}

type recognizeAudio struct {
	Content string `json:"content"` // base64-encoded PCM
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float32 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// GoogleRecognizer transcribes WAV audio through the Google Cloud
// Speech-to-Text REST API.
type GoogleRecognizer struct {
	apiKey   string
	language string
}

// NewGoogleRecognizer creates a google backend. An API key is required.
func NewGoogleRecognizer(apiKey, language string) (*GoogleRecognizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("stt: google backend requires an API key (set stt.google_api_key)")
	}
	if language == "" {
		language = "ja-JP"
	}
	return &GoogleRecognizer{apiKey: apiKey, language: language}, nil
}

// Recognize transcribes a 16-bit PCM WAV file.
func (g *GoogleRecognizer) Recognize(ctx context.Context, path string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".wav" {
		return "", fmt.Errorf("stt: google backend accepts WAV input, got %s", ext)
	}

	pcm, sampleRate, err := readWAVPCM(path)
	if err != nil {
		return "", err
	}

	req := recognizeRequest{
		Config: recognizeConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: sampleRate,
			LanguageCode:    g.language,
		},
		Audio: recognizeAudio{
			Content: base64.StdEncoding.EncodeToString(pcm),
		},
	}

	var resp recognizeResponse
	if err := webapi.PostJSON(ctx, recognizeEndpoint+"?key="+g.apiKey, req, &resp); err != nil {
		return "", fmt.Errorf("stt: google recognize: %w", err)
	}

	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return "", nil
	}
	return resp.Results[0].Alternatives[0].Transcript, nil
}

// readWAVPCM decodes a WAV file into little-endian 16-bit PCM bytes.
func readWAVPCM(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("stt: opening %s: %w", path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("stt: decoding %s: %w", path, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("stt: %s contains no audio samples", path)
	}

	pcm := make([]byte, 2*len(buf.Data))
	for i, s := range buf.Data {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(int16(s)))
	}
	return pcm, buf.Format.SampleRate, nil
}
