package tts

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kotoba-dev/kotoba/internal/webapi"
)

const cloudTTSEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

type cloudSynthRequest struct {
	Input       cloudSynthInput       `json:"input"`
	Voice       cloudSynthVoice       `json:"voice"`
	AudioConfig cloudSynthAudioConfig `json:"audioConfig"`
}

type cloudSynthInput struct {
	Text string `json:"text"`
}

type cloudSynthVoice struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
}

type cloudSynthAudioConfig struct {
	AudioEncoding   string `json:"audioEncoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
}

type cloudSynthResponse struct {
	AudioContent string `json:"audioContent"` // base64-encoded
}

// CloudTTSEngine synthesizes speech through the Google Cloud Text-to-Speech
// REST API. LINEAR16 output arrives in a WAV container, so the requested
// path is written as-is.
type CloudTTSEngine struct {
	apiKey string
	lang   string
	voice  string
}

// NewCloudTTSEngine creates a googlecloud engine. The engine is unavailable
// without an API key.
func NewCloudTTSEngine(apiKey, lang string) *CloudTTSEngine {
	voice := "ja-JP-Neural2-B"
	if lang == "" {
		lang = "ja"
	}
	langCode := lang
	if langCode == "ja" {
		langCode = "ja-JP"
	}
	return &CloudTTSEngine{apiKey: apiKey, lang: langCode, voice: voice}
}

func (c *CloudTTSEngine) Name() string { return "googlecloud" }

func (c *CloudTTSEngine) Available() bool { return c.apiKey != "" }

func (c *CloudTTSEngine) Synthesize(ctx context.Context, text, outPath string) (string, error) {
	req := cloudSynthRequest{
		Input: cloudSynthInput{Text: text},
		Voice: cloudSynthVoice{
			LanguageCode: c.lang,
			Name:         c.voice,
		},
		AudioConfig: cloudSynthAudioConfig{
			AudioEncoding:   "LINEAR16",
			SampleRateHertz: 16000,
		},
	}

	var resp cloudSynthResponse
	if err := webapi.PostJSON(ctx, cloudTTSEndpoint+"?key="+c.apiKey, req, &resp); err != nil {
		return "", fmt.Errorf("googlecloud: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return "", fmt.Errorf("googlecloud: decode audio: %w", err)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("googlecloud: empty audio response")
	}

	wavPath := withExt(outPath, ".wav")
	if err := os.MkdirAll(filepath.Dir(wavPath), 0755); err != nil {
		return "", fmt.Errorf("googlecloud: creating output dir: %w", err)
	}
	if err := os.WriteFile(wavPath, audio, 0644); err != nil {
		return "", fmt.Errorf("googlecloud: writing audio: %w", err)
	}

	if err := WriteTranscript(wavPath, text); err != nil {
		return "", fmt.Errorf("googlecloud: %w", err)
	}
	return wavPath, nil
}
