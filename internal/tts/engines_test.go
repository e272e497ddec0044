package tts

import (
	"strings"
	"testing"

	"github.com/kotoba-dev/kotoba/internal/config"
)

func TestNewEngineUnknown(t *testing.T) {
	_, err := NewEngine("bogus", &config.TTSConfig{})
	if err == nil {
		t.Error("NewEngine() should fail for unknown engine name")
	}
}

func TestFromConfigSkipsDisabled(t *testing.T) {
	cfg := &config.TTSConfig{
		Language: "ja",
		Engines: []config.EngineConfig{
			{Name: "gtts", Enabled: true, Priority: 1},
			{Name: "googlecloud", Enabled: false, Priority: 2},
		},
	}

	candidates, engines, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("candidates = %v, want only the enabled engine", candidates)
	}
	if candidates[0].Name != "gtts" {
		t.Errorf("candidate = %q, want %q", candidates[0].Name, "gtts")
	}
	if _, ok := engines["googlecloud"]; ok {
		t.Error("disabled engine should not be instantiated")
	}
}

func TestFromConfigAvailability(t *testing.T) {
	cfg := &config.TTSConfig{
		Language: "ja",
		// No API key: googlecloud must come back unavailable.
		Engines: []config.EngineConfig{
			{Name: "googlecloud", Enabled: true, Priority: 1},
			{Name: "gtts", Enabled: true, Priority: 2},
		},
	}

	candidates, _, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}

	byName := make(map[string]Candidate)
	for _, c := range candidates {
		byName[c.Name] = c
	}

	if byName["googlecloud"].Available {
		t.Error("googlecloud without API key should be unavailable")
	}
	if !byName["gtts"].Available {
		t.Error("gtts should always be available")
	}
}

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"short text unchanged", "こんにちは。", 180, []string{"こんにちは。"}},
		{"cuts at sentence end", "一。二。", 3, []string{"一。", "二。"}},
		{"hard cut without punctuation", "あいうえお", 2, []string{"あい", "うえ", "お"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitChunks(tt.text, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("splitChunks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
			if strings.Join(got, "") != tt.text {
				t.Errorf("chunks do not reassemble input: %v", got)
			}
		})
	}
}

func TestWithExt(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"out.wav", ".mp3", "out.mp3"},
		{"out", ".mp3", "out.mp3"},
		{"dir/name.mp3", ".mp3", "dir/name.mp3"},
	}

	for _, tt := range tests {
		if got := withExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("withExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}
