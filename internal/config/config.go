package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataDir  string      `yaml:"data_dir"`
	LogLevel string      `yaml:"log_level"`
	Audio    AudioConfig `yaml:"audio"`
	TTS      TTSConfig   `yaml:"tts"`
	STT      STTConfig   `yaml:"stt"`
}

// AudioConfig holds audio capture settings.
type AudioConfig struct {
	SampleRate uint32 `yaml:"sample_rate"`
	Channels   uint32 `yaml:"channels"`
}

// TTSConfig holds text-to-speech settings.
type TTSConfig struct {
	Language     string          `yaml:"language"`
	GoogleAPIKey string          `yaml:"google_api_key"`
	Engines      []EngineConfig  `yaml:"engines"`
	OpenJTalk    OpenJTalkConfig `yaml:"openjtalk"`
}

// EngineConfig describes one entry in the TTS engine fallback order.
type EngineConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"` // lower is tried first
}

// OpenJTalkConfig holds paths for the local Open JTalk engine.
type OpenJTalkConfig struct {
	Binary     string `yaml:"binary"`
	Dictionary string `yaml:"dictionary"`
	Voice      string `yaml:"voice"`
}

// STTConfig holds speech-to-text settings.
type STTConfig struct {
	Backend      string `yaml:"backend"` // "google" or "companion"
	Language     string `yaml:"language"`
	GoogleAPIKey string `yaml:"google_api_key"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "kotoba")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultDataDir returns the default data directory path.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "kotoba")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		DataDir:  DefaultDataDir(),
		LogLevel: "info",
		Audio: AudioConfig{
			SampleRate: 16000,
			Channels:   1,
		},
		TTS: TTSConfig{
			Language: "ja",
			Engines: []EngineConfig{
				{Name: "gtts", Enabled: true, Priority: 1},
				{Name: "googlecloud", Enabled: true, Priority: 2},
				{Name: "openjtalk", Enabled: true, Priority: 3},
			},
			OpenJTalk: OpenJTalkConfig{
				Binary:     "open_jtalk",
				Dictionary: "/var/lib/mecab/dic/open-jtalk/naist-jdic",
				Voice:      "/usr/share/hts-voice/mei/mei_normal.htsvoice",
			},
		},
		STT: STTConfig{
			Backend:  "companion",
			Language: "ja-JP",
		},
	}
}

// Load reads and parses a YAML config file. Missing fields are filled with
// defaults. Tilde (~) in paths is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.DataDir = expandTilde(cfg.DataDir)
	cfg.TTS.OpenJTalk.Dictionary = expandTilde(cfg.TTS.OpenJTalk.Dictionary)
	cfg.TTS.OpenJTalk.Voice = expandTilde(cfg.TTS.OpenJTalk.Voice)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	if c.Audio.SampleRate == 0 {
		return fmt.Errorf("audio.sample_rate must be > 0")
	}

	if c.Audio.Channels == 0 {
		return fmt.Errorf("audio.channels must be > 0")
	}

	if c.TTS.Language == "" {
		return fmt.Errorf("tts.language must not be empty")
	}

	seen := make(map[string]bool)
	for _, e := range c.TTS.Engines {
		switch e.Name {
		case "gtts", "googlecloud", "openjtalk":
		default:
			return fmt.Errorf("tts.engines: unknown engine %q (supported: gtts, googlecloud, openjtalk)", e.Name)
		}
		if seen[e.Name] {
			return fmt.Errorf("tts.engines: engine %q listed twice", e.Name)
		}
		seen[e.Name] = true
	}

	switch c.STT.Backend {
	case "google", "companion":
	default:
		return fmt.Errorf("stt.backend must be \"google\" or \"companion\", got %q", c.STT.Backend)
	}

	return nil
}

// TextDir returns the directory for text data files.
func (c *Config) TextDir() string {
	return filepath.Join(c.DataDir, "text")
}

// AudioDir returns the directory for audio data files.
func (c *Config) AudioDir() string {
	return filepath.Join(c.DataDir, "audio")
}

// ProcessedDir returns the directory for exported/processed files.
func (c *Config) ProcessedDir() string {
	return filepath.Join(c.DataDir, "processed")
}

// WriteDefault writes a commented default config file at the default path.
// It returns the path written, or "" if a config file already exists.
func WriteDefault() (string, error) {
	path := DefaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return "", nil
	}

	if err := os.MkdirAll(DefaultConfigDir(), 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("marshaling default config: %w", err)
	}

	content := "# kotoba configuration\n# See each field's description in the project documentation.\n" + string(data)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return path, nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
