package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("Audio.SampleRate = %d, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 1 {
		t.Errorf("Audio.Channels = %d, want 1", cfg.Audio.Channels)
	}
	if cfg.TTS.Language != "ja" {
		t.Errorf("TTS.Language = %q, want %q", cfg.TTS.Language, "ja")
	}
	if len(cfg.TTS.Engines) != 3 {
		t.Errorf("TTS.Engines length = %d, want 3", len(cfg.TTS.Engines))
	}
	if cfg.TTS.Engines[0].Name != "gtts" || cfg.TTS.Engines[0].Priority != 1 {
		t.Errorf("first engine = %+v, want gtts with priority 1", cfg.TTS.Engines[0])
	}
	if cfg.STT.Backend != "companion" {
		t.Errorf("STT.Backend = %q, want %q", cfg.STT.Backend, "companion")
	}
	if cfg.STT.Language != "ja-JP" {
		t.Errorf("STT.Language = %q, want %q", cfg.STT.Language, "ja-JP")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	yamlContent := `
data_dir: /tmp/kotoba-test
log_level: debug
audio:
  sample_rate: 44100
  channels: 2
tts:
  language: ja
  google_api_key: test-key
  engines:
    - {name: openjtalk, enabled: true, priority: 1}
    - {name: gtts, enabled: false, priority: 2}
stt:
  backend: google
  language: ja-JP
  google_api_key: stt-key
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/tmp/kotoba-test" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/tmp/kotoba-test")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Audio.SampleRate != 44100 {
		t.Errorf("Audio.SampleRate = %d, want 44100", cfg.Audio.SampleRate)
	}
	if cfg.TTS.GoogleAPIKey != "test-key" {
		t.Errorf("TTS.GoogleAPIKey = %q, want %q", cfg.TTS.GoogleAPIKey, "test-key")
	}
	if len(cfg.TTS.Engines) != 2 {
		t.Fatalf("TTS.Engines length = %d, want 2", len(cfg.TTS.Engines))
	}
	if cfg.TTS.Engines[0].Name != "openjtalk" {
		t.Errorf("first engine = %q, want %q", cfg.TTS.Engines[0].Name, "openjtalk")
	}
	if cfg.TTS.Engines[1].Enabled {
		t.Error("second engine should be disabled")
	}
	if cfg.STT.Backend != "google" {
		t.Errorf("STT.Backend = %q, want %q", cfg.STT.Backend, "google")
	}

	// Fields absent from the file keep their defaults.
	if cfg.TTS.OpenJTalk.Binary != "open_jtalk" {
		t.Errorf("OpenJTalk.Binary = %q, want default", cfg.TTS.OpenJTalk.Binary)
	}
}

func TestLoadExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	yamlContent := `
data_dir: ~/kotoba-data
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := filepath.Join(home, "kotoba-data")
	if cfg.DataDir != expected {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, expected)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty data dir",
			modify:  func(c *Config) { c.DataDir = "" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
		{
			name:    "zero sample rate",
			modify:  func(c *Config) { c.Audio.SampleRate = 0 },
			wantErr: true,
		},
		{
			name:    "zero channels",
			modify:  func(c *Config) { c.Audio.Channels = 0 },
			wantErr: true,
		},
		{
			name:    "empty tts language",
			modify:  func(c *Config) { c.TTS.Language = "" },
			wantErr: true,
		},
		{
			name:    "unknown tts engine",
			modify:  func(c *Config) { c.TTS.Engines = []EngineConfig{{Name: "bogus"}} },
			wantErr: true,
		},
		{
			name: "duplicate tts engine",
			modify: func(c *Config) {
				c.TTS.Engines = []EngineConfig{{Name: "gtts"}, {Name: "gtts"}}
			},
			wantErr: true,
		},
		{
			name:    "empty engine list is allowed",
			modify:  func(c *Config) { c.TTS.Engines = nil },
			wantErr: false,
		},
		{
			name:    "invalid stt backend",
			modify:  func(c *Config) { c.STT.Backend = "invalid" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDefault_CreatesFile(t *testing.T) {
	// Use a temp dir as fake home to avoid touching real config
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	path, err := WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	expectedPath := filepath.Join(tmpHome, ".config", "kotoba", "config.yaml")
	if path != expectedPath {
		t.Errorf("WriteDefault() path = %q, want %q", path, expectedPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}

	if !strings.HasPrefix(string(data), "# kotoba") {
		t.Error("written config should start with header comment")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("written config Audio.SampleRate = %d, want 16000", cfg.Audio.SampleRate)
	}
}

func TestWriteDefault_NoOpIfExists(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	configDir := filepath.Join(tmpHome, ".config", "kotoba")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	existingContent := []byte("data_dir: /custom/data\n")
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, existingContent, 0644); err != nil {
		t.Fatalf("failed to write existing config: %v", err)
	}

	path, err := WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if path != "" {
		t.Errorf("WriteDefault() path = %q, want empty string for existing file", path)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(data) != string(existingContent) {
		t.Error("WriteDefault() should not overwrite existing config file")
	}
}
